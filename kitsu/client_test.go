package kitsu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClientGet(t *testing.T) {
	Convey("Given a fake Kitsu server", t, func() {
		var seen *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r
			switch r.URL.Path {
			case "/api/edge/anime/5":
				w.Header().Set("Content-Type", "application/vnd.api+json")
				_, _ = w.Write([]byte(`{"data":{"id":"5","type":"anime"}}`))
			case "/api/edge/anime":
				_, _ = w.Write([]byte(`{"data":[]}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		client := New(server.URL+"/api/edge/", server.Client())

		Convey("URL joins the base and the resource path", func() {
			So(client.URL(Anime, "5"), ShouldEqual, server.URL+"/api/edge/anime/5")
		})

		Convey("An anime lookup returns the raw body", func() {
			resp, err := client.Get(context.Background(), Anime, "5")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(string(resp.Body), ShouldEqual, `{"data":{"id":"5","type":"anime"}}`)
			So(seen.Header.Get("Accept"), ShouldEqual, "application/vnd.api+json")
			So(seen.Header.Get("User-Agent"), ShouldStartWith, "kitsufix/")
		})

		Convey("A search sends the filter as a decoded query parameter", func() {
			_, err := client.Get(context.Background(), Searches, "cowboy bebop")
			So(err, ShouldBeNil)
			So(seen.URL.Query().Get("filter[text]"), ShouldEqual, "cowboy bebop")
		})

		Convey("A literal search reaches the server with the same text", func() {
			client.LiteralQueries = true
			_, err := client.Get(context.Background(), Searches, "cowboy bebop")
			So(err, ShouldBeNil)
			So(seen.URL.Query().Get("filter[text]"), ShouldEqual, "cowboy bebop")
			So(seen.URL.RawQuery, ShouldEqual, "filter[text]=cowboy%20bebop")
		})

		Convey("A 404 is an upstream failure", func() {
			resp, err := client.Get(context.Background(), Anime, "99999")
			So(resp, ShouldBeNil)
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)

			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, http.StatusNotFound)
			So(err.Error(), ShouldEqual, "404 Client Error: Not Found for url: "+server.URL+"/api/edge/anime/99999")
		})

		Convey("A cancelled context aborts the request", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := client.Get(ctx, Anime, "5")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(errors.Is(err, ErrUpstream), ShouldBeFalse)
		})
	})
}

func TestStatusError(t *testing.T) {
	Convey("StatusError", t, func() {
		Convey("Server errors are labelled as such", func() {
			err := &StatusError{URL: "u", StatusCode: 503}
			So(err.Error(), ShouldEqual, "503 Server Error: Service Unavailable for url: u")
		})

		Convey("The status line is preferred over the generic text", func() {
			err := &StatusError{URL: "u", StatusCode: 429, Status: "429 Slow Down"}
			So(err.Error(), ShouldEqual, "429 Client Error: Slow Down for url: u")
		})
	})
}
