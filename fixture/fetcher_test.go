package fixture

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/kitsufix/kitsufix/kitsu"
	"github.com/kitsufix/kitsufix/report"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

var upstream = map[string]string{
	"/api/edge/anime/5":     `{"data":{"id":"5","type":"anime","attributes":{"canonicalTitle":"Cowboy Bebop: Tengoku no Tobira"}}}`,
	"/api/edge/anime/13401": `{"data":{"id":"13401","type":"anime","attributes":{"canonicalTitle":"3-gatsu no Lion"}}}`,
	"/api/edge/episodes/89": `{"data":{"id":"89","type":"episodes","attributes":{"number":1}}}`,
	"/api/edge/anime/7":     `<html>maintenance</html>`,
}

func kitsuServer(requests *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)

		if r.URL.Path == "/api/edge/anime" {
			if r.URL.Query().Get("filter[text]") == "food" {
				_, _ = w.Write([]byte(`{"data":[{"id":"1","type":"anime"}],"meta":{"count":1}}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":[],"meta":{"count":0}}`))
			return
		}

		body, ok := upstream[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"title":"Record not found","status":"404"}]}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func decode(path string) map[string]any {
	var v map[string]any
	So(json.Unmarshal(lo.Must(filesystem.API().ReadFile(path)), &v), ShouldBeNil)
	return v
}

func exists(path string) bool {
	return lo.Must(filesystem.API().Exists(path))
}

func TestFetcherRun(t *testing.T) {
	Convey("Given a fake Kitsu API and an empty filesystem", t, func() {
		filesystem.SetMemMapFs()

		var requests int32
		server := kitsuServer(&requests)
		defer server.Close()

		fetcher := &Fetcher{
			Client:  kitsu.New(server.URL+"/api/edge", server.Client()),
			Options: Options{Output: "test_data"},
		}
		ctx := context.Background()

		Convey("When capturing anime 5", func() {
			rep, err := fetcher.Run(ctx, Plan{{Resource: kitsu.Anime, Keys: []string{"5"}}})
			So(err, ShouldBeNil)

			Convey("Then anime/5.json holds the upstream document", func() {
				So(exists("test_data/anime/5.json"), ShouldBeTrue)

				var want map[string]any
				So(json.Unmarshal([]byte(upstream["/api/edge/anime/5"]), &want), ShouldBeNil)
				So(decode("test_data/anime/5.json"), ShouldResemble, want)
				So(decode("test_data/anime/5.json"), ShouldContainKey, "data")
			})

			Convey("Then the report records the write", func() {
				So(rep.Entries, ShouldHaveLength, 1)
				So(rep.Entries[0].Status, ShouldEqual, http.StatusOK)
				So(rep.Entries[0].Path, ShouldEqual, "test_data/anime/5.json")
				So(rep.Entries[0].Bytes, ShouldBeGreaterThan, 0)
				So(rep.BaseURL, ShouldEqual, server.URL+"/api/edge")
			})
		})

		Convey("When capturing the search food", func() {
			_, err := fetcher.Run(ctx, Plan{{Resource: kitsu.Searches, Keys: []string{"food", "cowboy bebop"}}})
			So(err, ShouldBeNil)

			Convey("Then searches/food.json has a data array", func() {
				data, ok := decode("test_data/searches/food.json")["data"].([]any)
				So(ok, ShouldBeTrue)
				So(data, ShouldHaveLength, 1)
			})

			Convey("Then a search with spaces keeps the text as the file name", func() {
				data, ok := decode("test_data/searches/cowboy bebop.json")["data"].([]any)
				So(ok, ShouldBeTrue)
				So(data, ShouldBeEmpty)
			})
		})

		Convey("When the same plan runs twice", func() {
			plan := Plan{
				{Resource: kitsu.Anime, Keys: []string{"13401", "5"}},
				{Resource: kitsu.Episodes, Keys: []string{"89"}},
				{Resource: kitsu.Searches, Keys: []string{"food"}},
			}

			_, err := fetcher.Run(ctx, plan)
			So(err, ShouldBeNil)
			first := lo.Must(filesystem.API().ReadFile("test_data/episodes/89.json"))

			_, err = fetcher.Run(ctx, plan)
			So(err, ShouldBeNil)
			second := lo.Must(filesystem.API().ReadFile("test_data/episodes/89.json"))

			Convey("Then the files are byte-identical", func() {
				So(second, ShouldResemble, first)
				So(string(first), ShouldStartWith, "{\n    \"data\": {")
			})
		})

		Convey("When a key in the middle returns 404", func() {
			rep, err := fetcher.Run(ctx, Plan{
				{Resource: kitsu.Anime, Keys: []string{"5", "99999", "13401"}},
				{Resource: kitsu.Episodes, Keys: []string{"89"}},
			})

			Convey("Then the run fails with an upstream error", func() {
				So(errors.Is(err, kitsu.ErrUpstream), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "404 Client Error")
			})

			Convey("Then earlier files are kept and no later file is written", func() {
				So(exists("test_data/anime/5.json"), ShouldBeTrue)
				So(exists("test_data/anime/99999.json"), ShouldBeFalse)
				So(exists("test_data/anime/13401.json"), ShouldBeFalse)
				So(exists("test_data/episodes/89.json"), ShouldBeFalse)
			})

			Convey("Then no request is sent after the failure", func() {
				So(atomic.LoadInt32(&requests), ShouldEqual, 2)
				So(rep.Entries, ShouldHaveLength, 2)
				So(rep.Failed()[0].Status, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When keep-going is enabled", func() {
			fetcher.KeepGoing = true
			rep, err := fetcher.Run(ctx, Plan{{Resource: kitsu.Anime, Keys: []string{"5", "99999", "13401", "7"}}})

			Convey("Then every key is attempted", func() {
				So(atomic.LoadInt32(&requests), ShouldEqual, 4)
				So(exists("test_data/anime/13401.json"), ShouldBeTrue)
				So(rep.Summary(), ShouldEqual, "2 files written, 2 keys failed")
			})

			Convey("Then the error lists each failure", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "2 keys failed:")
				So(errors.Is(err, kitsu.ErrUpstream), ShouldBeTrue)
				So(errors.Is(err, ErrInvalidJSON), ShouldBeTrue)
			})
		})

		Convey("When the body is not JSON", func() {
			_, err := fetcher.Run(ctx, Plan{{Resource: kitsu.Anime, Keys: []string{"7"}}})
			So(errors.Is(err, ErrInvalidJSON), ShouldBeTrue)
			So(exists("test_data/anime/7.json"), ShouldBeFalse)
		})

		Convey("When a key is invalid", func() {
			rep, err := fetcher.Run(ctx, Plan{{Resource: kitsu.Anime, Keys: []string{"5", "../etc"}}})

			Convey("Then nothing is requested or written", func() {
				So(errors.Is(err, kitsu.ErrInvalidKey), ShouldBeTrue)
				So(rep, ShouldBeNil)
				So(atomic.LoadInt32(&requests), ShouldEqual, 0)
				So(exists("test_data/anime/5.json"), ShouldBeFalse)
			})
		})

		Convey("When running dry", func() {
			fetcher.DryRun = true
			var started []string
			fetcher.OnStart = func(_ kitsu.Resource, key string) { started = append(started, key) }
			var seen []*report.Entry
			fetcher.OnEntry = func(e *report.Entry) { seen = append(seen, e) }

			rep, err := fetcher.Run(ctx, Plan{{Resource: kitsu.Searches, Keys: []string{"food", "hello"}}})

			Convey("Then only the intended URLs and paths are reported", func() {
				So(err, ShouldBeNil)
				So(atomic.LoadInt32(&requests), ShouldEqual, 0)
				So(exists("test_data/searches"), ShouldBeFalse)
				So(started, ShouldResemble, []string{"food", "hello"})
				So(seen, ShouldHaveLength, 2)
				So(seen[1].URL, ShouldEqual, server.URL+"/api/edge/anime?filter[text]=hello")
				So(rep.Summary(), ShouldEqual, "0 files written, 2 keys skipped")
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			fetcher.KeepGoing = true
			_, err := fetcher.Run(cctx, Plan{{Resource: kitsu.Anime, Keys: []string{"5", "13401"}}})

			Convey("Then the run stops even with keep-going", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(exists("test_data/anime/13401.json"), ShouldBeFalse)
			})
		})
	})
}

func TestFilePath(t *testing.T) {
	Convey("FilePath uses the key verbatim as the stem", t, func() {
		So(FilePath("", kitsu.Anime, "5"), ShouldEqual, "anime/5.json")
		So(FilePath("out", kitsu.Searches, "5 Centimeter per Second"), ShouldEqual, "out/searches/5 Centimeter per Second.json")
	})
}
