// Package network builds the HTTP client used for upstream requests.
package network

import (
	"net/http"
	"time"
)

// New returns a client with the tuned transport and the given overall timeout.
// A zero timeout disables it.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(),
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 2
	t.IdleConnTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}
