package fixture

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/kitsufix/kitsufix/constant"
)

// ErrInvalidJSON is returned when a response body is not JSON.
var ErrInvalidJSON = errors.New("response is not valid JSON")

// Format re-indents a JSON document with four spaces.
// Object key order and number literals are kept as received, so the same
// upstream body always formats to the same bytes.
func Format(body []byte) ([]byte, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", constant.Indent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return buf.Bytes(), nil
}
