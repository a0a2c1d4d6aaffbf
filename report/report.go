// Package report records what a fetch run did and persists the last run.
package report

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/kitsufix/kitsufix/util"
	"github.com/kitsufix/kitsufix/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

// ErrNoReport is returned by Last before any run has been saved.
var ErrNoReport = errors.New("no fetch run recorded yet")

// Entry is the outcome of one lookup key.
type Entry struct {
	Resource string `json:"resource" jsonschema:"description=Resource type the key was looked up in."`
	Key      string `json:"key" jsonschema:"description=Lookup key. It is also the stem of the output file."`
	URL      string `json:"url" jsonschema:"description=Request URL."`
	Path     string `json:"path" jsonschema:"description=Output file path."`
	Status   int    `json:"status,omitempty" jsonschema:"description=HTTP status of the response when one was received."`
	Bytes    int    `json:"bytes,omitempty" jsonschema:"description=Size of the written file."`
	Skipped  bool   `json:"skipped,omitempty" jsonschema:"description=True for dry runs where nothing is requested or written."`
	Error    string `json:"error,omitempty" jsonschema:"description=Failure message. Empty on success."`
}

// Failed reports whether the key failed.
func (e *Entry) Failed() bool {
	return e.Error != ""
}

// Report is the outcome of one run.
type Report struct {
	BaseURL    string    `json:"base_url" jsonschema:"description=API base the run requested from."`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Entries    []*Entry  `json:"entries"`
}

// New starts a report for a run against baseURL.
func New(baseURL string) *Report {
	return &Report{
		BaseURL:   baseURL,
		StartedAt: time.Now(),
		Entries:   []*Entry{},
	}
}

// Add appends e.
func (r *Report) Add(e *Entry) {
	r.Entries = append(r.Entries, e)
}

// Finish stamps the end time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// Failed returns the failed entries.
func (r *Report) Failed() []*Entry {
	return lo.Filter(r.Entries, func(e *Entry, _ int) bool { return e.Failed() })
}

// Written returns the entries whose file was written.
func (r *Report) Written() []*Entry {
	return lo.Filter(r.Entries, func(e *Entry, _ int) bool { return !e.Failed() && !e.Skipped })
}

// Summary is a one-line description such as "5 files written, 1 key failed".
func (r *Report) Summary() string {
	summary := util.Quantify(len(r.Written()), "file", "files") + " written"
	if failed := len(r.Failed()); failed > 0 {
		summary += ", " + util.Quantify(failed, "key", "keys") + " failed"
	}
	if skipped := len(r.Entries) - len(r.Written()) - len(r.Failed()); skipped > 0 {
		summary += ", " + util.Quantify(skipped, "key", "keys") + " skipped"
	}
	return summary
}

// JSON encodes the report with the same indentation as fixture files.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "    ")
}

var cacher = gache.New[*Report](&gache.Options{
	Path:       where.Report(),
	FileSystem: &filesystem.GacheFs{},
})

// Save persists r as the last run.
func Save(r *Report) error {
	if err := cacher.Set(r); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// Last loads the most recently saved report.
func Last() (*Report, error) {
	r, _, err := cacher.Get()
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	if r == nil {
		return nil, ErrNoReport
	}
	return r, nil
}

// Schema describes the JSON produced by Report.JSON.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return "report." + t.Name()
	}
	return reflector.Reflect(&Report{})
}
