// Package fixture captures Kitsu responses into fixture files.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/kitsufix/kitsufix/kitsu"
	"github.com/kitsufix/kitsufix/log"
	"github.com/kitsufix/kitsufix/report"
	"github.com/kitsufix/kitsufix/util"
	"github.com/kitsufix/kitsufix/where"
)

// Options control a run.
type Options struct {
	// Output is the root the resource directories are created in.
	Output string

	// KeepGoing attempts every key and returns all failures at the end.
	// By default the first failure stops the run.
	KeepGoing bool

	// DryRun records what would be fetched without any request or write.
	DryRun bool
}

// Fetcher captures each key of a plan into <Output>/<resource>/<key>.json.
type Fetcher struct {
	Client *kitsu.Client
	Options

	// OnStart and OnEntry observe progress. Both may be nil.
	OnStart func(r kitsu.Resource, key string)
	OnEntry func(e *report.Entry)
}

// FilePath is where the fixture for key is written.
func FilePath(output string, r kitsu.Resource, key string) string {
	return filepath.Join(where.Fixtures(output, r.Dir()), key+".json")
}

// Run validates plan and fetches it sequentially.
//
// Files written before a failure are kept. The failing key gets no file.
// The returned report is non-nil whenever validation passed.
func (f *Fetcher) Run(ctx context.Context, plan Plan) (*report.Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	rep := report.New(f.Client.Base())
	defer rep.Finish()

	var failures []error
	for _, job := range plan {
		for _, key := range job.Keys {
			if f.OnStart != nil {
				f.OnStart(job.Resource, key)
			}

			entry, err := f.capture(ctx, job.Resource, key)
			rep.Add(entry)
			if f.OnEntry != nil {
				f.OnEntry(entry)
			}

			if err == nil {
				continue
			}

			log.WithFields(log.Fields{"resource": job.Resource.String(), "key": key}).WithError(err).Error("capture failed")
			if !f.KeepGoing || ctx.Err() != nil {
				return rep, err
			}
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return rep, fmt.Errorf("%s failed:\n%w", util.Quantify(len(failures), "key", "keys"), errors.Join(failures...))
	}
	return rep, nil
}

func (f *Fetcher) capture(ctx context.Context, r kitsu.Resource, key string) (*report.Entry, error) {
	entry := &report.Entry{
		Resource: r.String(),
		Key:      key,
		URL:      f.Client.URL(r, key),
		Path:     FilePath(f.Output, r, key),
	}

	if f.DryRun {
		entry.Skipped = true
		return entry, nil
	}

	fail := func(err error) (*report.Entry, error) {
		err = fmt.Errorf("%s %q: %w", r, key, err)
		entry.Error = err.Error()
		return entry, err
	}

	resp, err := f.Client.Get(ctx, r, key)
	if err != nil {
		var statusErr *kitsu.StatusError
		if errors.As(err, &statusErr) {
			entry.Status = statusErr.StatusCode
		}
		return fail(err)
	}
	entry.Status = resp.StatusCode

	pretty, err := Format(resp.Body)
	if err != nil {
		return fail(err)
	}

	if err := filesystem.WriteFile(entry.Path, pretty); err != nil {
		return fail(fmt.Errorf("write %s: %w", entry.Path, err))
	}
	entry.Bytes = len(pretty)

	log.WithFields(log.Fields{"path": entry.Path, "bytes": entry.Bytes}).Info("fixture written")
	return entry, nil
}
