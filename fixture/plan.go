package fixture

import (
	"fmt"

	"github.com/kitsufix/kitsufix/kitsu"
	"github.com/samber/lo"
)

// Job is the list of keys captured for one resource.
type Job struct {
	Resource kitsu.Resource
	Keys     []string
}

// Plan is the ordered work of one run.
type Plan []Job

// NewPlan builds a plan from keys per resource, in capture order, dropping resources without keys.
func NewPlan(keys map[kitsu.Resource][]string) Plan {
	plan := lo.FilterMap(kitsu.Resources(), func(r kitsu.Resource, _ int) (Job, bool) {
		return Job{Resource: r, Keys: keys[r]}, len(keys[r]) > 0
	})
	return plan
}

// Len is the total number of keys.
func (p Plan) Len() int {
	return lo.SumBy(p, func(j Job) int { return len(j.Keys) })
}

// Validate checks every key up front so a bad key never leaves a half-written run.
// Duplicate keys within a resource are rejected because they would target the same file.
func (p Plan) Validate() error {
	for _, job := range p {
		seen := make(map[string]bool, len(job.Keys))
		for _, key := range job.Keys {
			if err := job.Resource.Validate(key); err != nil {
				return err
			}
			if seen[key] {
				return fmt.Errorf("%w: %s key %q is listed twice", kitsu.ErrInvalidKey, job.Resource, key)
			}
			seen[key] = true
		}
	}
	return nil
}
