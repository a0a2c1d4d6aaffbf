package kitsu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kitsufix/kitsufix/util"
	"github.com/samber/lo"
)

// Resource is one of the endpoint shapes fixtures are captured from.
type Resource int

const (
	Anime Resource = iota
	Episodes
	Searches
	AnimeEpisodes
)

var resourceNames = map[Resource]string{
	Anime:         "anime",
	Episodes:      "episodes",
	Searches:      "searches",
	AnimeEpisodes: "anime-episodes",
}

// Resources returns every resource in capture order.
func Resources() []Resource {
	return []Resource{Anime, Episodes, Searches, AnimeEpisodes}
}

// Names returns the resource names in capture order.
func Names() []string {
	return lo.Map(Resources(), func(r Resource, _ int) string { return r.String() })
}

// ParseResource looks a resource up by name. Unknown names get a suggestion.
func ParseResource(name string) (Resource, error) {
	for r, n := range resourceNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q, did you mean %q?", name, util.Closest(name, Names()))
}

func (r Resource) String() string {
	if n, ok := resourceNames[r]; ok {
		return n
	}
	return "resource(" + strconv.Itoa(int(r)) + ")"
}

// Dir is the directory fixtures of r are written to.
func (r Resource) Dir() string {
	return r.String()
}

// Numeric reports whether keys of r are record IDs rather than free text.
func (r Resource) Numeric() bool {
	return r != Searches
}

// Validate checks that key can be sent upstream and used as a filename stem.
func (r Resource) Validate(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty %s key", ErrInvalidKey, r)
	case key == "." || key == "..", strings.ContainsAny(key, `/\`), strings.ContainsRune(key, 0):
		return fmt.Errorf("%w: %q cannot be used as a filename", ErrInvalidKey, key)
	}

	if !r.Numeric() {
		return nil
	}

	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("%w: %s key %q is not a positive integer", ErrInvalidKey, r, key)
	}
	return nil
}

// Path is the endpoint path for key, relative to the API base.
// literal selects the unencoded query interpolation of the old fixture scripts.
func (r Resource) Path(key string, literal bool) string {
	switch r {
	case Anime:
		return "anime/" + key
	case Episodes:
		return "episodes/" + key
	case AnimeEpisodes:
		return "anime/" + key + "/episodes"
	case Searches:
		return "anime?filter[text]=" + EscapeQuery(key, literal)
	default:
		return ""
	}
}
