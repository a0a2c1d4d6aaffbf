// Package constant defines immutable application-level identifiers and defaults.
package constant

const (
	// App is the application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "kitsufix"

	// Version is the current application semantic version string.
	Version = "0.2.0"

	// UserAgent is sent with every upstream request.
	UserAgent = App + "/" + Version + " (+https://github.com/kitsufix/kitsufix)"

	// BaseURL is the Kitsu JSON:API edge endpoint.
	BaseURL = "https://kitsu.io/api/edge"

	// Indent is the indentation unit of written fixture files.
	Indent = "    "
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
