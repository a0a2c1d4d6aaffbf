// Package key defines the configuration identifiers shared by config, cmd and the fetch pipeline.
package key

// Upstream API.
const (
	APIBaseURL   = "api.base_url"
	APIUserAgent = "api.user_agent"
)

// Lookup keys captured by default, one list per resource.
const (
	FixturesAnime         = "fixtures.anime"
	FixturesEpisodes      = "fixtures.episodes"
	FixturesSearches      = "fixtures.searches"
	FixturesAnimeEpisodes = "fixtures.anime_episodes"
)

// Fetch behaviour.
const (
	FetchOutput         = "fetch.output"
	FetchKeepGoing      = "fetch.keep_going"
	FetchLiteralQueries = "fetch.literal_queries"
	FetchTimeout        = "fetch.timeout"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI presentation.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
