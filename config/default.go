package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	json "github.com/goccy/go-json"
	"github.com/kitsufix/kitsufix/color"
	"github.com/kitsufix/kitsufix/constant"
	"github.com/kitsufix/kitsufix/key"
	"github.com/kitsufix/kitsufix/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration entry.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable that overrides this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        reflect.TypeOf(f.Value).String(),
		Env:         f.Env(),
	})
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.APIBaseURL, constant.BaseURL, "Base URL of the Kitsu JSON:API endpoint")
	register(key.APIUserAgent, constant.UserAgent, "User-Agent header sent with every request")

	register(key.FixturesAnime, []string{"13401", "46174", "5"}, "Anime IDs captured into anime/")
	register(key.FixturesEpisodes, []string{"99605", "89"}, "Episode IDs captured into episodes/")
	register(key.FixturesSearches, []string{
		"3-gatsu no Lion 2nd Season",
		"cowboy bebop",
		"5 Centimeter per Second",
		"food",
		"high",
		"hello",
	}, "Search texts captured into searches/")
	register(key.FixturesAnimeEpisodes, []string{}, "Anime IDs whose episode listing is captured into anime-episodes/")

	register(key.FetchOutput, ".", "Root directory the resource directories are created in")
	register(key.FetchKeepGoing, false, "Keep fetching after a failed key and report every failure at the end")
	register(key.FetchLiteralQueries, false, "Interpolate search text into the query string without form encoding.\nOnly bytes that cannot appear in a URL are escaped")
	register(key.FetchTimeout, 0, "Request timeout in seconds. 0 disables the timeout")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares, nerd (nerd-font required)")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"blue":     style.Fg(color.Blue),
	"purple":   style.Fg(color.Purple),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
