package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kitsufix/kitsufix/color"
	"github.com/kitsufix/kitsufix/config"
	"github.com/kitsufix/kitsufix/fixture"
	"github.com/kitsufix/kitsufix/icon"
	"github.com/kitsufix/kitsufix/key"
	"github.com/kitsufix/kitsufix/kitsu"
	"github.com/kitsufix/kitsufix/log"
	"github.com/kitsufix/kitsufix/network"
	"github.com/kitsufix/kitsufix/report"
	"github.com/kitsufix/kitsufix/style"
	"github.com/kitsufix/kitsufix/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// keyFlag ties a resource to the flag overriding its keys and the config key holding its defaults.
type keyFlag struct {
	resource kitsu.Resource
	argLong  string
	argShort mo.Option[string]
	config   string
	// free-text keys may contain commas, so they are not split
	array bool
}

var keyFlags = []keyFlag{
	{kitsu.Anime, "anime", mo.Some("a"), key.FixturesAnime, false},
	{kitsu.Episodes, "episodes", mo.Some("e"), key.FixturesEpisodes, false},
	{kitsu.Searches, "search", mo.Some("s"), key.FixturesSearches, true},
	{kitsu.AnimeEpisodes, "anime-episodes", mo.None[string](), key.FixturesAnimeEpisodes, false},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addKeyFlags(fetchCmd)

	fetchCmd.Flags().StringP("out", "o", "", "Root directory the resource directories are written to")
	lo.Must0(viper.BindPFlag(key.FetchOutput, fetchCmd.Flags().Lookup("out")))

	fetchCmd.Flags().BoolP("keep-going", "k", false, "Attempt every key and report all failures at the end")
	lo.Must0(viper.BindPFlag(key.FetchKeepGoing, fetchCmd.Flags().Lookup("keep-going")))

	fetchCmd.Flags().Bool("literal-queries", false, "Put search text into the URL unencoded, like the old fixture scripts. Changes the query for text with reserved characters such as '&'")
	lo.Must0(viper.BindPFlag(key.FetchLiteralQueries, fetchCmd.Flags().Lookup("literal-queries")))

	fetchCmd.Flags().BoolP("dry-run", "n", false, "Print the URL and file of each key without requesting or writing anything")
	fetchCmd.Flags().BoolP("json", "j", false, "Print the run report as JSON")

	fetchCmd.SetOut(os.Stdout)
}

// configured returns the keys held in config for the flag's resource.
func (f keyFlag) configured() ([]string, error) {
	if f.array {
		return config.TextList(f.config)
	}
	return viper.GetStringSlice(f.config), nil
}

func addKeyFlags(cmd *cobra.Command) {
	for _, f := range keyFlags {
		help := fmt.Sprintf("%s keys to capture instead of the configured list", f.resource)
		if f.array {
			cmd.Flags().StringArrayP(f.argLong, f.argShort.OrElse(""), nil, help+" (repeatable)")
		} else {
			cmd.Flags().StringSliceP(f.argLong, f.argShort.OrElse(""), nil, help)
		}
	}
}

var fetchCmd = &cobra.Command{
	Use:       "fetch [resource...]",
	Short:     "Capture fixtures for the given resources, or for all of them",
	Long:      "Capture one JSON fixture per lookup key. The first failed request stops the run unless --keep-going is set.",
	Example:   "  kitsufix fetch\n  kitsufix fetch anime -a 5 -a 13401\n  kitsufix fetch searches -s \"cowboy bebop\" -o lib/kitsu/test_data",
	ValidArgs: kitsu.Names(),
	Run: func(cmd *cobra.Command, args []string) {
		plan, err := buildPlan(cmd, args)
		handleErr(err)

		if plan.Len() == 0 {
			handleErr(fmt.Errorf("nothing to fetch: no keys configured for the selected resources"))
		}

		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			dryRun = lo.Must(cmd.Flags().GetBool("dry-run"))
		)

		client := kitsu.New(viper.GetString(key.APIBaseURL), network.New(time.Duration(viper.GetInt(key.FetchTimeout))*time.Second))
		client.UserAgent = viper.GetString(key.APIUserAgent)
		client.LiteralQueries = viper.GetBool(key.FetchLiteralQueries)

		fetcher := &fixture.Fetcher{
			Client: client,
			Options: fixture.Options{
				Output:    viper.GetString(key.FetchOutput),
				KeepGoing: viper.GetBool(key.FetchKeepGoing),
				DryRun:    dryRun,
			},
		}
		if !asJson {
			attachProgress(cmd, fetcher)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		log.WithFields(log.Fields{"keys": plan.Len(), "base_url": client.Base()}).Info("fetch started")
		rep, err := fetcher.Run(ctx, plan)

		if rep != nil {
			if !dryRun {
				if saveErr := report.Save(rep); saveErr != nil {
					log.WithError(saveErr).Warn("could not persist report")
				}
			}

			if asJson {
				b, jsonErr := rep.JSON()
				handleErr(jsonErr)
				cmd.Println(string(b))
			} else {
				cmd.Printf("\n%s\n", style.Faint(rep.Summary()))
			}
		}

		stop()
		handleErr(err)
	},
}

func attachProgress(cmd *cobra.Command, fetcher *fixture.Fetcher) {
	var erase = func() {}

	fetcher.OnStart = func(r kitsu.Resource, k string) {
		erase = util.PrintErasable(fmt.Sprintf("%s Fetching %s %s...", icon.Get(icon.Progress), r, k))
	}

	fetcher.OnEntry = func(e *report.Entry) {
		erase()
		switch {
		case e.Skipped:
			cmd.Printf("%s %s %s %s\n", icon.Get(icon.Skip), e.URL, style.Faint("→"), e.Path)
		case e.Failed():
			cmd.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), e.Error)
		default:
			cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), e.Path, style.Faint(util.Quantify(e.Bytes, "byte", "bytes")))
		}
	}
}

// buildPlan selects the resources named in args plus those whose key flags were
// set, or all of them when neither is given, and fills each with flag keys or
// the configured list.
func buildPlan(cmd *cobra.Command, args []string) (fixture.Plan, error) {
	overrides := make(map[kitsu.Resource]mo.Option[[]string])
	for _, f := range keyFlags {
		if !cmd.Flags().Changed(f.argLong) {
			overrides[f.resource] = mo.None[[]string]()
			continue
		}

		var keys []string
		if f.array {
			keys = lo.Must(cmd.Flags().GetStringArray(f.argLong))
		} else {
			keys = lo.Must(cmd.Flags().GetStringSlice(f.argLong))
		}
		overrides[f.resource] = mo.Some(keys)
	}

	var selected []kitsu.Resource
	for _, arg := range lo.Uniq(args) {
		r, err := kitsu.ParseResource(arg)
		if err != nil {
			return nil, err
		}
		selected = append(selected, r)
	}
	for _, r := range kitsu.Resources() {
		if overrides[r].IsPresent() && !lo.Contains(selected, r) {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		selected = kitsu.Resources()
	}

	keys := make(map[kitsu.Resource][]string, len(selected))
	for _, f := range keyFlags {
		if !lo.Contains(selected, f.resource) {
			continue
		}

		if flagKeys, ok := overrides[f.resource].Get(); ok {
			keys[f.resource] = flagKeys
			continue
		}

		configured, err := f.configured()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.config, err)
		}
		keys[f.resource] = configured
	}

	return fixture.NewPlan(keys), nil
}
