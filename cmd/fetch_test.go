package cmd

import (
	"testing"

	"github.com/kitsufix/kitsufix/config"
	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/kitsufix/kitsufix/key"
	"github.com/kitsufix/kitsufix/kitsu"
	"github.com/kitsufix/kitsufix/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestBuildPlan(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		t.Setenv(where.EnvConfigPath, "/kitsufix")
		So(config.Setup(), ShouldBeNil)

		cmd := &cobra.Command{}
		addKeyFlags(cmd)

		Convey("Without arguments every configured resource is planned", func() {
			plan, err := buildPlan(cmd, nil)
			So(err, ShouldBeNil)
			So(plan, ShouldHaveLength, 3)
			So(plan[0].Resource, ShouldEqual, kitsu.Anime)
			So(plan[0].Keys, ShouldResemble, []string{"13401", "46174", "5"})
			So(plan[1].Keys, ShouldResemble, []string{"99605", "89"})
			So(plan[2].Keys, ShouldHaveLength, 6)
			So(plan.Len(), ShouldEqual, 11)
		})

		Convey("Resource arguments narrow the plan", func() {
			plan, err := buildPlan(cmd, []string{"episodes"})
			So(err, ShouldBeNil)
			So(plan, ShouldHaveLength, 1)
			So(plan[0].Resource, ShouldEqual, kitsu.Episodes)
		})

		Convey("An unknown resource argument is rejected", func() {
			_, err := buildPlan(cmd, []string{"animes"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `"anime"`)
		})

		Convey("Key flags replace the configured keys and select their resource", func() {
			So(cmd.Flags().Set("anime", "5"), ShouldBeNil)
			So(cmd.Flags().Set("search", "food, glorious food"), ShouldBeNil)

			plan, err := buildPlan(cmd, nil)
			So(err, ShouldBeNil)
			So(plan, ShouldHaveLength, 2)
			So(plan[0].Keys, ShouldResemble, []string{"5"})
			So(plan[1].Keys, ShouldResemble, []string{"food, glorious food"})
		})

		Convey("Key flags add their resource to the named ones", func() {
			So(cmd.Flags().Set("search", "food"), ShouldBeNil)

			plan, err := buildPlan(cmd, []string{"anime"})
			So(err, ShouldBeNil)
			So(plan, ShouldHaveLength, 2)
			So(plan[0].Resource, ShouldEqual, kitsu.Anime)
			So(plan[0].Keys, ShouldResemble, []string{"13401", "46174", "5"})
			So(plan[1].Resource, ShouldEqual, kitsu.Searches)
			So(plan[1].Keys, ShouldResemble, []string{"food"})
		})

		Convey("A resource with no keys is left out", func() {
			viper.Set(key.FixturesEpisodes, []string{})
			defer viper.Set(key.FixturesEpisodes, config.Default[key.FixturesEpisodes].Value)

			plan, err := buildPlan(cmd, []string{"episodes", "anime-episodes"})
			So(err, ShouldBeNil)
			So(plan.Len(), ShouldEqual, 0)
		})
	})
}

func TestBuildPlanFromEnv(t *testing.T) {
	Convey("Given searches overridden through the environment", t, func() {
		t.Setenv(where.EnvConfigPath, "/kitsufix")
		t.Setenv("KITSUFIX_FIXTURES_SEARCHES", "cowboy bebop")
		So(config.Setup(), ShouldBeNil)

		cmd := &cobra.Command{}
		addKeyFlags(cmd)

		Convey("A multi-word search stays one key", func() {
			plan, err := buildPlan(cmd, []string{"searches"})
			So(err, ShouldBeNil)
			So(plan, ShouldHaveLength, 1)
			So(plan[0].Keys, ShouldResemble, []string{"cowboy bebop"})
		})

		Convey("One search per line", func() {
			t.Setenv("KITSUFIX_FIXTURES_SEARCHES", "cowboy bebop\nfood")
			plan, err := buildPlan(cmd, []string{"searches"})
			So(err, ShouldBeNil)
			So(plan[0].Keys, ShouldResemble, []string{"cowboy bebop", "food"})
		})
	})
}
