package cmd

import (
	"os"

	"github.com/kitsufix/kitsufix/color"
	"github.com/kitsufix/kitsufix/config"
	"github.com/kitsufix/kitsufix/key"
	"github.com/kitsufix/kitsufix/style"
	"github.com/kitsufix/kitsufix/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type whereTarget struct {
	name     string
	where    func() string
	argLong  string
	argShort mo.Option[string]
}

var wherePaths = []*whereTarget{
	{"Config", config.FilePath, "config", mo.Some("c")},
	{"Fixtures", func() string { return where.Fixtures(viper.GetString(key.FetchOutput), "") }, "fixtures", mo.Some("f")},
	{"Logs", where.Logs, "logs", mo.Some("l")},
	{"Report", where.Report, "report", mo.Some("r")},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, n := range wherePaths {
		whereCmd.Flags().BoolP(n.argLong, n.argShort.OrElse(""), false, n.name+" path")
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t *whereTarget, _ int) string {
		return t.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where kitsufix reads and writes files",
	Run: func(cmd *cobra.Command, args []string) {
		headerStyle := style.New().Bold(true).Foreground(color.HiPurple).Render

		for _, n := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(n.argLong)) {
				cmd.Println(n.where())
				return
			}
		}

		for i, n := range wherePaths {
			cmd.Printf("%s %s\n", headerStyle(n.name+"?"), style.Fg(color.Yellow)("--"+n.argLong))
			cmd.Println(n.where())

			if i < len(wherePaths)-1 {
				cmd.Println()
			}
		}
	},
}
