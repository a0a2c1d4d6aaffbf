package cmd

import (
	"errors"
	"os"

	json "github.com/goccy/go-json"
	"github.com/kitsufix/kitsufix/color"
	"github.com/kitsufix/kitsufix/icon"
	"github.com/kitsufix/kitsufix/report"
	"github.com/kitsufix/kitsufix/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolP("json", "j", false, "Print the report as JSON")
	reportCmd.Flags().BoolP("failed", "f", false, "Only list failed keys")
	reportCmd.SetOut(os.Stdout)

	reportCmd.AddCommand(reportSchemaCmd)
	reportSchemaCmd.SetOut(os.Stdout)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the outcome of the last fetch run",
	Run: func(cmd *cobra.Command, args []string) {
		rep, err := report.Last()
		if errors.Is(err, report.ErrNoReport) {
			cmd.Println(style.Faint(err.Error()))
			return
		}
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			b, err := rep.JSON()
			handleErr(err)
			cmd.Println(string(b))
			return
		}

		entries := rep.Entries
		if lo.Must(cmd.Flags().GetBool("failed")) {
			entries = rep.Failed()
		}

		cmd.Printf("%s %s\n", style.Bold(rep.BaseURL), style.Faint(rep.FinishedAt.Format("2006-01-02 15:04:05")))
		for _, e := range entries {
			if e.Failed() {
				cmd.Printf("%s %s/%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), e.Resource, e.Key, style.Faint(e.Error))
				continue
			}
			cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), e.Path)
		}
		cmd.Println(style.Faint(rep.Summary()))
	},
}

var reportSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the report",
	Run: func(cmd *cobra.Command, args []string) {
		b, err := json.MarshalIndent(report.Schema(), "", "    ")
		handleErr(err)
		cmd.Println(string(b))
	},
}
