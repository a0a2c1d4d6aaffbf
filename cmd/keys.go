package cmd

import (
	"os"

	"github.com/kitsufix/kitsufix/color"
	"github.com/kitsufix/kitsufix/kitsu"
	"github.com/kitsufix/kitsufix/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.SetOut(os.Stdout)
}

var keysCmd = &cobra.Command{
	Use:       "keys [resource...]",
	Short:     "List the configured lookup keys per resource",
	ValidArgs: kitsu.Names(),
	Run: func(cmd *cobra.Command, args []string) {
		selected := kitsu.Resources()
		if len(args) > 0 {
			selected = lo.Map(args, func(arg string, _ int) kitsu.Resource {
				r, err := kitsu.ParseResource(arg)
				handleErr(err)
				return r
			})
		}

		for i, r := range selected {
			f, _ := lo.Find(keyFlags, func(f keyFlag) bool { return f.resource == r })
			keys, err := f.configured()
			handleErr(err)

			cmd.Printf("%s %s\n", style.New().Bold(true).Foreground(color.HiPurple).Render(r.String()), style.Faint(f.config))
			if len(keys) == 0 {
				cmd.Println(style.Faint("  (none)"))
			}
			for _, k := range keys {
				cmd.Printf("  %s\n", style.Fg(color.Yellow)(k))
			}

			if i < len(selected)-1 {
				cmd.Println()
			}
		}
	},
}
