package cmd

import (
	"os"

	"github.com/anisan-cli/seaplay/color"
	"github.com/anisan-cli/seaplay/style"
	"github.com/anisan-cli/seaplay/util"
	"github.com/anisan-cli/seaplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a directory or file seaplay reads or writes.
type location struct {
	flag, short string
	path        func() string
	internal    bool
}

var locations = []location{
	{flag: "config", short: "c", path: where.Config},
	{flag: "logs", short: "l", path: where.Logs},
	{flag: "settings", short: "s", path: where.Settings},
	{flag: "history", path: where.History, internal: true},
	{flag: "cache", path: where.Cache, internal: true},
	{flag: "temp", path: where.Temp, internal: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	flags := whereCmd.Flags()
	for _, l := range locations {
		flags.BoolP(l.flag, l.short, false, "print only the "+l.flag+" path")
		if l.internal {
			lo.Must0(flags.MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where seaplay keeps its files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if l, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		}); ok {
			cmd.Println(l.path())
			return
		}

		title := style.New().Bold(true).Foreground(color.HiPurple).Render
		public := lo.Reject(locations, func(l location, _ int) bool { return l.internal })

		for i, l := range public {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", title(util.Capitalize(l.flag)), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}
