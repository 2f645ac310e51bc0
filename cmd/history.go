package cmd

import (
	"os"
	"time"

	"github.com/anisan-cli/seaplay/color"
	"github.com/anisan-cli/seaplay/history"
	"github.com/anisan-cli/seaplay/style"
	"github.com/anisan-cli/seaplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the watch history",
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntP("limit", "n", 0, "Show at most this many entries")
	historyListCmd.SetOut(os.Stdout)
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved positions, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		entries := lo.Values(saved)
		slices.SortFunc(entries, func(a, b *history.Entry) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("No history yet"))
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(e.String()), style.Faint(e.UpdatedAt.Format(time.DateTime)))
			cmd.Println(style.Faint("  " + e.Key))
		}
		cmd.Println()
		cmd.Println(style.Faint(util.Quantify(len(saved), "entry", "entries")))
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Forget the saved position of one entry",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		saved, err := history.Get()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return lo.Keys(saved), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(history.Remove(args[0]))
		success("removed %s", args[0])
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved position",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(history.Clear())
		success("history cleared")
	},
}
