package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/anisan-cli/seaplay/color"
	"github.com/anisan-cli/seaplay/constant"
	"github.com/anisan-cli/seaplay/style"
	"github.com/anisan-cli/seaplay/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print the bare version")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		if lo.Must(cmd.Flags().GetBool("short")) {
			fmt.Fprintln(out, constant.Version)
			return
		}

		printBuildInfo(out)
		version.Notify()
	},
}

type buildField struct {
	label, value string
}

func printBuildInfo(out io.Writer) {
	fields := []buildField{
		{"version", constant.Version},
		{"commit", constant.Revision},
		{"built", strings.TrimSpace(constant.BuiltAt)},
		{"by", constant.BuiltBy},
		{"platform", runtime.GOOS + "/" + runtime.GOARCH},
	}

	fmt.Fprintf(out, "%s %s\n\n", style.Fg(color.Purple)("▇▇▇"), style.Bold(constant.Seaplay))

	width := lo.Max(lo.Map(fields, func(f buildField, _ int) int { return len(f.label) }))
	for _, f := range fields {
		fmt.Fprintf(out, "  %s  %s\n", style.Faint(fmt.Sprintf("%-*s", width, f.label)), f.value)
	}

	fmt.Fprintf(out, "\n  %s\n", style.Faint(constant.Repository))
}
