package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anisan-cli/seaplay/color"
	"github.com/anisan-cli/seaplay/key"
	"github.com/anisan-cli/seaplay/settings"
	"github.com/anisan-cli/seaplay/style"
	"github.com/anisan-cli/seaplay/util"
	"github.com/anisan-cli/seaplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.PersistentFlags().StringP("profile", "p", "", "Settings profile (defaults to settings.profile)")
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage per-profile player preferences",
}

func profileFlag(cmd *cobra.Command) string {
	if profile := lo.Must(cmd.Flags().GetString("profile")); profile != "" {
		return profile
	}
	return viper.GetString(key.SettingsProfile)
}

// withStore opens the settings database for the duration of fn.
func withStore(fn func(ctx context.Context, store *settings.Store) error) error {
	store, err := settings.Open(where.Settings())
	if err != nil {
		return err
	}
	defer util.Ignore(store.Close)

	return fn(context.Background(), store)
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsShowCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	settingsShowCmd.SetOut(os.Stdout)
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the preferences of a profile",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(withStore(func(ctx context.Context, store *settings.Store) error {
			s, err := store.Get(ctx, profileFlag(cmd))
			if err != nil {
				return err
			}

			if lo.Must(cmd.Flags().GetBool("json")) {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(s)
			}

			name := style.New().Bold(true).Foreground(color.Purple).Render
			cmd.Printf("%s %s\n\n", style.Title("Profile"), s.Profile)
			for _, f := range []lo.Tuple2[string, any]{
				{A: "auto_play_next", B: s.AutoPlayNext},
				{A: "auto_skip", B: s.AutoSkip},
				{A: "preferred_speed", B: s.PreferredSpeed},
				{A: "discrete_controls", B: s.DiscreteControls},
				{A: "volume", B: s.Volume},
				{A: "muted", B: s.Muted},
				{A: "extra_data", B: s.ExtraData},
			} {
				cmd.Printf("%s = %s\n", name(f.A), style.Fg(color.Yellow)(fmt.Sprintf("%v", f.B)))
			}
			return nil
		}))
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Change one preference of a profile",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return settings.Fields, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(withStore(func(ctx context.Context, store *settings.Store) error {
			s, err := store.Get(ctx, profileFlag(cmd))
			if err != nil {
				return err
			}
			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := store.Upsert(ctx, s); err != nil {
				return err
			}

			success("set %s to %s for %s", style.Fg(color.Purple)(args[0]), style.Fg(color.Yellow)(args[1]), s.Profile)
			return nil
		}))
	},
}

func init() {
	settingsCmd.AddCommand(settingsResetCmd)
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the preferences of a profile",
	Run: func(cmd *cobra.Command, args []string) {
		profile := profileFlag(cmd)
		handleErr(withStore(func(ctx context.Context, store *settings.Store) error {
			return store.Delete(ctx, profile)
		}))
		success("reset settings for %s", profile)
	},
}

func init() {
	settingsCmd.AddCommand(settingsProfilesCmd)
	settingsProfilesCmd.SetOut(os.Stdout)
}

var settingsProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored profiles",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(withStore(func(ctx context.Context, store *settings.Store) error {
			profiles, err := store.Profiles(ctx)
			if err != nil {
				return err
			}
			for _, p := range profiles {
				cmd.Println(p)
			}
			return nil
		}))
	},
}
