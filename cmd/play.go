package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/anisan-cli/seaplay/aniskip"
	"github.com/anisan-cli/seaplay/config"
	"github.com/anisan-cli/seaplay/history"
	"github.com/anisan-cli/seaplay/icon"
	"github.com/anisan-cli/seaplay/key"
	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/player"
	"github.com/anisan-cli/seaplay/remote"
	"github.com/anisan-cli/seaplay/seek"
	"github.com/anisan-cli/seaplay/settings"
	"github.com/anisan-cli/seaplay/surface"
	"github.com/anisan-cli/seaplay/tui"
	"github.com/anisan-cli/seaplay/util"
	"github.com/anisan-cli/seaplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// how long to wait for the player to report a duration before giving up on resume and skip times
	loadTimeout  = 15 * time.Second
	loadInterval = 250 * time.Millisecond

	trackerInterval = 5 * time.Second
)

func init() {
	rootCmd.AddCommand(playCmd)
	registerPlayFlags(playCmd)
}

func registerPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Title shown by the player and the control panel")
	cmd.Flags().IntP("mal-id", "m", 0, "MyAnimeList id, used for skip times and history")
	cmd.Flags().IntP("episode", "e", 0, "Episode number, used for skip times and history")
	cmd.Flags().Bool("no-skip", false, "Do not look up intro and outro skip times")
	cmd.Flags().String("remote", "", "Connect to a remote control at this WebSocket address")
	cmd.Flags().String("profile", "", "Settings profile to apply")
	cmd.Flags().String("player", "", "Player backend (mpv or iina)")
}

var playCmd = &cobra.Command{
	Use:   "play <url or path>",
	Short: "Play media with the continuous seek control panel",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(runPlay(cmd, args[0]))
	},
}

type playOptions struct {
	target     string
	title      string
	malID      int
	episode    int
	skip       bool
	remoteAddr string
	profile    string
	player     string
}

func playOptionsFrom(cmd *cobra.Command, target string) playOptions {
	flags := cmd.Flags()
	o := playOptions{
		target:     target,
		title:      lo.Must(flags.GetString("title")),
		malID:      lo.Must(flags.GetInt("mal-id")),
		episode:    lo.Must(flags.GetInt("episode")),
		skip:       viper.GetBool(key.Aniskip) && !lo.Must(flags.GetBool("no-skip")),
		remoteAddr: lo.Must(flags.GetString("remote")),
		profile:    lo.Must(flags.GetString("profile")),
		player:     lo.Must(flags.GetString("player")),
	}

	if o.remoteAddr == "" && viper.GetBool(key.RemoteEnable) {
		o.remoteAddr = viper.GetString(key.RemoteAddress)
	}
	if o.profile == "" {
		o.profile = viper.GetString(key.SettingsProfile)
	}
	if o.player == "" {
		o.player = viper.GetString(key.Player)
	}
	if o.title == "" {
		o.title = target
	}
	return o
}

func runPlay(cmd *cobra.Command, target string) error {
	o := playOptionsFrom(cmd, target)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := checkDependencies(o.player); err != nil {
		return err
	}

	prefs := loadPreferences(ctx, o.profile)

	p, err := player.New(o.player)
	if err != nil {
		return err
	}
	if err := p.Play(o.target, o.title, nil); err != nil {
		return err
	}
	defer util.Ignore(p.Close)

	if !p.Controllable() {
		log.Infof("%s has no control channel; waiting for it to exit", o.player)
		<-p.Wait()
		return nil
	}

	seeker := seek.NewSeeker(p)
	controller := seek.NewController(seeker, seekOptionsFor(prefs))
	defer controller.Close()

	duration := awaitDuration(ctx, seeker)

	entry := resume(seeker, o, duration)

	var times *aniskip.SkipTimes
	if o.skip && o.malID > 0 && o.episode > 0 {
		times, err = aniskip.NewClient(viper.GetString(key.AniskipEndpoint)).SkipTimes(ctx, o.malID, o.episode, duration)
		if err != nil {
			log.Warnf("aniskip: %s", err)
		}
	}

	autoSkip := viper.GetBool(key.PlayerAutoSkip) || (prefs != nil && prefs.AutoSkip)
	skipper := player.NewSkipper(seeker, times, autoSkip)
	if err := skipper.ApplyChapters(p); err != nil {
		log.Warnf("chapters: %s", err)
	}

	dispatcher := &surface.Dispatcher{
		Seeker:     seeker,
		Controller: controller,
		Skipper:    skipper,
		Pauser:     p,
	}

	short, long := config.Jumps()
	options := &tui.Options{
		Title:       o.title,
		Player:      p,
		Dispatcher:  dispatcher,
		Affordances: surface.Controls(controller.Speeds(), short, long),
		Skipper:     skipper,
		Resync:      config.ResyncInterval(),
	}

	if viper.GetBool(key.HistorySaveOnWatch) {
		options.Tracker = history.NewTracker(entry, trackerInterval)
	}

	if o.remoteAddr != "" {
		client := remote.Connect(o.remoteAddr, dispatcher, config.Transport())
		defer util.Ignore(client.Close)
		options.Link = client
	}

	return tui.Run(options)
}

// seekOptionsFor applies a profile's preferred speed over seek.default_speed when the profile set one.
func seekOptionsFor(prefs *settings.Settings) seek.Options {
	opts := config.Seek()
	if prefs != nil && prefs.PreferredSpeed > 0 {
		opts.DefaultSpeed = seek.Speed(prefs.PreferredSpeed)
	}
	return opts
}

// loadPreferences returns the profile's settings, or nil when the store is unavailable.
func loadPreferences(ctx context.Context, profile string) *settings.Settings {
	store, err := settings.Open(where.Settings())
	if err != nil {
		log.Warnf("settings: %s", err)
		return nil
	}
	defer util.Ignore(store.Close)

	prefs, err := store.Get(ctx, profile)
	if err != nil {
		log.Warnf("settings: %s", err)
		return nil
	}
	return prefs
}

// awaitDuration polls until the player reports a duration. It returns 0 if none arrives in time.
func awaitDuration(ctx context.Context, seeker *seek.Seeker) float64 {
	erase := util.PrintErasable(fmt.Sprintf("%s Waiting for the player...", icon.Get(icon.Progress)))
	defer erase()

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	ticker := time.NewTicker(loadInterval)
	defer ticker.Stop()

	for {
		if pos, ok := seeker.Position(); ok && pos.Known() {
			return pos.Duration
		}

		select {
		case <-ctx.Done():
			log.Warnf("player did not report a duration: %s", ctx.Err())
			return 0
		case <-ticker.C:
		}
	}
}

// resume returns the history entry for this media, seeking to where it stopped last time.
func resume(seeker *seek.Seeker, o playOptions, duration float64) *history.Entry {
	mediaKey := history.KeyOf(o.target, o.malID, o.episode)

	entry, found, err := history.Find(mediaKey)
	if err != nil {
		log.Warnf("history: %s", err)
	}
	if !found || entry == nil {
		entry = &history.Entry{Key: mediaKey}
	}

	entry.Title = o.title
	entry.URL = o.target
	entry.MalID = o.malID
	entry.Episode = o.episode

	if found && viper.GetBool(key.PlayerResume) && duration > 0 {
		completion := float64(viper.GetInt(key.PlayerCompletionPercentage))
		if at := entry.ResumeAt(duration, completion); at > 0 {
			log.Infof("resuming %s at %.1f", mediaKey, at)
			seeker.Absolute(at)
		}
	}
	return entry
}
