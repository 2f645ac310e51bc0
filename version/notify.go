package version

import (
	"context"
	"fmt"
	"time"

	"github.com/anisan-cli/seaplay/color"
	"github.com/anisan-cli/seaplay/constant"
	"github.com/anisan-cli/seaplay/icon"
	"github.com/anisan-cli/seaplay/key"
	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/style"
	"github.com/anisan-cli/seaplay/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release is available. Lookup failures are silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Debugf("version check: %s", err)
		return
	}

	if newer, err := Newer(latest, constant.Version); err != nil || !newer {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(constant.Repository+"/releases/tag/v"+latest),
	)
}
