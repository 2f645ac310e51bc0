// Package main is the entry point for seaplay.
package main

import (
	"github.com/anisan-cli/seaplay/cmd"
	"github.com/anisan-cli/seaplay/config"
	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/player"
	"github.com/anisan-cli/seaplay/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go player.CollectGarbage(where.Temp(), player.StaleSocketAge)

	cmd.Execute()
}
