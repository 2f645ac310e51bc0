package player

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anisan-cli/seaplay/constant"
	"github.com/anisan-cli/seaplay/filesystem"
	"github.com/anisan-cli/seaplay/log"
)

// StaleSocketAge is how old a leftover IPC socket must be before it is removed.
const StaleSocketAge = 24 * time.Hour

// CollectGarbage removes IPC sockets older than maxAge from dir.
// mpv leaves them behind when it is killed. It returns how many were removed.
func CollectGarbage(dir string, maxAge time.Duration) int {
	infos, err := filesystem.API().ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("collect sockets: %s", err)
		}
		return 0
	}

	var removed int
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || !strings.HasPrefix(name, constant.Seaplay+"-") || !strings.HasSuffix(name, ".sock") {
			continue
		}
		if time.Since(info.ModTime()) < maxAge {
			continue
		}

		if err := filesystem.API().Remove(filepath.Join(dir, name)); err != nil {
			log.Warnf("remove stale socket %s: %s", name, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Infof("removed %d stale sockets", removed)
	}
	return removed
}
