package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/anisan-cli/seaplay/filesystem"
	"github.com/anisan-cli/seaplay/network"
	"github.com/anisan-cli/seaplay/util"
	"github.com/anisan-cli/seaplay/where"
	"github.com/metafates/gache"
)

// ReleasesAPI reports the latest published release.
const ReleasesAPI = "https://api.github.com/repos/anisan-cli/seaplay/releases/latest"

const cacheLifetime = 48 * time.Hour

// Checker looks up the latest release, remembering the answer for a while.
type Checker struct {
	HTTP  *http.Client
	URL   string
	cache *gache.Cache[string]
}

// NewChecker returns a Checker that caches under cacheDir.
func NewChecker(cacheDir string) *Checker {
	return &Checker{
		HTTP: network.Client,
		URL:  ReleasesAPI,
		cache: gache.New[string](&gache.Options{
			Path:       filepath.Join(cacheDir, "version.json"),
			Lifetime:   cacheLifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Latest returns the newest release version without the leading "v".
func (c *Checker) Latest(ctx context.Context) (string, error) {
	cached, expired, err := c.cache.Get()
	if err == nil && !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("releases: %w", err)
	}
	if release.TagName == "" {
		return "", errors.New("releases: empty tag name")
	}

	v, err := Parse(release.TagName)
	if err != nil {
		return "", err
	}

	latest := v.String()
	_ = c.cache.Set(latest)
	return latest, nil
}

var defaultChecker *Checker

// Latest asks the default checker, caching under where.Cache.
func Latest(ctx context.Context) (string, error) {
	if defaultChecker == nil {
		defaultChecker = NewChecker(where.Cache())
	}
	return defaultChecker.Latest(ctx)
}
