// Package aniskip fetches opening and ending intervals from the AniSkip API.
package aniskip

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/anisan-cli/seaplay/log"
	"github.com/anisan-cli/seaplay/network"
)

// DefaultEndpoint is the public v1 API.
const DefaultEndpoint = "https://api.aniskip.com/v1"

// endingTolerance bounds how far an ending may start from the reported episode length
// before it is considered to belong to a different cut of the episode.
const endingTolerance = 500

type SkipTimes struct {
	Opening  Interval `json:"opening"`
	Ending   Interval `json:"ending"`
	HasIntro bool     `json:"has_intro"`
	HasOutro bool     `json:"has_outro"`
}

// Interval is a span of the episode in seconds.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether t lies within the interval, bounds included.
func (i Interval) Contains(t float64) bool {
	return t >= i.Start && t <= i.End
}

// Valid reports whether the interval has a positive length.
func (i Interval) Valid() bool {
	return i.End > i.Start
}

type apiResponse struct {
	Found   bool `json:"found"`
	Results []struct {
		Interval struct {
			StartTime float64 `json:"start_time"`
			EndTime   float64 `json:"end_time"`
		} `json:"interval"`
		SkipType      string  `json:"skip_type"`
		EpisodeLength float64 `json:"episode_length"`
	} `json:"results"`
}

type Client struct {
	HTTP     *http.Client
	Endpoint string
}

// NewClient returns a client for endpoint, or DefaultEndpoint when it is empty.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{HTTP: network.Client, Endpoint: strings.TrimSuffix(endpoint, "/")}
}

// SkipTimes looks up the intervals of an episode. episodeLength is the local duration
// in seconds, 0 when unknown. Unavailable data yields nil without an error.
func (c *Client) SkipTimes(ctx context.Context, malID, episode int, episodeLength float64) (*SkipTimes, error) {
	if malID <= 0 || episode <= 0 {
		return nil, nil
	}

	url := fmt.Sprintf("%s/skip-times/%d/%d?types=op&types=ed", c.Endpoint, malID, episode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Warnf("aniskip request failed: %v", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("aniskip returned status %d", resp.StatusCode)
		return nil, nil
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse aniskip response: %w", err)
	}

	if !data.Found || len(data.Results) == 0 {
		return nil, nil
	}

	times := &SkipTimes{}
	for _, result := range data.Results {
		interval := Interval{Start: result.Interval.StartTime, End: result.Interval.EndTime}

		switch result.SkipType {
		case "op":
			times.Opening = interval
			times.HasIntro = true
		case "ed":
			length := result.EpisodeLength
			if length <= 0 {
				length = episodeLength
			}
			if length > 0 && math.Abs(interval.Start-length) >= endingTolerance {
				log.Infof("aniskip: ignoring ending at %.0fs for a %.0fs episode", interval.Start, length)
				continue
			}
			times.Ending = interval
			times.HasOutro = true
		}
	}

	if !times.HasIntro && !times.HasOutro {
		return nil, nil
	}
	return times, nil
}
