// Package settings persists per-profile player preferences in sqlite.
package settings

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyProfile is returned when an operation is given no profile name.
var ErrEmptyProfile = errors.New("settings: profile cannot be empty")

// Settings are the preferences of one profile.
type Settings struct {
	ID        int64     `json:"id"`
	Profile   string    `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AutoPlayNext     bool    `json:"autoPlayNext"`
	AutoSkip         bool    `json:"autoSkip"`
	// PreferredSpeed is 0 until the profile picks one; seek.default_speed applies meanwhile.
	PreferredSpeed   int     `json:"preferredSpeed"`
	DiscreteControls bool    `json:"discreteControls"`
	Volume           float64 `json:"volume"`
	Muted            bool    `json:"muted"`

	// ExtraData is free-form JSON for preferences without a column.
	ExtraData string `json:"extraData"`
}

// Defaults returns the settings a new profile starts with.
func Defaults(profile string) *Settings {
	now := time.Now()
	return &Settings{
		Profile:      profile,
		CreatedAt:    now,
		UpdatedAt:    now,
		AutoPlayNext: true,
		Volume:       100,
	}
}

// Fields lists the names accepted by Set.
var Fields = []string{"auto_play_next", "auto_skip", "preferred_speed", "discrete_controls", "volume", "muted", "extra_data"}

// Set assigns the field called name from its string form.
func (s *Settings) Set(name, value string) error {
	var err error

	switch strings.ToLower(name) {
	case "auto_play_next":
		s.AutoPlayNext, err = strconv.ParseBool(value)
	case "auto_skip":
		s.AutoSkip, err = strconv.ParseBool(value)
	case "discrete_controls":
		s.DiscreteControls, err = strconv.ParseBool(value)
	case "muted":
		s.Muted, err = strconv.ParseBool(value)
	case "preferred_speed":
		s.PreferredSpeed, err = strconv.Atoi(value)
		if err == nil && s.PreferredSpeed < 0 {
			err = errors.New("must be positive, or 0 to follow seek.default_speed")
		}
	case "volume":
		s.Volume, err = strconv.ParseFloat(value, 64)
		if err == nil && (s.Volume < 0 || s.Volume > 150) {
			err = errors.New("must be between 0 and 150")
		}
	case "extra_data":
		s.ExtraData = value
	default:
		return errors.New("unknown setting " + strconv.Quote(name))
	}

	if err != nil {
		return errors.New("invalid value for " + name + ": " + err.Error())
	}
	return nil
}

func scan(row interface{ Scan(...any) error }) (*Settings, error) {
	var (
		s                Settings
		created, updated int64
	)

	err := row.Scan(
		&s.ID, &s.Profile, &created, &updated,
		&s.AutoPlayNext, &s.AutoSkip, &s.PreferredSpeed, &s.DiscreteControls,
		&s.Volume, &s.Muted, &s.ExtraData,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = time.Unix(created, 0)
	s.UpdatedAt = time.Unix(updated, 0)
	return &s, nil
}
