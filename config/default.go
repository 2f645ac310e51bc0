package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/anisan-cli/seaplay/color"
	"github.com/anisan-cli/seaplay/constant"
	"github.com/anisan-cli/seaplay/key"
	"github.com/anisan-cli/seaplay/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `seaplay config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable that overrides this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Seaplay + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds every registered field keyed by its config key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.Player, "mpv", "Media player to use (mpv, iina)")
	register(key.PlayerCompletionPercentage, 80, "Percentage required to mark an episode as watched (1-100)")
	register(key.PlayerResume, true, "Resume from the last saved position")
	register(key.Aniskip, true, "Look up intro/outro intervals on aniskip")
	register(key.PlayerAutoSkip, false, "Skip intro and outro without asking")
	register(key.AniskipEndpoint, "https://api.aniskip.com/v1", "Aniskip API endpoint")

	register(key.SeekSpeeds, []int{2, 5, 10, 20}, "Continuous seek speeds, in seconds per tick")
	register(key.SeekDefaultSpeed, 2, "Speed used the first time continuous seek is toggled")
	register(key.SeekIntervalMs, 1000, "Milliseconds between continuous seek ticks")
	register(key.SeekResumePolicy, "last", "Speed used when toggling without an explicit speed.\nAvailable options are: last, default")
	register(key.SeekJumpShort, 10, "Seconds jumped by left/right")
	register(key.SeekJumpLong, 30, "Seconds jumped by shift+left/right")

	register(key.SurfaceResyncIntervalMs, 0, "Re-render the control panel every N milliseconds. 0 disables it")

	register(key.RemoteEnable, false, "Connect to a remote control over WebSocket")
	register(key.RemoteAddress, "", "WebSocket address of the remote control, e.g. ws://localhost:43211/ws")

	register(key.TransportMaxAttempts, 5, "Reconnect attempts before giving up")
	register(key.TransportBackoffMs, 2000, "Milliseconds to wait before each reconnect attempt")
	register(key.TransportBackoff, "fixed", "Reconnect backoff.\nAvailable options are: fixed, exponential")

	register(key.HistorySaveOnWatch, true, "Save watch position to history")
	register(key.SettingsProfile, "default", "Settings profile to load")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when showing help or version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
