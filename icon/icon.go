// Package icon renders player glyphs in the variant chosen by icons.variant:
// emoji, nerd-font, plain ASCII, kaomoji or squares.
package icon

import (
	"github.com/anisan-cli/seaplay/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var variants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

func AvailableVariants() []string {
	return append([]string(nil), variants...)
}

type iconDef struct {
	emoji, nerd, plain, kaomoji, squares string
}

func (d *iconDef) in(variant string) string {
	glyphs := map[string]string{
		"emoji":   d.emoji,
		"nerd":    d.nerd,
		"plain":   d.plain,
		"kaomoji": d.kaomoji,
		"squares": d.squares,
	}
	return glyphs[variant]
}

// Get renders i in the configured variant. Unknown variants and icons render empty.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	variant := viper.GetString(key.IconsVariant)
	if !lo.Contains(variants, variant) {
		return ""
	}
	return def.in(variant)
}
