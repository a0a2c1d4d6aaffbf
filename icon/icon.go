// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/kitsufix/kitsufix/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Skip
	Fetch
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "✓", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "", plain: "✗", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "", plain: "…", squares: "🟦"},
	Skip:     {emoji: "⏭️", nerd: "", plain: "-", squares: "⬜"},
	Fetch:    {emoji: "🌐", nerd: "", plain: "→", squares: "🟨"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the symbol for i, or "" for an unknown variant.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.get()
}
