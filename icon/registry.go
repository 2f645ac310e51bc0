package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Forward
	Rewind
	Active
	Skip
	Remote
	Offline
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💣",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・)…",
		squares: "🟦",
	},
	Forward: {
		emoji:   "⏩",
		nerd:    "",
		plain:   ">>",
		kaomoji: "(ﾉ≧∀≦)ﾉ",
		squares: "▶▶",
	},
	Rewind: {
		emoji:   "⏪",
		nerd:    "",
		plain:   "<<",
		kaomoji: "ヽ(≧∀≦ヽ)",
		squares: "◀◀",
	},
	Active: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－_－)",
		squares: "⏸",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   ">|",
		kaomoji: "(⌐■_■)",
		squares: "▶|",
	},
	Remote: {
		emoji:   "📡",
		nerd:    "",
		plain:   "~",
		kaomoji: "(っ◔◡◔)っ",
		squares: "🟪",
	},
	Offline: {
		emoji:   "🔌",
		nerd:    "",
		plain:   "-",
		kaomoji: "(╥_╥)",
		squares: "⬛",
	},
}
