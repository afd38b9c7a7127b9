// internal/themes/registry.go
package themes

import "strings"

// Theme is the token bundle rendering surfaces consume: background, card
// surface, text color triple and button color pairs.
type Theme struct {
	ID             string `json:"id"`
	Background     string `json:"background"`
	CardBackground string `json:"card_background"`
	CardBorder     string `json:"card_border"`
	CardBlur       string `json:"card_blur"`
	TextPrimary    string `json:"text_primary"`
	TextSecondary  string `json:"text_secondary"`
	TextMuted      string `json:"text_muted"`
	ButtonBg       string `json:"button_bg"`
	ButtonText     string `json:"button_text"`
	AccentBg       string `json:"accent_bg"`
	AccentText     string `json:"accent_text"`
}

const DefaultID = "light"

// registry is immutable process-wide static data.
var registry = map[string]Theme{
	"light": {
		ID:             "light",
		Background:     "#f8fafc",
		CardBackground: "rgba(255,255,255,0.85)",
		CardBorder:     "1px solid #e2e8f0",
		CardBlur:       "8px",
		TextPrimary:    "#0f172a",
		TextSecondary:  "#475569",
		TextMuted:      "#94a3b8",
		ButtonBg:       "#0f172a",
		ButtonText:     "#ffffff",
		AccentBg:       "#22c55e",
		AccentText:     "#052e16",
	},
	"dark": {
		ID:             "dark",
		Background:     "#0b1120",
		CardBackground: "rgba(15,23,42,0.85)",
		CardBorder:     "1px solid #1e293b",
		CardBlur:       "10px",
		TextPrimary:    "#f1f5f9",
		TextSecondary:  "#cbd5e1",
		TextMuted:      "#64748b",
		ButtonBg:       "#f1f5f9",
		ButtonText:     "#0b1120",
		AccentBg:       "#38bdf8",
		AccentText:     "#082f49",
	},
	"cyber": {
		ID:             "cyber",
		Background:     "linear-gradient(135deg, #0f0c29 0%, #302b63 50%, #24243e 100%)",
		CardBackground: "rgba(20,16,60,0.7)",
		CardBorder:     "1px solid rgba(0,255,255,0.35)",
		CardBlur:       "14px",
		TextPrimary:    "#e0fbff",
		TextSecondary:  "#7dd3fc",
		TextMuted:      "#6d28d9",
		ButtonBg:       "#06b6d4",
		ButtonText:     "#02131a",
		AccentBg:       "#d946ef",
		AccentText:     "#fdf4ff",
	},
	"rosa": {
		ID:             "rosa",
		Background:     "linear-gradient(135deg, #ffdee9 0%, #fbc2eb 100%)",
		CardBackground: "rgba(255,255,255,0.75)",
		CardBorder:     "1px solid #fbcfe8",
		CardBlur:       "8px",
		TextPrimary:    "#831843",
		TextSecondary:  "#be185d",
		TextMuted:      "#f472b6",
		ButtonBg:       "#ec4899",
		ButtonText:     "#fff1f7",
		AccentBg:       "#f9a8d4",
		AccentText:     "#831843",
	},
	"saude": {
		ID:             "saude",
		Background:     "linear-gradient(135deg, #d4fc79 0%, #96e6a1 100%)",
		CardBackground: "rgba(255,255,255,0.8)",
		CardBorder:     "1px solid #bbf7d0",
		CardBlur:       "6px",
		TextPrimary:    "#14532d",
		TextSecondary:  "#15803d",
		TextMuted:      "#4ade80",
		ButtonBg:       "#16a34a",
		ButtonText:     "#f0fdf4",
		AccentBg:       "#86efac",
		AccentText:     "#14532d",
	},
}

// Get returns the token bundle for a theme id. Unknown or empty ids fall back
// to the light bundle; this never fails.
func Get(id string) Theme {
	if theme, ok := registry[id]; ok {
		return theme
	}
	return registry[DefaultID]
}

// Known reports whether id names a registered theme.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// ordering fixes the catalog display order; map iteration would shuffle the
// public themes listing between requests.
var ordering = []string{"light", "dark", "cyber", "rosa", "saude"}

// IDs lists the registered theme identifiers in display order.
func IDs() []string {
	ids := make([]string, len(ordering))
	copy(ids, ordering)
	return ids
}

// IDFromBackground maps a legacy raw background value back to a theme id.
// Older records stored raw CSS instead of theme ids: exact match first, then a
// prefix match for gradients whose stop lists drifted over time.
func IDFromBackground(value string) string {
	if value == "" {
		return DefaultID
	}
	for id, theme := range registry {
		if theme.Background == value {
			return id
		}
	}
	if strings.HasPrefix(value, "linear-gradient(") {
		for id, theme := range registry {
			if !strings.HasPrefix(theme.Background, "linear-gradient(") {
				continue
			}
			if prefix := gradientPrefix(theme.Background); prefix != "" && strings.HasPrefix(value, prefix) {
				return id
			}
		}
	}
	return DefaultID
}

// gradientPrefix cuts a gradient value at its first color stop so that
// variants with extra stops still match.
func gradientPrefix(value string) string {
	idx := strings.Index(value, "%")
	if idx < 0 {
		return value
	}
	return value[:idx]
}
