package menu

import "strings"

// The AX kAXMenuItemCmdModifiers bitmask. This is not the Carbon/Cocoa
// modifier mask: no bit set means Command alone, and bit 3 means Command
// is NOT part of the shortcut. From AXAttributeConstants.h.
const (
	modShift     = 0x1
	modOption    = 0x2
	modControl   = 0x4
	modNoCommand = 0x8
)

// specialKeys maps AX cmd-char values that are control characters or
// NSFunctionKey private-use glyphs to readable key names.
var specialKeys = map[string]string{
	"\r":     "Return",
	"\n":     "Return",
	"\t":     "Tab",
	" ":      "Space",
	"\x1b":   "Escape",
	"\x08":   "Delete",
	"\x7f":   "Delete",

	// NSFunctionKey private-use range, as AX reports them.
	"\uf700": "↑",
	"\uf701": "↓",
	"\uf702": "←",
	"\uf703": "→",
	"\uf704": "F1",
	"\uf705": "F2",
	"\uf706": "F3",
	"\uf707": "F4",
	"\uf708": "F5",
	"\uf709": "F6",
	"\uf70a": "F7",
	"\uf70b": "F8",
	"\uf70c": "F9",
	"\uf70d": "F10",
	"\uf70e": "F11",
	"\uf70f": "F12",
}

// FormatShortcut canonicalizes a menu item shortcut from its AX cmd-char
// and modifier mask. Modifier glyphs appear in the fixed order ⌃⌥⇧⌘
// followed by the key. Returns "" when there is no shortcut.
//
// Pass mods = -1 when the modifier attribute was absent; Command alone is
// then implied, matching AX behavior.
func FormatShortcut(key string, mods int) string {
	key = strings.TrimSpace(keyGlyph(key))
	if key == "" {
		return ""
	}
	if mods < 0 {
		mods = 0
	}

	var b strings.Builder
	if mods&modControl != 0 {
		b.WriteRune('⌃')
	}
	if mods&modOption != 0 {
		b.WriteRune('⌥')
	}
	if mods&modShift != 0 {
		b.WriteRune('⇧')
	}
	if mods&modNoCommand == 0 {
		b.WriteRune('⌘')
	}
	b.WriteString(key)
	return b.String()
}

func keyGlyph(key string) string {
	if name, ok := specialKeys[key]; ok {
		return name
	}
	return strings.ToUpper(key)
}
