package menu

import "testing"

func TestFormatShortcut_CommandOnly(t *testing.T) {
	if got := FormatShortcut("S", 0); got != "⌘S" {
		t.Errorf("FormatShortcut(S, 0) = %q, want ⌘S", got)
	}
}

func TestFormatShortcut_ShiftCommand(t *testing.T) {
	if got := FormatShortcut("S", 0x1); got != "⇧⌘S" {
		t.Errorf("FormatShortcut(S, 0x1) = %q, want ⇧⌘S", got)
	}
}

func TestFormatShortcut_OptionCommand(t *testing.T) {
	if got := FormatShortcut("W", 0x2); got != "⌥⌘W" {
		t.Errorf("FormatShortcut(W, 0x2) = %q, want ⌥⌘W", got)
	}
}

func TestFormatShortcut_ControlOnly(t *testing.T) {
	if got := FormatShortcut("F", 0x4|0x8); got != "⌃F" {
		t.Errorf("FormatShortcut(F, control|nocommand) = %q, want ⌃F", got)
	}
}

func TestFormatShortcut_AllModifiers(t *testing.T) {
	// Glyph order is fixed: ⌃⌥⇧⌘, regardless of mask bit order.
	if got := FormatShortcut("a", 0x1|0x2|0x4); got != "⌃⌥⇧⌘A" {
		t.Errorf("FormatShortcut(a, all) = %q, want ⌃⌥⇧⌘A", got)
	}
}

func TestFormatShortcut_NoKey(t *testing.T) {
	if got := FormatShortcut("", 0); got != "" {
		t.Errorf("FormatShortcut(empty, 0) = %q, want empty", got)
	}
	if got := FormatShortcut("  ", 0); got != "" {
		t.Errorf("FormatShortcut(blank, 0) = %q, want empty", got)
	}
}

func TestFormatShortcut_AbsentModifiers(t *testing.T) {
	// -1 marks a missing modifier attribute; Command alone is implied.
	if got := FormatShortcut("N", -1); got != "⌘N" {
		t.Errorf("FormatShortcut(N, -1) = %q, want ⌘N", got)
	}
}

func TestFormatShortcut_SpecialKeys(t *testing.T) {
	if got := FormatShortcut("\uf700", 0); got != "⌘↑" {
		t.Errorf("up arrow = %q, want ⌘↑", got)
	}
	if got := FormatShortcut("\uf704", 0x8); got != "F1" {
		t.Errorf("bare F1 = %q, want F1", got)
	}
	if got := FormatShortcut("\t", 0x2); got != "⌥⌘Tab" {
		t.Errorf("option-tab = %q, want ⌥⌘Tab", got)
	}
}

func TestCheckStateFromMark(t *testing.T) {
	cases := []struct {
		mark string
		want CheckState
	}{
		{"", Unchecked},
		{"✓", Checked},
		{"-", Mixed},
		{"–", Mixed},
		{"•", Checked},
	}
	for _, tc := range cases {
		if got := CheckStateFromMark(tc.mark); got != tc.want {
			t.Errorf("CheckStateFromMark(%q) = %v, want %v", tc.mark, got, tc.want)
		}
	}
}
