// Package models holds the serializable records every command writes to
// stdout. They are decoupled from the engine's node types so output
// stays stable while the walker evolves.
package models

import (
	"github.com/yourusername/menucli/internal/menu"
)

// ItemRecord is one menu item in flat (list) representation.
type ItemRecord struct {
	Title       string `json:"title"`
	Path        string `json:"path"`
	Enabled     bool   `json:"enabled"`
	Checked     string `json:"checked"`
	Shortcut    string `json:"shortcut,omitempty"`
	Role        string `json:"role"`
	IsAlternate bool   `json:"is_alternate,omitempty"`
	AlternateOf string `json:"alternate_of,omitempty"`
	AppName     string `json:"app_name,omitempty"`
	AppPID      int    `json:"app_pid,omitempty"`
}

// TreeRecord is one menu node in nested representation.
type TreeRecord struct {
	Title       string       `json:"title"`
	Role        string       `json:"role"`
	Enabled     bool         `json:"enabled"`
	Checked     string       `json:"checked"`
	Shortcut    string       `json:"shortcut,omitempty"`
	IsAlternate bool         `json:"is_alternate,omitempty"`
	AlternateOf string       `json:"alternate_of,omitempty"`
	Children    []TreeRecord `json:"children,omitempty"`
}

// SearchRecord is one scored search hit.
type SearchRecord struct {
	ItemRecord
	Score int `json:"score"`
}

// AppRecord is one running application.
type AppRecord struct {
	Name      string `json:"name"`
	PID       int    `json:"pid"`
	BundleID  string `json:"bundle_id,omitempty"`
	Frontmost bool   `json:"frontmost"`
}

// ToggleRecord is the outcome of a toggle operation.
type ToggleRecord struct {
	Path          string `json:"path"`
	CheckedBefore string `json:"checked_before"`
	CheckedAfter  string `json:"checked_after"`
	Verified      bool   `json:"verified"`
	DryRun        bool   `json:"dry_run"`
}

// ErrorRecord is the structured stderr envelope for JSON modes.
type ErrorRecord struct {
	Error      string   `json:"error"`
	Message    string   `json:"message"`
	Candidates []string `json:"candidates,omitempty"`
}

// FromFlatItem converts an engine item to its record.
func FromFlatItem(it menu.FlatItem) ItemRecord {
	return ItemRecord{
		Title:       it.Title,
		Path:        it.Path,
		Enabled:     it.Enabled,
		Checked:     string(it.Checked),
		Shortcut:    it.Shortcut,
		Role:        it.Role,
		IsAlternate: it.IsAlternate,
		AlternateOf: it.AlternateOf,
		AppName:     it.AppName,
		AppPID:      it.AppPID,
	}
}

// FromFlatItems converts a slice, preserving order.
func FromFlatItems(items []menu.FlatItem) []ItemRecord {
	out := make([]ItemRecord, len(items))
	for i, it := range items {
		out[i] = FromFlatItem(it)
	}
	return out
}

// FromNode converts a built subtree to its nested record.
func FromNode(n *menu.MenuNode) TreeRecord {
	rec := TreeRecord{
		Title:       n.Title,
		Role:        n.Role,
		Enabled:     n.Enabled,
		Checked:     string(n.Checked),
		Shortcut:    n.Shortcut,
		IsAlternate: n.IsAlternate,
		AlternateOf: n.AlternateOf,
	}
	for i := range n.Children {
		rec.Children = append(rec.Children, FromNode(&n.Children[i]))
	}
	return rec
}

// FromError converts any error to the stderr envelope.
func FromError(err error) ErrorRecord {
	me := menu.AsError(err)
	return ErrorRecord{
		Error:      string(me.Kind),
		Message:    me.Error(),
		Candidates: me.Candidates,
	}
}
