// Package output renders command results in the formats the CLI
// supports: json, compact, ndjson, table, path, id, with auto detecting
// table for terminals and json for pipes.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/yourusername/menucli/internal/models"
)

// Format is an output format name.
type Format string

const (
	Auto    Format = "auto"
	JSON    Format = "json"
	Compact Format = "compact"
	NDJSON  Format = "ndjson"
	Table   Format = "table"
	Path    Format = "path"
	ID      Format = "id"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Auto, JSON, Compact, NDJSON, Table, Path, ID:
		return Format(s), nil
	case "":
		return Auto, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Ctx carries the resolved format and projection for one invocation.
type Ctx struct {
	Format   Format
	Fields   []string
	NoHeader bool
}

// NewCtx resolves the effective format: --json forces json, auto picks
// table on a TTY and json otherwise.
func NewCtx(format Format, jsonFlag bool, fields []string, noHeader bool) *Ctx {
	if jsonFlag {
		format = JSON
	} else if format == Auto || format == "" {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			format = Table
		} else {
			format = JSON
		}
	}
	return &Ctx{Format: format, Fields: fields, NoHeader: noHeader}
}

// include reports whether a projected field should appear.
func (c *Ctx) include(name string) bool {
	if len(c.Fields) == 0 {
		return true
	}
	for _, f := range c.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// IsJSON reports whether errors should be emitted as JSON envelopes.
func (c *Ctx) IsJSON() bool {
	switch c.Format {
	case JSON, Compact, NDJSON:
		return true
	}
	return false
}

// WriteItems renders flat menu items.
func (c *Ctx) WriteItems(items []models.ItemRecord) error {
	switch c.Format {
	case Path:
		for _, it := range items {
			fmt.Println(it.Path)
		}
		return nil
	case ID:
		for _, it := range items {
			fmt.Println(it.Title)
		}
		return nil
	case Table:
		return c.itemsTable(items)
	default:
		return c.writeJSON(models.Project(items, c.Fields))
	}
}

// WriteSearch renders scored search results.
func (c *Ctx) WriteSearch(results []models.SearchRecord) error {
	switch c.Format {
	case Path:
		for _, r := range results {
			fmt.Println(r.Path)
		}
		return nil
	case ID:
		for _, r := range results {
			fmt.Println(r.Title)
		}
		return nil
	case Table:
		return c.searchTable(results)
	default:
		return c.writeJSON(models.Project(results, c.Fields))
	}
}

// WriteTree renders nested trees.
func (c *Ctx) WriteTree(trees []models.TreeRecord) error {
	switch c.Format {
	case Table, Path, ID:
		for _, t := range trees {
			printTree(&t, 0)
		}
		return nil
	default:
		return c.writeJSON(models.Project(trees, c.Fields))
	}
}

// WriteApps renders the running-application list.
func (c *Ctx) WriteApps(apps []models.AppRecord) error {
	switch c.Format {
	case Path, ID:
		for _, a := range apps {
			fmt.Println(a.Name)
		}
		return nil
	case Table:
		return c.appsTable(apps)
	default:
		return c.writeJSON(models.Project(apps, c.Fields))
	}
}

// WriteToggle renders a toggle outcome.
func (c *Ctx) WriteToggle(t models.ToggleRecord) error {
	switch c.Format {
	case Path, ID:
		fmt.Println(t.Path)
		return nil
	case Table:
		fmt.Printf("%s: %s -> %s\n", t.Path, t.CheckedBefore, t.CheckedAfter)
		return nil
	default:
		return c.writeJSON(models.Project(t, c.Fields))
	}
}

// WriteError emits the structured error envelope on stderr in JSON
// modes; callers handle the human-readable path.
func (c *Ctx) WriteError(rec models.ErrorRecord) {
	enc := json.NewEncoder(os.Stderr)
	_ = enc.Encode(rec)
}

func (c *Ctx) writeJSON(v interface{}) error {
	switch c.Format {
	case Compact:
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(v)
	case NDJSON:
		return writeNDJSON(v)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// writeNDJSON emits one JSON object per line for slices, a single line
// otherwise.
func writeNDJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		_, err := fmt.Println(string(data))
		return err
	}
	for _, row := range list {
		fmt.Println(string(row))
	}
	return nil
}

func printTree(t *models.TreeRecord, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	line := indent + t.Title
	if t.Shortcut != "" {
		line += "  [" + t.Shortcut + "]"
	}
	if t.Checked == "checked" {
		line += " ✓"
	}
	if !t.Enabled {
		line += " (disabled)"
	}
	fmt.Println(line)
	for i := range t.Children {
		printTree(&t.Children[i], depth+1)
	}
}
