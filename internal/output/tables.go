package output

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/menucli/internal/models"
)

// itemsTable prints menu items in a table format
func (c *Ctx) itemsTable(items []models.ItemRecord) error {
	table := tablewriter.NewWriter(os.Stdout)

	crossApp := false
	for _, it := range items {
		if it.AppName != "" {
			crossApp = true
			break
		}
	}

	var headers []string
	if crossApp && c.include("app_name") {
		headers = append(headers, "APP")
	}
	if c.include("path") {
		headers = append(headers, "PATH")
	}
	if c.include("enabled") {
		headers = append(headers, "ENABLED")
	}
	if c.include("checked") {
		headers = append(headers, "CHECKED")
	}
	if c.include("shortcut") {
		headers = append(headers, "SHORTCUT")
	}
	if c.include("role") {
		headers = append(headers, "ROLE")
	}
	if !c.NoHeader {
		table.Header(toAny(headers)...)
	}

	for _, it := range items {
		var row []string
		if crossApp && c.include("app_name") {
			row = append(row, truncate(it.AppName, 20))
		}
		if c.include("path") {
			row = append(row, truncate(it.Path, 60))
		}
		if c.include("enabled") {
			row = append(row, boolMark(it.Enabled))
		}
		if c.include("checked") {
			row = append(row, checkMark(it.Checked))
		}
		if c.include("shortcut") {
			row = append(row, it.Shortcut)
		}
		if c.include("role") {
			row = append(row, it.Role)
		}
		table.Append(toAny(row)...)
	}

	table.Render()
	return nil
}

// searchTable prints search results in a table format
func (c *Ctx) searchTable(results []models.SearchRecord) error {
	table := tablewriter.NewWriter(os.Stdout)

	var headers []string
	if c.include("score") {
		headers = append(headers, "SCORE")
	}
	if c.include("path") {
		headers = append(headers, "PATH")
	}
	if c.include("enabled") {
		headers = append(headers, "ENABLED")
	}
	if c.include("shortcut") {
		headers = append(headers, "SHORTCUT")
	}
	if !c.NoHeader {
		table.Header(toAny(headers)...)
	}

	for _, r := range results {
		var row []string
		if c.include("score") {
			row = append(row, fmt.Sprintf("%d", r.Score))
		}
		if c.include("path") {
			row = append(row, truncate(r.Path, 60))
		}
		if c.include("enabled") {
			row = append(row, boolMark(r.Enabled))
		}
		if c.include("shortcut") {
			row = append(row, r.Shortcut)
		}
		table.Append(toAny(row)...)
	}

	table.Render()
	return nil
}

// appsTable prints applications in a table format
func (c *Ctx) appsTable(apps []models.AppRecord) error {
	table := tablewriter.NewWriter(os.Stdout)
	if !c.NoHeader {
		table.Header("PID", "NAME", "BUNDLE ID", "FRONTMOST")
	}

	for _, a := range apps {
		table.Append(
			fmt.Sprintf("%d", a.PID),
			truncate(a.Name, 25),
			truncate(a.BundleID, 40),
			boolMark(a.Frontmost),
		)
	}

	table.Render()
	return nil
}

// Helper functions

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func boolMark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func checkMark(state string) string {
	switch state {
	case "checked":
		return "✓"
	case "mixed":
		return "-"
	case "unknown":
		return "?"
	default:
		return ""
	}
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
