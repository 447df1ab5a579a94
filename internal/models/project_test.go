package models

import (
	"encoding/json"
	"testing"
)

func sample() []ItemRecord {
	return []ItemRecord{
		{Title: "Save", Path: "File::Save", Enabled: true, Checked: "unchecked", Role: "AXMenuItem"},
		{Title: "Copy", Path: "Edit::Copy", Enabled: true, Checked: "unchecked", Role: "AXMenuItem"},
	}
}

func TestProject_EmptyMeansAll(t *testing.T) {
	v := Project(sample(), nil)
	if _, ok := v.([]ItemRecord); !ok {
		t.Errorf("empty projection should return the value untouched, got %T", v)
	}
}

func TestProject_Whitelist(t *testing.T) {
	v := Project(sample(), []string{"path", "enabled"})
	rows, ok := v.([]map[string]interface{})
	if !ok {
		t.Fatalf("got %T, want projected rows", v)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["path"] != "File::Save" {
		t.Errorf("path = %v", rows[0]["path"])
	}
	if _, present := rows[0]["title"]; present {
		t.Error("title should be projected away")
	}
}

func TestProject_UnknownFieldsDropped(t *testing.T) {
	v := Project(sample(), []string{"path", "no_such_field"})
	rows := v.([]map[string]interface{})
	if len(rows[0]) != 1 {
		t.Errorf("row = %v, want only path", rows[0])
	}
}

func TestProject_SingleRecord(t *testing.T) {
	v := Project(ToggleRecord{Path: "View::Show Sidebar", CheckedBefore: "unchecked", CheckedAfter: "checked"}, []string{"path"})
	m, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("got %T, want projected map", v)
	}
	if m["path"] != "View::Show Sidebar" || len(m) != 1 {
		t.Errorf("projected = %v", m)
	}
}

func TestProject_RoundTripsJSON(t *testing.T) {
	v := Project(sample(), []string{"path"})
	if _, err := json.Marshal(v); err != nil {
		t.Errorf("projected value not marshalable: %v", err)
	}
}
