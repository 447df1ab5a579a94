package apps

import (
	"errors"
	"testing"
)

func fixture() []RunningApp {
	return []RunningApp{
		{Name: "Finder", PID: 321, BundleID: "com.apple.finder"},
		{Name: "Safari", PID: 456, BundleID: "com.apple.Safari", Frontmost: true},
		{Name: "TextEdit", PID: 789, BundleID: "com.apple.TextEdit"},
	}
}

func TestMatch_ByPID(t *testing.T) {
	app, err := Match(fixture(), "456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Name != "Safari" {
		t.Errorf("got %q, want Safari", app.Name)
	}
}

func TestMatch_UnlistedPIDAccepted(t *testing.T) {
	// AX can reach processes the workspace list omits; a numeric
	// identifier is taken at face value.
	app, err := Match(fixture(), "9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.PID != 9999 {
		t.Errorf("pid = %d, want 9999", app.PID)
	}
}

func TestMatch_ByBundleID(t *testing.T) {
	app, err := Match(fixture(), "com.apple.finder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Name != "Finder" {
		t.Errorf("got %q, want Finder", app.Name)
	}
}

func TestMatch_BundleIDIsExact(t *testing.T) {
	_, err := Match(fixture(), "com.apple.find")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestMatch_ByNameSubstring(t *testing.T) {
	app, err := Match(fixture(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Name != "TextEdit" {
		t.Errorf("got %q, want TextEdit", app.Name)
	}
}

func TestMatch_NameNotFound(t *testing.T) {
	_, err := Match(fixture(), "Xcode")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nf.Identifier != "Xcode" {
		t.Errorf("identifier = %q, want Xcode", nf.Identifier)
	}
}

func TestFrontmost(t *testing.T) {
	app, err := Frontmost(fixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Name != "Safari" {
		t.Errorf("got %q, want Safari", app.Name)
	}
}

func TestFrontmost_None(t *testing.T) {
	_, err := Frontmost([]RunningApp{{Name: "Finder", PID: 1}})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestResolve_EmptyFallsBackToFrontmost(t *testing.T) {
	app, err := Resolve(fixture(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !app.Frontmost {
		t.Errorf("got %q, want the frontmost app", app.Name)
	}
}
