package menu

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

// dynamicItem is a menu item whose checked state flips a fixed number of
// verification reads after it is pressed, modeling async UI updates.
type dynamicItem struct {
	title      string
	enabled    bool
	mark       atomic.Value // string
	pressed    atomic.Int32
	flipAfter  int32 // reads after press before the new mark is visible
	readsSince atomic.Int32
	primary    Element
}

func newDynamicItem(title string, checked bool, flipAfter int32) *dynamicItem {
	d := &dynamicItem{title: title, enabled: true, flipAfter: flipAfter}
	if checked {
		d.mark.Store("✓")
	} else {
		d.mark.Store("")
	}
	return d
}

func (d *dynamicItem) Fetch() (ItemAttrs, error) {
	mark := d.mark.Load().(string)
	if d.pressed.Load() > 0 {
		if d.readsSince.Add(1) > d.flipAfter {
			if mark == "" {
				mark = "✓"
			} else {
				mark = ""
			}
		}
	}
	return ItemAttrs{
		Role: RoleMenuItem, Title: d.title, Enabled: d.enabled,
		MarkChar: mark, ShortcutMods: -1, Primary: d.primary,
	}, nil
}

func (d *dynamicItem) VisibleChildren() ([]Element, error) { return nil, ErrUnsupported }

func (d *dynamicItem) Press() error {
	d.pressed.Add(1)
	return nil
}

// verifySource builds View -> Show Sidebar around one dynamic item.
func verifySource(item Element) (*fakeSource, *fakeElement) {
	view := fakeBarItem("View", fakeMenu(item))
	bar := fakeBar(view)
	return &fakeSource{bars: map[int]*fakeElement{1: bar}}, bar
}

func TestActuator_PressLocatesByPath(t *testing.T) {
	item := newDynamicItem("Show Sidebar", false, 0)
	src, _ := verifySource(item)
	act := &Actuator{Src: src}

	if err := act.Press(context.Background(), 1, "View::Show Sidebar"); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if item.pressed.Load() != 1 {
		t.Errorf("press count = %d, want 1", item.pressed.Load())
	}
}

func TestActuator_PressRefusesDisabled(t *testing.T) {
	item := newDynamicItem("Show Sidebar", false, 0)
	item.enabled = false
	src, _ := verifySource(item)
	act := &Actuator{Src: src}

	err := act.Press(context.Background(), 1, "View::Show Sidebar")
	if err == nil {
		t.Fatal("expected error for disabled item")
	}
	if item.pressed.Load() != 0 {
		t.Error("disabled item was pressed")
	}
}

func TestActuator_PressMissingPath(t *testing.T) {
	item := newDynamicItem("Show Sidebar", false, 0)
	src, _ := verifySource(item)
	act := &Actuator{Src: src}

	err := act.Press(context.Background(), 1, "View::No Such Item")
	var me *Error
	if !errors.As(err, &me) || me.Kind != KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestVerifyToggle_ObservesFlip(t *testing.T) {
	item := newDynamicItem("Show Sidebar", false, 1)
	src, _ := verifySource(item)
	act := &Actuator{Src: src}

	before := Unchecked
	if err := act.Press(context.Background(), 1, "View::Show Sidebar"); err != nil {
		t.Fatalf("Press: %v", err)
	}
	after := act.VerifyToggle(context.Background(), 1, "View::Show Sidebar", before)
	if after != Checked {
		t.Errorf("after = %v, want %v", after, Checked)
	}
}

func TestVerifyToggle_TimeoutReportsLastState(t *testing.T) {
	// The state never flips; the verifier must exhaust its backoff and
	// report the unchanged state without failing.
	item := newDynamicItem("Show Sidebar", false, 1000)
	src, _ := verifySource(item)
	act := &Actuator{Src: src}

	if err := act.Press(context.Background(), 1, "View::Show Sidebar"); err != nil {
		t.Fatalf("Press: %v", err)
	}
	after := act.VerifyToggle(context.Background(), 1, "View::Show Sidebar", Unchecked)
	if after != Unchecked {
		t.Errorf("after = %v, want unchanged %v", after, Unchecked)
	}
}

func TestVerifyToggle_CancelledContext(t *testing.T) {
	item := newDynamicItem("Show Sidebar", false, 0)
	src, _ := verifySource(item)
	act := &Actuator{Src: src}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	after := act.VerifyToggle(ctx, 1, "View::Show Sidebar", Unchecked)
	if after != Unchecked {
		t.Errorf("after = %v, want %v (no reads once cancelled)", after, Unchecked)
	}
}

func TestActuator_PressAlternateBracketsUI(t *testing.T) {
	primary := fakeItem("Close")
	alt := newDynamicItem("Close All", false, 0)
	alt.primary = primary

	view := fakeBarItem("File", fakeMenu(primary, alt))
	src := &altTrackingSource{fakeSource: fakeSource{bars: map[int]*fakeElement{1: fakeBar(view)}}}
	act := &Actuator{Src: src}

	if err := act.Press(context.Background(), 1, "File::Close All"); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if alt.pressed.Load() != 1 {
		t.Error("alternate not pressed")
	}
	if src.alternateUI.Load() != 1 || src.defaultUI.Load() != 1 {
		t.Errorf("alternate-UI bracketing: show=%d restore=%d, want 1/1",
			src.alternateUI.Load(), src.defaultUI.Load())
	}
}

type altTrackingSource struct {
	fakeSource
	alternateUI atomic.Int32
	defaultUI   atomic.Int32
}

func (s *altTrackingSource) ShowAlternateUI(pid int) error {
	s.alternateUI.Add(1)
	return nil
}

func (s *altTrackingSource) ShowDefaultUI(pid int) error {
	s.defaultUI.Add(1)
	return nil
}
