package menu

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yourusername/menucli/internal/logging"
)

// No AX handle survives a build, so the actuator re-resolves the target
// by path against the live tree immediately before acting. Handles can go
// stale between walks (app quit, menu mutation); paths cannot.

// Actuator presses resolved menu items and verifies toggles.
type Actuator struct {
	Src  Source
	Kind BarKind
}

// verifyDelays is the exponential backoff schedule for toggle
// verification: ≈620ms total.
var verifyDelays = []time.Duration{
	20 * time.Millisecond,
	40 * time.Millisecond,
	80 * time.Millisecond,
	160 * time.Millisecond,
	320 * time.Millisecond,
}

// Press locates the item at path and performs the AX press action.
// Disabled items are refused before any action is attempted. Pressing an
// Option-key alternate brackets the press with the alternate-UI actions
// so the item is actually reachable.
func (a *Actuator) Press(ctx context.Context, pid int, path string) error {
	el, attrs, err := a.locate(ctx, pid, path)
	if err != nil {
		return err
	}
	if !attrs.Enabled {
		return Errf(KindAxFailure, "menu item %s is disabled", quote(path))
	}

	if attrs.Primary != nil {
		if err := a.Src.ShowAlternateUI(pid); err != nil {
			logging.Debug().Err(err).Msg("show-alternate-ui failed; pressing anyway")
		}
		defer func() {
			if err := a.Src.ShowDefaultUI(pid); err != nil {
				logging.Debug().Err(err).Msg("show-default-ui failed")
			}
		}()
	}

	if err := el.Press(); err != nil {
		return WrapAX("press failed for "+quote(path), err)
	}
	return nil
}

// VerifyToggle re-reads the checked state of the item at path until it
// differs from before or the backoff schedule is exhausted. The final
// observed state is returned either way: a verification timeout is not a
// failure — the press already succeeded.
func (a *Actuator) VerifyToggle(ctx context.Context, pid int, path string, before CheckState) CheckState {
	last := before
	for _, delay := range verifyDelays {
		select {
		case <-ctx.Done():
			return last
		case <-time.After(delay):
		}

		_, attrs, err := a.locate(ctx, pid, path)
		if err != nil {
			logging.Debug().Err(err).Str("path", path).Msg("verify re-read failed")
			continue
		}
		last = CheckStateFromMark(attrs.MarkChar)
		if last != before {
			return last
		}
	}
	return last
}

// locate re-walks only the resolved path: from the bar root, match each
// segment among the current siblings by exact title, descending through
// the transparent AXMenu wrappers.
func (a *Actuator) locate(ctx context.Context, pid int, path string) (Element, ItemAttrs, error) {
	segments := strings.Split(path, PathSep)

	var root Element
	var err error
	if a.Kind == Extras {
		root, err = a.Src.ExtrasMenuBar(pid)
	} else {
		root, err = a.Src.MenuBar(pid)
	}
	if err != nil {
		return nil, ItemAttrs{}, WrapAX("menu bar unavailable", err)
	}

	attrs, err := root.Fetch()
	if err != nil {
		return nil, ItemAttrs{}, WrapAX("menu bar fetch failed", err)
	}

	el := root
	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, ItemAttrs{}, WrapAX("walk cancelled", err)
		}
		el, attrs, err = findChild(el, attrs, seg, a.Kind)
		if err != nil {
			return nil, ItemAttrs{}, err
		}
	}
	return el, attrs, nil
}

// findChild scans an element's children for the segment title, looking
// through AXMenu wrappers one level at a time.
func findChild(parent Element, parentAttrs ItemAttrs, title string, kind BarKind) (Element, ItemAttrs, error) {
	elems := parentAttrs.Children
	if kind == Extras {
		if visible, err := parent.VisibleChildren(); err == nil {
			elems = visible
		}
	}

	for _, el := range elems {
		attrs, err := el.Fetch()
		if err != nil {
			if errors.Is(err, ErrCannotComplete) {
				if attrs, err = el.Fetch(); err != nil {
					continue
				}
			} else {
				continue
			}
		}
		if attrs.Role == RoleMenu {
			// Wrapper: look inside without consuming a segment.
			if found, fa, err := findChild(el, attrs, title, kind); err == nil {
				return found, fa, nil
			}
			continue
		}
		if attrs.Title == title {
			return el, attrs, nil
		}
	}
	return nil, ItemAttrs{}, Errf(KindNotFound, "menu item %s no longer present", quote(title))
}
