//go:build darwin

package ax

/*
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

import (
	"github.com/yourusername/menucli/internal/menu"
)

// Source hands out menu roots and the alternate-UI actions for a pid.
// It is stateless; every call builds a fresh application element.
type Source struct{}

// MenuBar returns the standard (left-side) menu bar root.
func (Source) MenuBar(pid int) (menu.Element, error) {
	el, err := application(pid).elementAttr("AXMenuBar")
	if err != nil {
		return nil, err
	}
	return el, nil
}

// ExtrasMenuBar returns the status-item (right-side) menu bar root.
// Apps that own no extras report the attribute as unsupported.
func (Source) ExtrasMenuBar(pid int) (menu.Element, error) {
	el, err := application(pid).elementAttr("AXExtrasMenuBar")
	if err != nil {
		return nil, err
	}
	return el, nil
}

// ShowAlternateUI asks the app's menu bar to render its Option-key
// alternate items, so an alternate can actually be pressed.
func (Source) ShowAlternateUI(pid int) error {
	el, err := application(pid).elementAttr("AXMenuBar")
	if err != nil {
		return err
	}
	return el.perform("AXShowAlternateUI")
}

// ShowDefaultUI restores the default menu rendering.
func (Source) ShowDefaultUI(pid int) error {
	el, err := application(pid).elementAttr("AXMenuBar")
	if err != nil {
		return err
	}
	return el.perform("AXShowDefaultUI")
}

// Trusted reports whether this process holds the global Accessibility
// permission.
func Trusted() bool {
	return C.AXIsProcessTrusted() != 0
}

// PermissionInstructions is printed by check-access in human mode.
const PermissionInstructions = `To grant Accessibility permission:
  1. Open System Settings -> Privacy & Security -> Accessibility
  2. Click the + button and add your terminal application
  3. Restart your terminal

Or run: open "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"`
