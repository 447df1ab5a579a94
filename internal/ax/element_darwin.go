//go:build darwin

// Package ax wraps cross-process AXUIElement handles behind the menu
// engine's Element/Source interfaces. Per-attribute IPC dominates walk
// latency, so the facade reads all eight menu-item attributes in one
// AXUIElementCopyMultipleAttributeValues round-trip, addressed by fixed
// position.
package ax

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <stdlib.h>
#include <ApplicationServices/ApplicationServices.h>

static CFStringRef menucli_cfstring(const char *s) {
	return CFStringCreateWithCString(kCFAllocatorDefault, s, kCFStringEncodingUTF8);
}
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/yourusername/menucli/internal/menu"
)

// messagingTimeoutSecs bounds every AX call to this element's app so an
// unresponsive target cannot hang a walk.
const messagingTimeoutSecs = 1.0

// Fixed batch indices. Order is load-bearing: results come back in a
// parallel array addressed by these positions.
const (
	attrRole = iota
	attrTitle
	attrEnabled
	attrChildren
	attrCmdChar
	attrCmdModifiers
	attrMarkChar
	attrPrimaryUIElement
	attrCount
)

var menuItemAttrs = [attrCount]string{
	"AXRole",
	"AXTitle",
	"AXEnabled",
	"AXChildren",
	"AXMenuItemCmdChar",
	"AXMenuItemCmdModifiers",
	"AXMenuItemMarkChar",
	"AXMenuItemPrimaryUIElement",
}

// Element owns one retained AXUIElementRef. The retain is dropped by a
// finalizer; no handle escapes the trees the walker builds, so handles
// die with the walk.
type Element struct {
	ref C.AXUIElementRef
}

var (
	_ menu.Element = (*Element)(nil)
	_ menu.Source  = Source{}
)

// newElement wraps a ref. retain is false for +1 refs handed to us under
// the create rule, true for borrowed refs (array members).
func newElement(ref C.AXUIElementRef, retain bool) *Element {
	if retain {
		C.CFRetain(C.CFTypeRef(unsafe.Pointer(ref)))
	}
	el := &Element{ref: ref}
	runtime.SetFinalizer(el, func(e *Element) {
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(e.ref)))
	})
	return el
}

// application builds the app-level element for a pid and caps its
// messaging timeout.
func application(pid int) *Element {
	ref := C.AXUIElementCreateApplication(C.pid_t(pid))
	C.AXUIElementSetMessagingTimeout(ref, C.float(messagingTimeoutSecs))
	return newElement(ref, false)
}

// Fetch reads the full menu-item attribute set in a single IPC
// round-trip. Missing or unsupported attributes become zero slots, not
// errors; only an element-level failure is returned.
func (e *Element) Fetch() (menu.ItemAttrs, error) {
	attrs := menu.ItemAttrs{ShortcutMods: -1}

	names := make([]C.CFStringRef, attrCount)
	for i, n := range menuItemAttrs[:] {
		names[i] = cfString(n)
	}
	defer func() {
		for _, n := range names {
			C.CFRelease(C.CFTypeRef(unsafe.Pointer(n)))
		}
	}()

	nameArray := C.CFArrayCreate(
		C.kCFAllocatorDefault,
		(*unsafe.Pointer)(unsafe.Pointer(&names[0])),
		C.CFIndex(attrCount),
		&C.kCFTypeArrayCallBacks,
	)
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(nameArray)))

	var out C.CFArrayRef
	code := C.AXUIElementCopyMultipleAttributeValues(e.ref, nameArray, 0, &out)
	if code != C.kAXErrorSuccess {
		return attrs, axError(code, "AXUIElementCopyMultipleAttributeValues")
	}
	if out == nil {
		return attrs, nil
	}
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(out)))

	n := int(C.CFArrayGetCount(out))
	for i := 0; i < n && i < attrCount; i++ {
		v := C.CFTypeRef(C.CFArrayGetValueAtIndex(out, C.CFIndex(i)))
		if v == nil {
			continue
		}
		e.parseSlot(&attrs, i, v)
	}
	return attrs, nil
}

// parseSlot coerces one batch result into its ItemAttrs field. Failed
// slots come back as AXValue error markers whose type never matches the
// slot's expected type, so they fall through as absent.
func (e *Element) parseSlot(attrs *menu.ItemAttrs, idx int, v C.CFTypeRef) {
	typeID := C.CFGetTypeID(v)

	switch idx {
	case attrRole:
		attrs.Role = stringValue(v, typeID)
	case attrTitle:
		attrs.Title = stringValue(v, typeID)
	case attrEnabled:
		if typeID == C.CFBooleanGetTypeID() {
			attrs.Enabled = C.CFBooleanGetValue(C.CFBooleanRef(unsafe.Pointer(v))) != 0
		}
	case attrChildren:
		if typeID == C.CFArrayGetTypeID() {
			attrs.Children = elementsFromArray(C.CFArrayRef(unsafe.Pointer(v)))
		}
	case attrCmdChar:
		attrs.ShortcutKey = stringValue(v, typeID)
	case attrCmdModifiers:
		if typeID == C.CFNumberGetTypeID() {
			var mods C.longlong
			C.CFNumberGetValue(C.CFNumberRef(unsafe.Pointer(v)), C.kCFNumberLongLongType, unsafe.Pointer(&mods))
			attrs.ShortcutMods = int(mods)
		}
	case attrMarkChar:
		attrs.MarkChar = stringValue(v, typeID)
	case attrPrimaryUIElement:
		if typeID == C.AXUIElementGetTypeID() {
			attrs.Primary = newElement(C.AXUIElementRef(unsafe.Pointer(v)), true)
		}
	}
}

// VisibleChildren returns only the children currently rendered. Extras
// bars use this so status items hidden by menu-bar managers are skipped.
func (e *Element) VisibleChildren() ([]menu.Element, error) {
	v, err := e.copyAttr("AXVisibleChildren")
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	defer C.CFRelease(v)
	if C.CFGetTypeID(v) != C.CFArrayGetTypeID() {
		return nil, nil
	}
	return elementsFromArray(C.CFArrayRef(unsafe.Pointer(v))), nil
}

// Press performs the AX press action on the element.
func (e *Element) Press() error {
	return e.perform("AXPress")
}

func (e *Element) perform(action string) error {
	cfAction := cfString(action)
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(cfAction)))
	return axError(C.AXUIElementPerformAction(e.ref, cfAction), action)
}

// copyAttr reads a single attribute under the create rule; the caller
// releases the returned ref.
func (e *Element) copyAttr(name string) (C.CFTypeRef, error) {
	cfName := cfString(name)
	defer C.CFRelease(C.CFTypeRef(unsafe.Pointer(cfName)))

	var value C.CFTypeRef
	code := C.AXUIElementCopyAttributeValue(e.ref, cfName, &value)
	if err := axError(code, name); err != nil {
		return nil, err
	}
	return value, nil
}

// elementAttr reads a single attribute expected to be an element.
func (e *Element) elementAttr(name string) (*Element, error) {
	v, err := e.copyAttr(name)
	if err != nil {
		return nil, err
	}
	if v == nil || C.CFGetTypeID(v) != C.AXUIElementGetTypeID() {
		if v != nil {
			C.CFRelease(v)
		}
		return nil, wrapErr(menu.ErrUnsupported, name)
	}
	// Create rule: the +1 ref transfers to the Element.
	return newElement(C.AXUIElementRef(unsafe.Pointer(v)), false), nil
}

func elementsFromArray(arr C.CFArrayRef) []menu.Element {
	n := int(C.CFArrayGetCount(arr))
	out := make([]menu.Element, 0, n)
	for i := 0; i < n; i++ {
		raw := C.CFArrayGetValueAtIndex(arr, C.CFIndex(i))
		if raw == nil {
			continue
		}
		// Array members are borrowed; retain so they outlive the array.
		out = append(out, newElement(C.AXUIElementRef(raw), true))
	}
	return out
}

func stringValue(v C.CFTypeRef, typeID C.CFTypeID) string {
	if typeID != C.CFStringGetTypeID() {
		return ""
	}
	return goString(C.CFStringRef(unsafe.Pointer(v)))
}

func goString(ref C.CFStringRef) string {
	if ref == nil {
		return ""
	}
	length := C.CFStringGetLength(ref)
	if length == 0 {
		return ""
	}
	bufSize := C.CFStringGetMaximumSizeForEncoding(length, C.kCFStringEncodingUTF8) + 1
	buf := make([]byte, int(bufSize))
	if C.CFStringGetCString(ref, (*C.char)(unsafe.Pointer(&buf[0])), bufSize, C.kCFStringEncodingUTF8) == 0 {
		return ""
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func cfString(s string) C.CFStringRef {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return C.menucli_cfstring(cs)
}
