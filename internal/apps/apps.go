// Package apps enumerates running applications and resolves user-supplied
// app identifiers to PIDs.
package apps

import (
	"fmt"
	"strconv"
	"strings"
)

// RunningApp is one GUI application known to the window server.
type RunningApp struct {
	Name      string
	PID       int
	BundleID  string
	Frontmost bool
}

// NotFoundError reports that no running application matched an identifier.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no running application matches %q", e.Identifier)
}

// Match resolves an identifier against an app list:
//
//  1. a valid integer is a PID (the listed app when present, otherwise
//     accepted as-is — some AX-reachable processes are not enumerable);
//  2. a string containing "." is a bundle id, matched exactly;
//  3. anything else is an app name, matched as a case-insensitive
//     substring.
func Match(list []RunningApp, identifier string) (*RunningApp, error) {
	if pid, err := strconv.Atoi(identifier); err == nil {
		for i := range list {
			if list[i].PID == pid {
				return &list[i], nil
			}
		}
		return &RunningApp{Name: identifier, PID: pid}, nil
	}

	if strings.Contains(identifier, ".") {
		for i := range list {
			if list[i].BundleID == identifier {
				return &list[i], nil
			}
		}
		return nil, &NotFoundError{Identifier: identifier}
	}

	needle := strings.ToLower(identifier)
	for i := range list {
		if strings.Contains(strings.ToLower(list[i].Name), needle) {
			return &list[i], nil
		}
	}
	return nil, &NotFoundError{Identifier: identifier}
}

// Frontmost returns the frontmost app from a list.
func Frontmost(list []RunningApp) (*RunningApp, error) {
	for i := range list {
		if list[i].Frontmost {
			return &list[i], nil
		}
	}
	return nil, &NotFoundError{Identifier: "<frontmost>"}
}

// Resolve maps an optional --app identifier to a running app, falling
// back to the frontmost application when the identifier is empty.
func Resolve(list []RunningApp, identifier string) (*RunningApp, error) {
	if identifier == "" {
		return Frontmost(list)
	}
	return Match(list, identifier)
}
