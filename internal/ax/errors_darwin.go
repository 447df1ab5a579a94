//go:build darwin

package ax

/*
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

import (
	"fmt"

	"github.com/yourusername/menucli/internal/menu"
)

// axError maps a raw AXError return code onto the engine's facade error
// vocabulary so the walker can partition failures without seeing raw
// codes. kAXErrorCannotComplete doubles as the busy/timeout signal.
func axError(code C.AXError, context string) error {
	switch code {
	case C.kAXErrorSuccess:
		return nil
	case C.kAXErrorInvalidUIElement:
		return wrapErr(menu.ErrInvalidElement, context)
	case C.kAXErrorAttributeUnsupported, C.kAXErrorActionUnsupported, C.kAXErrorNoValue:
		return wrapErr(menu.ErrUnsupported, context)
	case C.kAXErrorCannotComplete:
		return wrapErr(menu.ErrCannotComplete, context)
	case C.kAXErrorAPIDisabled:
		return wrapErr(menu.ErrNotAuthorized, context)
	default:
		return fmt.Errorf("%s: ax error %d", context, int(code))
	}
}

func wrapErr(err error, context string) error {
	return fmt.Errorf("%s: %w", context, err)
}
