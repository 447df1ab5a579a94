//go:build darwin

package apps

/*
#cgo LDFLAGS: -framework CoreFoundation -framework AppKit
#include <objc/runtime.h>
#include <objc/message.h>
#include <CoreFoundation/CoreFoundation.h>

typedef struct {
	int  pid;
	char name[256];
	char bundle[256];
	int  frontmost;
} menucli_app_info;

static id menucli_workspace(void) {
	Class cls = objc_getClass("NSWorkspace");
	return ((id (*)(id, SEL))objc_msgSend)((id)cls, sel_registerName("sharedWorkspace"));
}

static void menucli_cfstr(CFStringRef s, char *buf, size_t n) {
	buf[0] = '\0';
	if (s != NULL) {
		CFStringGetCString(s, buf, (CFIndex)n, kCFStringEncodingUTF8);
	}
}

// menucli_list_apps fills out with every running application, returning
// the count. NSRunningApplication arrays are toll-free CFArrays and
// NSString is a CFStringRef, so no further objc round-trips are needed
// per field beyond the property getters.
static int menucli_list_apps(menucli_app_info *out, int max) {
	id ws = menucli_workspace();
	id apps = ((id (*)(id, SEL))objc_msgSend)(ws, sel_registerName("runningApplications"));
	id front = ((id (*)(id, SEL))objc_msgSend)(ws, sel_registerName("frontmostApplication"));
	int front_pid = -1;
	if (front != NULL) {
		front_pid = ((int (*)(id, SEL))objc_msgSend)(front, sel_registerName("processIdentifier"));
	}
	if (apps == NULL) {
		return 0;
	}
	CFIndex count = CFArrayGetCount((CFArrayRef)apps);
	int n = 0;
	for (CFIndex i = 0; i < count && n < max; i++) {
		id app = (id)CFArrayGetValueAtIndex((CFArrayRef)apps, i);
		int pid = ((int (*)(id, SEL))objc_msgSend)(app, sel_registerName("processIdentifier"));
		CFStringRef name = (CFStringRef)((id (*)(id, SEL))objc_msgSend)(app, sel_registerName("localizedName"));
		CFStringRef bundle = (CFStringRef)((id (*)(id, SEL))objc_msgSend)(app, sel_registerName("bundleIdentifier"));
		out[n].pid = pid;
		menucli_cfstr(name, out[n].name, sizeof out[n].name);
		menucli_cfstr(bundle, out[n].bundle, sizeof out[n].bundle);
		out[n].frontmost = (pid == front_pid) ? 1 : 0;
		n++;
	}
	return n;
}
*/
import "C"

import (
	"sort"

	"golang.org/x/sys/unix"
)

const maxApps = 1024

// List returns all running applications that have a name, sorted by name.
// Background agents without a localized name are dropped: they own no
// menu bar a user could address.
func List() []RunningApp {
	buf := make([]C.menucli_app_info, maxApps)
	n := int(C.menucli_list_apps(&buf[0], C.int(maxApps)))

	result := make([]RunningApp, 0, n)
	for i := 0; i < n; i++ {
		name := C.GoString(&buf[i].name[0])
		if name == "" {
			continue
		}
		result = append(result, RunningApp{
			Name:      name,
			PID:       int(buf[i].pid),
			BundleID:  C.GoString(&buf[i].bundle[0]),
			Frontmost: buf[i].frontmost != 0,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Alive reports whether a process with the given pid exists, using the
// zero-signal kill probe. EPERM still means the process is there.
func Alive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}
