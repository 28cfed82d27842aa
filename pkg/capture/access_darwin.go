//go:build darwin

package capture

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework CoreGraphics
#import <Cocoa/Cocoa.h>
#import <CoreGraphics/CoreGraphics.h>

// 没有屏幕录制权限时其他应用的窗口名称被隐藏
int screenRecordingGranted() {
    if (@available(macOS 10.15, *)) {
        CFArrayRef windowList = CGWindowListCopyWindowInfo(
            kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
            kCGNullWindowID
        );
        if (windowList == NULL) {
            return 0;
        }

        CFIndex count = CFArrayGetCount(windowList);
        int hasNames = 0;
        for (CFIndex i = 0; i < count; i++) {
            CFDictionaryRef window = (CFDictionaryRef)CFArrayGetValueAtIndex(windowList, i);
            CFStringRef name = (CFStringRef)CFDictionaryGetValue(window, kCGWindowName);
            if (name != NULL && CFStringGetLength(name) > 0) {
                hasNames = 1;
                break;
            }
        }
        CFRelease(windowList);
        return (count == 0 || hasNames) ? 1 : 0;
    }
    return 1;
}

void openScreenRecordingPreferences() {
    NSString *urlString = @"x-apple.systempreferences:com.apple.preference.security?Privacy_ScreenCapture";
    [[NSWorkspace sharedWorkspace] openURL:[NSURL URLWithString:urlString]];
}
*/
import "C"

// ScreenAccessGranted 是否已授予屏幕录制权限（不触发弹窗）
func ScreenAccessGranted() bool {
	return C.screenRecordingGranted() == 1
}

// OpenScreenAccessSettings 打开屏幕录制设置页面
func OpenScreenAccessSettings() {
	C.openScreenRecordingPreferences()
}

// ScreenAccessInstructions 权限说明，已授权时为空
func ScreenAccessInstructions() string {
	if ScreenAccessGranted() {
		return ""
	}
	return "需要屏幕录制权限才能截图:\n" +
		"  系统偏好设置 > 安全性与隐私 > 隐私 > 屏幕录制\n" +
		"授权后需要重启应用才能生效。"
}
