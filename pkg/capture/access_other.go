//go:build !darwin

package capture

// ScreenAccessGranted 非 macOS 系统不需要屏幕录制权限
func ScreenAccessGranted() bool {
	return true
}

// OpenScreenAccessSettings 非 macOS 不需要
func OpenScreenAccessSettings() {}

// ScreenAccessInstructions 非 macOS 不需要
func ScreenAccessInstructions() string {
	return ""
}
