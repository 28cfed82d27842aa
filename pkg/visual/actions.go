package visual

import (
	"fmt"
	"time"
)

// Wait 纯延时，不可取消
func (v *Visual) Wait(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// 以下操作尚无实现，统一返回 ErrNotSupported，不终止进程

// Show 高亮显示实体
func (v *Visual) Show(d time.Duration) error {
	return fmt.Errorf("show %s: %w", v, ErrNotSupported)
}

// Write 在实体处输入文本
func (v *Visual) Write(text string) error {
	return fmt.Errorf("write %s: %w", v, ErrNotSupported)
}

// Paste 在实体处粘贴文本
func (v *Visual) Paste(text string) error {
	return fmt.Errorf("paste %s: %w", v, ErrNotSupported)
}

// WaitFor 等待 what 出现
func (v *Visual) WaitFor(what *Visual, timeout time.Duration) (*Visual, error) {
	return nil, fmt.Errorf("wait %s: %w", what, ErrNotSupported)
}

// WaitVanish 等待 what 消失
func (v *Visual) WaitVanish(what *Visual, timeout time.Duration) (bool, error) {
	return false, fmt.Errorf("waitVanish %s: %w", what, ErrNotSupported)
}

// StopObserver 停止观察
func (v *Visual) StopObserver(reason string) error {
	return fmt.Errorf("stopObserver: %w", ErrNotSupported)
}
