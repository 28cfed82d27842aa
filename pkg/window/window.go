// Package window 枚举桌面窗口并生成 Window 变体
package window

import (
	"fmt"
	"strings"

	"github.com/go-vgo/robotgo"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/zoeyai/zoeyvisual/internal/logger"
	"github.com/zoeyai/zoeyvisual/pkg/geom"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

var log = logger.Named("SX.Window")

// Lister 窗口枚举器，平台调用可替换以便测试
type Lister struct {
	pids     func() ([]int, error)
	title    func(pid int) string
	bounds   func(pid int) (x, y, w, h int)
	owner    func(pid int) string
	activate func(pid int) error
}

// NewLister 创建基于 robotgo 的窗口枚举器，进程名由 gopsutil 提供
func NewLister() *Lister {
	return &Lister{
		pids:  robotgo.Pids,
		title: func(pid int) string { return robotgo.GetTitle(pid) },
		bounds: func(pid int) (int, int, int, int) {
			return robotgo.GetBounds(pid)
		},
		owner: ownerName,
		activate: func(pid int) error {
			return robotgo.ActivePid(pid)
		},
	}
}

// ownerName 获取进程名，失败时返回空字符串
func ownerName(pid int) string {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, _ := proc.Name()
	return name
}

// Windows 获取有标题的窗口，filter 按标题或进程名部分匹配（不区分大小写）
func (l *Lister) Windows(filter ...string) ([]*visual.Visual, error) {
	pids, err := l.pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	filterStr := ""
	if len(filter) > 0 {
		filterStr = strings.ToLower(filter[0])
	}

	var windows []*visual.Visual
	for _, pid := range pids {
		title := l.title(pid)
		if title == "" {
			continue
		}
		owner := l.owner(pid)
		if filterStr != "" &&
			!strings.Contains(strings.ToLower(title), filterStr) &&
			!strings.Contains(strings.ToLower(owner), filterStr) {
			continue
		}
		windows = append(windows, l.window(pid, title, owner))
	}
	log.Debug("windows(%q): %d", filterStr, len(windows))
	return windows, nil
}

// ByTitle 按标题查找第一个窗口（部分匹配）
func (l *Lister) ByTitle(title string) (*visual.Visual, error) {
	windows, err := l.Windows(title)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("未找到标题包含 %q 的窗口: %w", title, visual.ErrNotFound)
	}
	return windows[0], nil
}

// ByPID 按 PID 获取窗口
func (l *Lister) ByPID(pid int) (*visual.Visual, error) {
	title := l.title(pid)
	if title == "" {
		return nil, fmt.Errorf("未找到 PID=%d 的窗口: %w", pid, visual.ErrNotFound)
	}
	return l.window(pid, title, l.owner(pid)), nil
}

// Activate 将 Window 变体置于前台
func (l *Lister) Activate(w *visual.Visual) error {
	if !w.IsWindow() || w.Window() == nil {
		return fmt.Errorf("%s 不是窗口: %w", w, visual.ErrNotSupported)
	}
	if err := l.activate(w.Window().PID); err != nil {
		return fmt.Errorf("激活窗口失败 (PID=%d): %w", w.Window().PID, err)
	}
	return nil
}

// Refresh 重新读取窗口边界，窗口已关闭时返回错误
func (l *Lister) Refresh(w *visual.Visual) error {
	if !w.IsWindow() || w.Window() == nil {
		return fmt.Errorf("%s 不是窗口: %w", w, visual.ErrNotSupported)
	}
	pid := w.Window().PID
	if l.title(pid) == "" {
		return fmt.Errorf("窗口已关闭 (PID=%d): %w", pid, visual.ErrNotFound)
	}
	x, y, width, height := l.bounds(pid)
	w.Init(x, y, width, height)
	return nil
}

func (l *Lister) window(pid int, title, owner string) *visual.Visual {
	x, y, w, h := l.bounds(pid)
	return visual.NewWindow(
		visual.WindowInfo{PID: pid, Title: title, Owner: owner},
		geom.Rect{X: x, Y: y, Width: w, Height: h},
	)
}
