// Package capture 提供本地桌面的截图与显示器枚举（基于 robotgo），
// 实现 visual.Capturer 与 visual.MonitorSource
package capture

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/go-vgo/robotgo"
	"github.com/samber/lo"

	"github.com/zoeyai/zoeyvisual/internal/logger"
	"github.com/zoeyai/zoeyvisual/pkg/geom"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

var log = logger.Named("SX.Capture")

// ErrDisplayNotFound 显示器编号无效
var ErrDisplayNotFound = errors.New("显示器不存在")

// Desktop 本地桌面
type Desktop struct {
	captureImg    func(args ...int) (image.Image, error)
	displaysNum   func() int
	displayBounds func(i int) (x, y, w, h int)
	granted       func() bool

	accessOnce sync.Once
}

// NewDesktop 创建基于 robotgo 的本地桌面
func NewDesktop() *Desktop {
	return &Desktop{
		captureImg:    robotgo.CaptureImg,
		displaysNum:   robotgo.DisplaysNum,
		displayBounds: robotgo.GetDisplayBounds,
		granted:       ScreenAccessGranted,
	}
}

// checkAccess 首次截图时检查屏幕录制权限，未授权时只记录警告
func (d *Desktop) checkAccess() {
	d.accessOnce.Do(func() {
		if d.granted != nil && !d.granted() {
			log.Warn("未授予屏幕录制权限，截图可能只包含桌面背景")
		}
	})
}

// Capture 截取桌面坐标下的矩形区域
func (d *Desktop) Capture(r geom.Rect) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("截图区域为空: %s", r)
	}
	d.checkAccess()
	img, err := d.captureImg(r.X, r.Y, r.Width, r.Height)
	if err != nil {
		return nil, fmt.Errorf("截取区域失败: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("截取区域失败: 返回空图像 %s", r)
	}
	b := img.Bounds()
	if b.Dx() != r.Width || b.Dy() != r.Height {
		log.Debug("Capture: 请求 %dx%d, 实际 %dx%d (缩放屏幕)", r.Width, r.Height, b.Dx(), b.Dy())
	}
	return img, nil
}

// CaptureScreen 截取全部显示器覆盖的区域
func (d *Desktop) CaptureScreen() (image.Image, error) {
	return d.Capture(geom.Bounds(d.Monitors()))
}

// Monitors 按系统顺序返回显示器边界
func (d *Desktop) Monitors() []geom.Rect {
	n := d.displaysNum()
	return lo.Times(n, func(i int) geom.Rect {
		x, y, w, h := d.displayBounds(i)
		return geom.R(x, y, w, h)
	})
}

// DisplayCount 显示器数量
func (d *Desktop) DisplayCount() int {
	return d.displaysNum()
}

// Screen 返回第 i 个显示器的 Screen 实体
func (d *Desktop) Screen(i int) (*visual.Visual, error) {
	monitors := d.Monitors()
	if i < 0 || i >= len(monitors) {
		return nil, fmt.Errorf("%w: %d (共 %d 个)", ErrDisplayNotFound, i, len(monitors))
	}
	return visual.NewScreen(i, monitors[i]), nil
}

// Screens 返回所有显示器的 Screen 实体
func (d *Desktop) Screens() []*visual.Visual {
	return lo.Map(d.Monitors(), func(r geom.Rect, i int) *visual.Visual {
		return visual.NewScreen(i, r)
	})
}

// ScreenAt 返回包含该点的 Screen，不在任何显示器上时返回 nil
func (d *Desktop) ScreenAt(p geom.Point) *visual.Visual {
	monitors := d.Monitors()
	i := geom.ContainingIndex(p, monitors)
	if i == geom.NotFound {
		return nil
	}
	return visual.NewScreen(i, monitors[i])
}
