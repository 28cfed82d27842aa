package visual

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/zoeyai/zoeyvisual/pkg/geom"
)

// FormatPNG 默认图像编码格式
const FormatPNG = "png"

// Capturer 截图服务：按桌面坐标截取矩形区域
type Capturer interface {
	Capture(r geom.Rect) (image.Image, error)
}

// Encoder 图像编码服务
type Encoder interface {
	Encode(img image.Image, format string) ([]byte, error)
}

// Decoder 图像解码服务
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}

// Codec 编解码服务
type Codec interface {
	Encoder
	Decoder
}

// MonitorSource 显示器枚举服务，返回有序的显示器边界
type MonitorSource interface {
	Monitors() []geom.Rect
}

var (
	// ErrNotSupported 当前实体或平台不支持该操作
	ErrNotSupported = errors.New("操作不支持")
	// ErrNotFound 查找未命中
	ErrNotFound = errors.New("未找到匹配")
)

// DecodeError 图像字节解码失败
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("图像解码失败: %v", e.Err)
	}
	return fmt.Sprintf("图像解码失败 (%s): %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// captureRect 截图区域：矩形类取外接矩形，点类取 1x1
func (v *Visual) captureRect() (geom.Rect, bool) {
	switch {
	case v.IsRectangle():
		return v.Rect(), true
	case v.IsPoint():
		return geom.Rect{X: v.x, Y: v.y, Width: 1, Height: 1}, true
	}
	return geom.Rect{}, false
}

// Capture 截取实体所在区域并包装为 Image，同时记为 LastCapture。
// 远程实体返回 ErrNotSupported，不调用截图服务。
func (v *Visual) Capture(c Capturer) (*Visual, error) {
	if v.IsRemote() {
		log.Error("capture: %s 远程截图未实现", v)
		return nil, fmt.Errorf("远程截图: %w", ErrNotSupported)
	}
	r, ok := v.captureRect()
	if !ok {
		return nil, fmt.Errorf("%s 不在屏幕上，无法截图: %w", v.kind, ErrNotSupported)
	}

	start := time.Now()
	img, err := c.Capture(r)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		log.LogEvent("CAP", false, elapsed, fmt.Sprintf("%s: %v", r, err))
		return nil, fmt.Errorf("截图失败: %w", err)
	}
	log.LogEvent("CAP", true, elapsed, r.String())

	shot := NewImage(img)
	shot.x, shot.y = r.X, r.Y
	v.lastCapture = shot
	return shot, nil
}

// Color 返回目标点处的颜色，非屏幕实体返回 ErrNotSupported
func (v *Visual) Color(c Capturer) (color.Color, error) {
	if !v.IsOnScreen() {
		return nil, fmt.Errorf("%s 不在屏幕上: %w", v.kind, ErrNotSupported)
	}
	p := v.Point()
	pixel := NewLocation(p.X, p.Y)
	pixel.remote = v.remote
	shot, err := pixel.Capture(c)
	if err != nil {
		return nil, err
	}
	b := shot.content.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("截图为空: %s", p)
	}
	return shot.content.At(b.Min.X, b.Min.Y), nil
}

// ImageBytes 按格式编码像素缓冲；没有缓冲时返回空字节，不视为错误
func (v *Visual) ImageBytes(enc Encoder, format string) ([]byte, error) {
	if format == "" {
		format = FormatPNG
	}
	if v.content == nil || v.content.Bounds().Empty() {
		return []byte{}, nil
	}
	data, err := enc.Encode(v.content, format)
	if err != nil {
		log.Error("ImageBytes: %s 编码失败 (%s): %v", v, format, err)
		return nil, fmt.Errorf("图像编码失败 (%s): %w", format, err)
	}
	return data, nil
}

// DecodedImage 编码后再解码得到可显示的图像；没有缓冲时返回 0x0 的空图像，
// 字节无法解码时返回 *DecodeError
func (v *Visual) DecodedImage(c Codec, format string) (image.Image, error) {
	if format == "" {
		format = FormatPNG
	}
	data, err := v.ImageBytes(c, format)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	img, err := c.Decode(data)
	if err != nil {
		log.Error("DecodedImage: %s 解码失败: %v", v, err)
		return nil, &DecodeError{Format: format, Err: err}
	}
	return img, nil
}
