// Package render 在截图上标注 Visual：外接矩形、目标点以及文本形式
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zoeyai/zoeyvisual/pkg/codec"
	"github.com/zoeyai/zoeyvisual/pkg/geom"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

var (
	// Red 矩形颜色
	Red = color.RGBA{255, 0, 0, 255}
	// Green 目标点颜色
	Green = color.RGBA{0, 200, 0, 255}
)

// Annotator 标注器
type Annotator struct {
	font      *truetype.Font
	fontSize  float64
	box       color.RGBA
	target    color.RGBA
	thickness int
	labels    bool
}

// Option 标注器配置
type Option func(*Annotator) error

// WithFontFile 使用字体文件（如中文字体）绘制标签
func WithFontFile(path string) Option {
	return func(a *Annotator) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("读取字体失败: %w", err)
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return fmt.Errorf("解析字体失败 (%s): %w", path, err)
		}
		a.font = f
		return nil
	}
}

// WithFontSize 设置标签字号
func WithFontSize(size float64) Option {
	return func(a *Annotator) error {
		if size > 0 {
			a.fontSize = size
		}
		return nil
	}
}

// WithColors 设置矩形与目标点颜色
func WithColors(box, target color.RGBA) Option {
	return func(a *Annotator) error {
		a.box, a.target = box, target
		return nil
	}
}

// WithoutLabels 不绘制文本标签
func WithoutLabels() Option {
	return func(a *Annotator) error {
		a.labels = false
		return nil
	}
}

// NewAnnotator 创建标注器，默认使用 Go Regular 字体
func NewAnnotator(opts ...Option) (*Annotator, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("解析内置字体失败: %w", err)
	}
	a := &Annotator{
		font:      f,
		fontSize:  12,
		box:       Red,
		target:    Green,
		thickness: 2,
		labels:    true,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Annotate 在 base 的像素上绘制 items，返回新的 Image，原点与 base 相同。
// items 使用桌面坐标，按 base 的原点换算；base 自身不被修改。
func (a *Annotator) Annotate(base *visual.Visual, items ...*visual.Visual) (*visual.Visual, error) {
	if base.Content() == nil {
		return nil, fmt.Errorf("%s 没有像素数据", base)
	}
	origin := geom.Point{X: base.X(), Y: base.Y()}

	mat, err := codec.ToMat(base.Content())
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	for _, v := range items {
		a.drawShape(&mat, v, origin)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat 转换失败: %w", err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	if a.labels {
		for _, v := range items {
			a.drawLabel(rgba, v, origin)
		}
	}

	out := visual.NewImage(rgba)
	out.At(origin.X, origin.Y)
	out.SetSource(base.Source())
	return out, nil
}

// drawShape 绘制外接矩形与目标点
func (a *Annotator) drawShape(mat *gocv.Mat, v *visual.Visual, origin geom.Point) {
	if v.IsRectangle() {
		r := v.Rect().Translate(-origin.X, -origin.Y)
		gocv.Rectangle(mat, r.ToImageRect(), a.box, a.thickness)
	}
	if v.IsOnScreen() {
		t := v.Target()
		gocv.Circle(mat, image.Pt(t.X-origin.X, t.Y-origin.Y), 3, a.target, -1)
	}
}

// drawLabel 在矩形上方绘制文本形式，空间不足时绘制在矩形内部
func (a *Annotator) drawLabel(dst *image.RGBA, v *visual.Visual, origin geom.Point) {
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(a.font)
	c.SetFontSize(a.fontSize)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(a.box))
	c.SetHinting(font.HintingFull)

	p := v.Point()
	if v.IsRectangle() {
		p = v.Rect().TopLeft()
	}
	x, y := p.X-origin.X, p.Y-origin.Y-2
	height := int(c.PointToFixed(a.fontSize) >> 6)
	if y < height {
		y += height + 4
	}
	c.DrawString(v.String(), freetype.Pt(x, y))
}
