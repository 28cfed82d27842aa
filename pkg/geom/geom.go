// Package geom 提供整数坐标的几何计算：点、矩形、并集、包含、平移
package geom

import (
	"fmt"
	"image"

	"github.com/samber/lo"
)

// NotFound 未找到时返回的索引
const NotFound = -1

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt 创建 Point
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add 返回平移后的点
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// In 判断点是否在矩形内
func (p Point) In(r Rect) bool {
	return r.ContainsPoint(p)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// ToImagePoint 转换为 image.Point
func (p Point) ToImagePoint() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// Rect 表示矩形区域（左上角 + 宽高）
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// R 创建 Rect
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// FromImageRect 从 image.Rectangle 创建 Rect
func FromImageRect(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// ToImageRect 转换为 image.Rectangle
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty 宽或高不大于 0 时为空
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right 返回右边界（不含）
func (r Rect) Right() int { return r.X + r.Width }

// Bottom 返回下边界（不含）
func (r Rect) Bottom() int { return r.Y + r.Height }

// TopLeft 返回左上角
func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// Center 返回中心点（整数除法）
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area 返回面积
func (r Rect) Area() int64 {
	return int64(r.Width) * int64(r.Height)
}

// Translate 返回平移后的矩形
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Grow 向四周扩展 dw、dh，结果宽高最小为 0
func (r Rect) Grow(dw, dh int) Rect {
	out := Rect{X: r.X - dw, Y: r.Y - dh, Width: r.Width + 2*dw, Height: r.Height + 2*dh}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// ContainsPoint 判断点是否在矩形内（左上含，右下不含）
func (r Rect) ContainsPoint(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Contains 判断 o 是否完全位于 r 内
func (r Rect) Contains(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersect 返回两个矩形的交集，不相交时返回零值
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union 返回覆盖两个矩形的最小矩形
func Union(a, b Rect) Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.Right(), b.Right()), max(a.Bottom(), b.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ContainingIndex 返回列表中第一个包含该点的矩形索引，未找到返回 NotFound。
// 多个显示器重叠时按列表顺序取第一个。
func ContainingIndex(p Point, screens []Rect) int {
	_, idx, ok := lo.FindIndexOf(screens, func(r Rect) bool {
		return r.ContainsPoint(p)
	})
	if !ok {
		return NotFound
	}
	return idx
}

// Bounds 返回覆盖所有矩形的最小矩形，列表为空时返回零值
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	return lo.Reduce(rects[1:], func(acc Rect, r Rect, _ int) Rect {
		return Union(acc, r)
	}, rects[0])
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d, %d, %d, %d]", r.X, r.Y, r.Width, r.Height)
}
