package visual

import (
	"github.com/samber/lo"

	"github.com/zoeyai/zoeyvisual/pkg/geom"
)

// Margin 区域扩展的默认边距
type Margin struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// DefaultMargin 进程级默认边距，仅作为配置初始值
var DefaultMargin = Margin{W: 50, H: 50}

// With 返回修改后的边距，不大于 0 的值保持原值
func (m Margin) With(w, h int) Margin {
	if w > 0 {
		m.W = w
	}
	if h > 0 {
		m.H = h
	}
	return m
}

// Rect 返回外接矩形
func (v *Visual) Rect() geom.Rect {
	return geom.Rect{X: v.x, Y: v.y, Width: v.w, Height: v.h}
}

// Region 返回同几何的新 Region
func (v *Visual) Region() *Visual {
	return NewRegion(v.x, v.y, v.w, v.h)
}

// Point 点类实体返回自身坐标，其余返回中心
func (v *Visual) Point() geom.Point {
	if v.IsPoint() {
		return geom.Point{X: v.x, Y: v.y}
	}
	return v.center()
}

// Union 返回覆盖两者的最小 Region，与输入变体无关
func (v *Visual) Union(o *Visual) *Visual {
	return NewRegionFrom(geom.Union(v.Rect(), o.Rect()))
}

// Contains 仅矩形类实体可包含：矩形参数要求完全位于内部，点参数要求点在内部，
// 其他变体一律为 false
func (v *Visual) Contains(o *Visual) bool {
	if !v.IsRectangle() {
		return false
	}
	switch {
	case o.IsRectangle():
		return v.Rect().Contains(o.Rect())
	case o.IsPoint():
		return v.Rect().ContainsPoint(geom.Point{X: o.x, Y: o.y})
	}
	return false
}

// ContainingScreenNumber 返回包含左上角坐标的显示器编号，不在任何显示器内返回 -1
func (v *Visual) ContainingScreenNumber(m MonitorSource) int {
	return geom.ContainingIndex(geom.Point{X: v.x, Y: v.y}, m.Monitors())
}

// OffsetBy 返回相对位置的新 Location，点类以自身为基准，矩形类以中心为基准
func (v *Visual) OffsetBy(dx, dy int) *Visual {
	p := v.Point().Add(dx, dy)
	return NewLocation(p.X, p.Y)
}

// OffsetTo 同 OffsetBy，偏移量取自 Offset
func (v *Visual) OffsetTo(off *Visual) *Visual {
	return v.OffsetBy(off.x, off.y)
}

// Left 向左 d 像素的 Location，负值表示反方向
func (v *Visual) Left(d int) *Visual {
	return v.OffsetBy(-d, 0)
}

// Right 向右 d 像素的 Location
func (v *Visual) Right(d int) *Visual {
	return v.OffsetBy(d, 0)
}

// Above 向上 d 像素的 Location
func (v *Visual) Above(d int) *Visual {
	return v.OffsetBy(0, -d)
}

// Below 向下 d 像素的 Location
func (v *Visual) Below(d int) *Visual {
	return v.OffsetBy(0, d)
}

// Grow 按边距向四周扩展，返回新 Region；点类以该点为中心
func (v *Visual) Grow(m Margin) *Visual {
	return v.GrowBy(m.W, m.H)
}

// GrowBy 按指定宽高向四周扩展
func (v *Visual) GrowBy(dw, dh int) *Visual {
	return NewRegionFrom(v.Rect().Grow(dw, dh))
}

// Intersection 返回与另一个实体的交集，不相交时为 nil
func (v *Visual) Intersection(o *Visual) *Visual {
	r := v.Rect().Intersect(o.Rect())
	if r.Empty() {
		return nil
	}
	return NewRegionFrom(r)
}

// Cell 将外接矩形划分为 rows x cols 网格，返回第 row 行第 col 列（从 1 开始）的 Region
func (v *Visual) Cell(rows, cols, row, col int) (*Visual, error) {
	g := geom.GridPosition{Rows: rows, Cols: cols, Row: row, Col: col}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return NewRegionFrom(v.Rect().Cell(g)), nil
}

// CellAt 按 "rows.cols.row.col" 返回格子 Region
func (v *Visual) CellAt(pos string) (*Visual, error) {
	g, err := geom.ParseGridPosition(pos)
	if err != nil {
		return nil, err
	}
	return NewRegionFrom(v.Rect().Cell(g)), nil
}

// Cells 按行优先顺序返回全部格子
func (v *Visual) Cells(rows, cols int) []*Visual {
	if rows < 1 || cols < 1 {
		return nil
	}
	r := v.Rect()
	return lo.Times(rows*cols, func(i int) *Visual {
		return NewRegionFrom(r.Cell(geom.GridPosition{Rows: rows, Cols: cols, Row: i/cols + 1, Col: i%cols + 1}))
	})
}
