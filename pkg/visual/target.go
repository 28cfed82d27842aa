package visual

import "github.com/zoeyai/zoeyvisual/pkg/geom"

// Center 返回中心点（点类实体为自身坐标）
func (v *Visual) Center() *Visual {
	c := v.center()
	return NewLocation(c.X, c.Y)
}

func (v *Visual) center() geom.Point {
	return geom.Point{X: v.x + v.w/2, Y: v.y + v.h/2}
}

// Offset 返回偏移量，未设置为 nil
func (v *Visual) Offset() *Visual { return v.offset }

// SetOffset 设置偏移量；非 Offset 变体按其 (x, y) 转为 Offset，nil 表示清除。
// 由中心自动推导出的目标点缓存会失效，SetTarget 固定的目标点保持不变。
func (v *Visual) SetOffset(off *Visual) {
	if off != nil && !off.IsOffset() {
		off = NewOffset(off.x, off.y)
	}
	v.offset = off
	if v.targetDerived {
		v.target = nil
		v.targetDerived = false
	}
}

// SetOffsetXY 设置偏移量
func (v *Visual) SetOffsetXY(dx, dy int) {
	v.SetOffset(NewOffset(dx, dy))
}

// Target 返回目标点。
//
// 已缓存时直接返回缓存；否则以中心为候选目标。设置了偏移量时返回中心叠加偏移，
// 结果不写入缓存（需要固定偏移请使用 SetTarget）；未设置偏移时缓存中心。
func (v *Visual) Target() geom.Point {
	if v.target != nil {
		return *v.target
	}
	c := v.center()
	if v.offset != nil {
		return c.Add(v.offset.x, v.offset.y)
	}
	v.target = &c
	v.targetDerived = true
	return c
}

// TargetLocation 以 Location 形式返回目标点
func (v *Visual) TargetLocation() *Visual {
	t := v.Target()
	return NewLocation(t.X, t.Y)
}

// HasTarget 目标点是否已缓存
func (v *Visual) HasTarget() bool { return v.target != nil }

// SetTarget 设置目标点：Offset 为相对中心的偏移（写入缓存），
// 其他变体取其左上角坐标作为绝对锚点。
func (v *Visual) SetTarget(o *Visual) *Visual {
	var t geom.Point
	if o.IsOffset() {
		t = v.center().Add(o.x, o.y)
	} else {
		t = geom.Point{X: o.x, Y: o.y}
	}
	v.target = &t
	v.targetDerived = false
	return v
}

// SetTargetXY 直接设置目标点
func (v *Visual) SetTargetXY(x, y int) *Visual {
	t := geom.Point{X: x, Y: y}
	v.target = &t
	v.targetDerived = false
	return v
}

// ResetTarget 清除目标点缓存
func (v *Visual) ResetTarget() {
	v.target = nil
	v.targetDerived = false
}

// Match 返回最近匹配的目标点，没有匹配时返回自身目标点
func (v *Visual) Match() geom.Point {
	if v.lastMatch != nil {
		return v.lastMatch.Target()
	}
	return v.Target()
}

// Translate 原地平移；已缓存的目标点按相同增量平移，不重新计算
func (v *Visual) Translate(dx, dy int) {
	v.x += dx
	v.y += dy
	if v.target != nil {
		t := v.target.Add(dx, dy)
		v.target = &t
	}
}

// TranslateBy 按 Offset 平移
func (v *Visual) TranslateBy(off *Visual) {
	v.Translate(off.x, off.y)
}

// At 移动到 (x, y)，等价于按差值平移
func (v *Visual) At(x, y int) {
	v.Translate(x-v.x, y-v.y)
}
