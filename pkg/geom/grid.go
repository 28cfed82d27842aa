package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// GridPosition 网格位置，行列从 1 开始
type GridPosition struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
	Row  int `json:"row"`
	Col  int `json:"col"`
}

// ParseGridPosition 解析 "rows.cols.row.col"，如 "2.2.1.1" 表示 2x2 网格的第 1 行第 1 列
func ParseGridPosition(s string) (GridPosition, error) {
	if s == "" {
		return GridPosition{}, fmt.Errorf("网格位置字符串为空")
	}
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return GridPosition{}, fmt.Errorf("无效的网格位置格式: %s (期望格式: rows.cols.row.col)", s)
	}

	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return GridPosition{}, fmt.Errorf("无效的网格位置: %s", s)
		}
		n[i] = v
	}
	g := GridPosition{Rows: n[0], Cols: n[1], Row: n[2], Col: n[3]}
	return g, g.Validate()
}

// Validate 检查行列范围
func (g GridPosition) Validate() error {
	if g.Rows < 1 || g.Cols < 1 {
		return fmt.Errorf("行数和列数必须大于 0: rows=%d, cols=%d", g.Rows, g.Cols)
	}
	if g.Row < 1 || g.Col < 1 || g.Row > g.Rows || g.Col > g.Cols {
		return fmt.Errorf("目标位置超出范围: %s", g)
	}
	return nil
}

func (g GridPosition) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", g.Rows, g.Cols, g.Row, g.Col)
}

// Cell 网格中指定格子的矩形，最后一行/列吸收除不尽的余数
func (r Rect) Cell(g GridPosition) Rect {
	x0 := r.X + (g.Col-1)*r.Width/g.Cols
	x1 := r.X + g.Col*r.Width/g.Cols
	y0 := r.Y + (g.Row-1)*r.Height/g.Rows
	y1 := r.Y + g.Row*r.Height/g.Rows
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
