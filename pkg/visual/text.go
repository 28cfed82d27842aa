package visual

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotVisualText 字符串不是 ["KIND", [...]] 格式
var ErrNotVisualText = errors.New("不是 Visual 文本格式")

// ParseError 文本格式解析失败
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("解析 Visual 失败: %s: %q", e.Reason, e.Text)
}

// String 返回规范文本形式：点类和 Offset 为 ["KIND", [x, y]]，
// 其余为 ["KIND", [x, y, w, h]<附加信息>]
func (v *Visual) String() string {
	if v.IsLocation() || v.IsOffset() {
		return fmt.Sprintf(`["%s", [%d, %d]]`, v.kind, v.x, v.y)
	}
	return fmt.Sprintf(`["%s", [%d, %d, %d, %d]%s]`, v.kind, v.x, v.y, v.w, v.h, v.stringPlus())
}

// stringPlus 变体附加信息
func (v *Visual) stringPlus() string {
	switch v.kind {
	case KindMatch:
		return ", " + strconv.FormatFloat(v.score, 'f', 4, 64)
	case KindScreen:
		return ", " + strconv.Itoa(v.screenID)
	case KindWindow:
		if v.window != nil {
			return ", " + strconv.Quote(v.window.Title)
		}
	}
	return ""
}

// IsJSON 判断字符串是否为 ["KIND", ...] 文本格式
func IsJSON(s string) bool {
	return strings.HasPrefix(s, `["`)
}

// Parse 解析 String 生成的文本。附加信息按变体恢复：Match 的分数、Screen 的编号、
// Window 的标题；Image/Pattern 只恢复几何信息，不包含像素。
func Parse(s string) (*Visual, error) {
	s = strings.TrimSpace(s)
	if !IsJSON(s) {
		return nil, ErrNotVisualText
	}
	if !gjson.Valid(s) {
		return nil, &ParseError{Text: s, Reason: "不是合法的 JSON 数组"}
	}

	parts := gjson.Parse(s).Array()
	if len(parts) < 2 {
		return nil, &ParseError{Text: s, Reason: "缺少坐标"}
	}
	kind, ok := ParseKind(parts[0].String())
	if !ok {
		return nil, &ParseError{Text: s, Reason: "未知变体 " + parts[0].String()}
	}
	if !parts[1].IsArray() {
		return nil, &ParseError{Text: s, Reason: "坐标不是数组"}
	}

	nums := parts[1].Array()
	coords := make([]int, len(nums))
	for i, n := range nums {
		if n.Type != gjson.Number {
			return nil, &ParseError{Text: s, Reason: "坐标不是数字"}
		}
		if n.Num != float64(n.Int()) {
			return nil, &ParseError{Text: s, Reason: "坐标不是整数"}
		}
		coords[i] = int(n.Int())
	}

	pointLike := kind == KindLocation || kind == KindOffset
	switch {
	case pointLike && len(parts) > 2:
		return nil, &ParseError{Text: s, Reason: "点类不带附加字段"}
	case pointLike && len(coords) != 2:
		return nil, &ParseError{Text: s, Reason: "点类需要 2 个坐标"}
	case !pointLike && len(coords) != 4:
		return nil, &ParseError{Text: s, Reason: "矩形需要 4 个坐标"}
	}

	v := newVisual(kind)
	if pointLike {
		v.Init(coords[0], coords[1], 0, 0)
	} else {
		v.Init(coords[0], coords[1], coords[2], coords[3])
	}

	var extra gjson.Result
	if len(parts) > 2 {
		extra = parts[2]
	}
	switch kind {
	case KindMatch:
		if extra.Exists() {
			v.score = extra.Float()
		}
	case KindScreen:
		v.screenID = int(extra.Int())
	case KindWindow:
		v.window = &WindowInfo{Title: extra.String()}
	case KindPattern:
		v.similarity = DefaultSimilarity
	}
	return v, nil
}
