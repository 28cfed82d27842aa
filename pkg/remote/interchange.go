package remote

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

// ToStruct 将 Visual 的几何描述转换为 structpb.Struct，不包含像素
func ToStruct(v *visual.Visual) (*structpb.Struct, error) {
	fields := map[string]any{
		"kind": v.Kind().String(),
		"x":    v.X(),
		"y":    v.Y(),
		"w":    v.W(),
		"h":    v.H(),
	}
	switch {
	case v.IsMatch():
		fields["score"] = v.Score()
		t := v.Target()
		fields["target"] = map[string]any{"x": t.X, "y": t.Y}
	case v.IsScreen():
		fields["screen"] = v.ScreenID()
		fields["remote"] = v.IsRemote()
	case v.IsWindow() && v.Window() != nil:
		fields["title"] = v.Window().Title
		fields["pid"] = v.Window().PID
		fields["owner"] = v.Window().Owner
	case v.IsPattern():
		fields["similarity"] = v.Similarity()
	}
	if off := v.Offset(); off != nil {
		fields["offset"] = map[string]any{"x": off.X(), "y": off.Y()}
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("转换 %s 失败: %w", v, err)
	}
	return st, nil
}

// FromStruct 由 structpb.Struct 恢复 Visual
func FromStruct(st *structpb.Struct) (*visual.Visual, error) {
	m := st.AsMap()
	kind, ok := visual.ParseKind(str(m["kind"]))
	if !ok {
		return nil, fmt.Errorf("未知变体: %v", m["kind"])
	}

	coords := []int{num(m["x"]), num(m["y"])}
	if !kind.IsPoint() && kind != visual.KindOffset {
		coords = append(coords, num(m["w"]), num(m["h"]))
	}
	parts := []any{kind.String(), coords}
	switch kind {
	case visual.KindMatch:
		parts = append(parts, m["score"])
	case visual.KindScreen:
		parts = append(parts, num(m["screen"]))
	case visual.KindWindow:
		parts = append(parts, str(m["title"]))
	}

	text, err := json.Marshal(parts)
	if err != nil {
		return nil, fmt.Errorf("转换失败: %w", err)
	}
	v, err := visual.Parse(string(text))
	if err != nil {
		return nil, err
	}

	switch kind {
	case visual.KindScreen:
		// 远程标记不在文本形式中
		if remote, _ := m["remote"].(bool); remote {
			v = visual.NewRemoteScreen(v.ScreenID(), v.Rect(), nil)
		}
	case visual.KindMatch:
		if t, ok := m["target"].(map[string]any); ok {
			v.SetTargetXY(num(t["x"]), num(t["y"]))
		}
	case visual.KindWindow:
		info := v.Window()
		info.PID = num(m["pid"])
		info.Owner = str(m["owner"])
	case visual.KindPattern:
		if s, ok := m["similarity"].(float64); ok {
			v.Similar(s)
		}
	}
	if off, ok := m["offset"].(map[string]any); ok {
		v.SetOffsetXY(num(off["x"]), num(off["y"]))
	}
	return v, nil
}

func num(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
