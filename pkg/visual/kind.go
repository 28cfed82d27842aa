package visual

import "strings"

// Kind Visual 变体类型，构造后不可变
type Kind int

const (
	KindRegion Kind = iota
	KindLocation
	KindImage
	KindScreen
	KindMatch
	KindWindow
	KindPattern
	KindOffset
)

var kindNames = [...]string{
	KindRegion:   "REGION",
	KindLocation: "LOCATION",
	KindImage:    "IMAGE",
	KindScreen:   "SCREEN",
	KindMatch:    "MATCH",
	KindWindow:   "WINDOW",
	KindPattern:  "PATTERN",
	KindOffset:   "OFFSET",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "VISUAL"
	}
	return kindNames[k]
}

// ParseKind 解析变体名称（不区分大小写）
func ParseKind(s string) (Kind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsPoint 点类变体
func (k Kind) IsPoint() bool {
	return k == KindLocation
}

// IsRectangle 矩形类变体
func (k Kind) IsRectangle() bool {
	switch k {
	case KindRegion, KindMatch, KindScreen, KindWindow:
		return true
	}
	return false
}

// FindType 查找方式，见 Visual.FindBy
type FindType int

const (
	// FindTypeOne 第一个高于阈值的匹配
	FindTypeOne FindType = iota
	// FindTypeAll 全部匹配
	FindTypeAll
	// FindTypeVanish 等待消失，尚不支持
	FindTypeVanish
	// FindTypeAny 任一匹配，同 FindTypeOne
	FindTypeAny
	// FindTypeBest 全部匹配中分数最高者
	FindTypeBest
)

var findTypeNames = []string{"ONE", "ALL", "VANISH", "ANY", "BEST"}

// ParseFindType 解析查找方式（不区分大小写）
func ParseFindType(s string) (FindType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range findTypeNames {
		if name == s {
			return FindType(i), true
		}
	}
	return 0, false
}

func (t FindType) String() string {
	if t < 0 || int(t) >= len(findTypeNames) {
		return "UNKNOWN"
	}
	return findTypeNames[t]
}
