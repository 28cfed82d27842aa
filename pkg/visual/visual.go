// Package visual 提供统一的屏幕/图像实体模型
//
// Region、Location、Image、Screen、Window、Match、Pattern、Offset 共用一个 Visual 结构，
// 由 Kind 区分变体。几何、目标点、最近匹配与截图都挂在同一个实体上：
//
//	r := visual.NewRegion(0, 0, 100, 50)
//	r.Target()              // (50, 25)
//	r.Left(10)              // ["LOCATION", [40, 25]]
//	r.SetOffsetXY(5, 0)
//	r.Target()              // (55, 25)，偏移在读取时叠加，不写入缓存
//
// 截图、编码与查找通过 Capturer、Codec、Finder 接口注入，具体实现见
// pkg/capture、pkg/codec、pkg/search。
package visual

import (
	"image"

	"github.com/zoeyai/zoeyvisual/internal/logger"
	"github.com/zoeyai/zoeyvisual/pkg/geom"
)

var log = logger.Named("SX.Visual")

// DefaultSimilarity Pattern 默认相似度阈值
const DefaultSimilarity = 0.7

// ScoreUnset 未设置的匹配分数
const ScoreUnset = -1.0

// WindowInfo Window 变体的附加信息
type WindowInfo struct {
	PID   int    `json:"pid"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// Visual 屏幕或图像上的几何实体
type Visual struct {
	kind Kind

	x, y, w, h int

	remote bool
	valid  func() bool

	lastMatch   *Visual
	lastMatches []*Visual
	lastCapture *Visual

	target        *geom.Point
	targetDerived bool
	offset        *Visual
	score         float64
	image         *Visual

	content image.Image

	// 变体附加信息
	screenID   int
	window     *WindowInfo
	similarity float64
	source     string
}

func newVisual(kind Kind) *Visual {
	return &Visual{kind: kind, score: ScoreUnset}
}

// NewRegion 创建矩形区域
func NewRegion(x, y, w, h int) *Visual {
	v := newVisual(KindRegion)
	v.Init(x, y, w, h)
	return v
}

// NewRegionFrom 从 Rect 创建矩形区域
func NewRegionFrom(r geom.Rect) *Visual {
	return NewRegion(r.X, r.Y, r.Width, r.Height)
}

// NewLocation 创建点
func NewLocation(x, y int) *Visual {
	v := newVisual(KindLocation)
	v.Init(x, y, 0, 0)
	return v
}

// NewOffset 创建相对偏移 (dx, dy)
func NewOffset(dx, dy int) *Visual {
	v := newVisual(KindOffset)
	v.Init(dx, dy, 0, 0)
	return v
}

// NewImage 用像素缓冲创建 Image，img 为 nil 时为 1x1 的空图像实体
func NewImage(img image.Image) *Visual {
	v := newVisual(KindImage)
	v.content = img
	if img == nil {
		v.Init(0, 0, 0, 0)
		return v
	}
	b := img.Bounds()
	v.Init(0, 0, b.Dx(), b.Dy())
	return v
}

// NewImageBytes 解码字节创建 Image
func NewImageBytes(data []byte, dec Decoder) (*Visual, error) {
	img, err := dec.Decode(data)
	if err != nil {
		log.Error("NewImageBytes: 解码失败 (%d bytes): %v", len(data), err)
		return nil, &DecodeError{Err: err}
	}
	return NewImage(img), nil
}

// NewScreen 创建显示器实体
func NewScreen(id int, bounds geom.Rect) *Visual {
	v := newVisual(KindScreen)
	v.screenID = id
	v.InitRect(bounds)
	return v
}

// NewRemoteScreen 创建远程显示面，valid 用于报告连接是否可用
func NewRemoteScreen(id int, bounds geom.Rect, valid func() bool) *Visual {
	v := NewScreen(id, bounds)
	v.remote = true
	v.valid = valid
	return v
}

// NewWindow 创建窗口实体
func NewWindow(info WindowInfo, bounds geom.Rect) *Visual {
	v := newVisual(KindWindow)
	v.window = &info
	v.InitRect(bounds)
	return v
}

// NewMatch 创建匹配结果，target 为实际定位点（可与外接矩形中心不同）
func NewMatch(bounds geom.Rect, score float64, target geom.Point) *Visual {
	v := newVisual(KindMatch)
	v.InitRect(bounds)
	v.score = score
	v.target = &target
	return v
}

// NewPattern 用 Image 创建查找模式
func NewPattern(img *Visual) *Visual {
	v := newVisual(KindPattern)
	v.similarity = DefaultSimilarity
	v.image = img
	if img == nil {
		v.Init(0, 0, 0, 0)
		return v
	}
	v.content = img.content
	v.source = img.source
	v.Init(0, 0, img.w, img.h)
	return v
}

// Init 设置几何信息：点类宽高不小于 0，Offset 保留原值，其余宽高不小于 1。
// 同时清除已缓存的目标点。
func (v *Visual) Init(x, y, w, h int) {
	v.x, v.y, v.w, v.h = x, y, w, h
	v.target = nil
	v.targetDerived = false
	switch {
	case v.IsPoint():
		v.w = max(w, 0)
		v.h = max(h, 0)
	case !v.IsOffset():
		v.w = max(w, 1)
		v.h = max(h, 1)
	}
}

// InitRect 从 Rect 初始化
func (v *Visual) InitRect(r geom.Rect) {
	v.Init(r.X, r.Y, r.Width, r.Height)
}

// InitPoint 从点初始化（宽高为 0）
func (v *Visual) InitPoint(p geom.Point) {
	v.Init(p.X, p.Y, 0, 0)
}

// InitFrom 复制另一个 Visual 的几何信息
func (v *Visual) InitFrom(o *Visual) {
	v.Init(o.x, o.y, o.w, o.h)
}

// Kind 返回变体类型
func (v *Visual) Kind() Kind { return v.kind }

// X 左上角横坐标
func (v *Visual) X() int { return v.x }

// Y 左上角纵坐标
func (v *Visual) Y() int { return v.y }

// W 宽度，点类为 0
func (v *Visual) W() int { return v.w }

// H 高度，点类为 0
func (v *Visual) H() int { return v.h }

// Size 返回面积，点类为 0
func (v *Visual) Size() int64 {
	return int64(v.w) * int64(v.h)
}

// ============ 能力判断 ============

// IsRegion 是否为区域
func (v *Visual) IsRegion() bool { return v.kind == KindRegion }

// IsLocation 是否为坐标点
func (v *Visual) IsLocation() bool { return v.kind == KindLocation }

// IsImage 是否为图像
func (v *Visual) IsImage() bool { return v.kind == KindImage }

// IsScreen 是否为显示器
func (v *Visual) IsScreen() bool { return v.kind == KindScreen }

// IsMatch 是否为匹配结果
func (v *Visual) IsMatch() bool { return v.kind == KindMatch }

// IsWindow 是否为窗口
func (v *Visual) IsWindow() bool { return v.kind == KindWindow }

// IsPattern 是否为查找模式
func (v *Visual) IsPattern() bool { return v.kind == KindPattern }

// IsOffset 是否为偏移量
func (v *Visual) IsOffset() bool { return v.kind == KindOffset }

// IsPoint 是否为点类实体
func (v *Visual) IsPoint() bool { return v.kind.IsPoint() }

// IsRectangle 是否为矩形类实体
func (v *Visual) IsRectangle() bool { return v.kind.IsRectangle() }

// IsOnScreen 是否位于屏幕坐标系中
func (v *Visual) IsOnScreen() bool { return v.IsRectangle() || v.IsPoint() }

// IsRemote 是否绑定远程显示面
func (v *Visual) IsRemote() bool { return v.remote }

// IsDesktop 是否绑定本地桌面
func (v *Visual) IsDesktop() bool { return !v.remote }

// IsValid 实体是否可用，默认 true；远程显示面断开时返回 false
func (v *Visual) IsValid() bool {
	if v.valid == nil {
		return true
	}
	return v.valid()
}

// ============ 变体附加信息 ============

// Score 匹配分数，未设置为 -1
func (v *Visual) Score() float64 { return v.score }

// SetScore 设置匹配分数
func (v *Visual) SetScore(score float64) { v.score = score }

// Image 返回源图像（Pattern/Match）
func (v *Visual) Image() *Visual { return v.image }

// SetImage 设置源图像
func (v *Visual) SetImage(img *Visual) { v.image = img }

// Content 返回像素缓冲，未截图或加载时为 nil
func (v *Visual) Content() image.Image { return v.content }

// ScreenID 返回显示器编号（Screen）
func (v *Visual) ScreenID() int { return v.screenID }

// Window 返回窗口信息（Window），其他变体为 nil
func (v *Visual) Window() *WindowInfo { return v.window }

// Source 返回图像来源路径
func (v *Visual) Source() string { return v.source }

// SetSource 设置图像来源路径
func (v *Visual) SetSource(path string) { v.source = path }

// Similarity 返回 Pattern 相似度阈值
func (v *Visual) Similarity() float64 {
	if v.similarity <= 0 {
		return DefaultSimilarity
	}
	return v.similarity
}

// Similar 设置相似度阈值，超出 (0, 1] 的值被忽略
func (v *Visual) Similar(s float64) *Visual {
	if s > 0 && s <= 1 {
		v.similarity = s
	}
	return v
}

// ============ 最近匹配 / 截图 ============

// LastMatch 最近一次查找的最佳匹配
func (v *Visual) LastMatch() *Visual { return v.lastMatch }

// LastMatches 最近一次 FindAll 的结果，按发现顺序
func (v *Visual) LastMatches() []*Visual { return v.lastMatches }

// LastCapture 最近一次截图
func (v *Visual) LastCapture() *Visual { return v.lastCapture }
