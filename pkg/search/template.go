// Package search 提供基于 OpenCV 模板匹配的查找服务，实现 visual.Finder
package search

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"gocv.io/x/gocv"

	"github.com/zoeyai/zoeyvisual/internal/logger"
	"github.com/zoeyai/zoeyvisual/pkg/codec"
	"github.com/zoeyai/zoeyvisual/pkg/geom"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

var log = logger.Named("SX.Search")

// MaxResultCount FindAll 默认最大结果数量
const MaxResultCount = 10

// ImageSizeError 搜索图像大于源图像
type ImageSizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("搜索图像尺寸大于源图像: %dx%d > %dx%d",
		e.SearchSize[0], e.SearchSize[1], e.SourceSize[0], e.SourceSize[1])
}

// TemplateFinder 模板匹配查找器
type TemplateFinder struct {
	capturer   visual.Capturer
	maxResults int
	rgb        bool
}

// Option 查找器配置
type Option func(*TemplateFinder)

// WithMaxResults 设置 FindAll 最大结果数量
func WithMaxResults(n int) Option {
	return func(f *TemplateFinder) {
		if n > 0 {
			f.maxResults = n
		}
	}
}

// WithRGB 灰度匹配命中后再按三通道校验置信度，区分颜色不同的相同形状
func WithRGB() Option {
	return func(f *TemplateFinder) {
		f.rgb = true
	}
}

// NewTemplateFinder 创建模板匹配查找器，capturer 用于截取屏幕上的查找区域
func NewTemplateFinder(c visual.Capturer, opts ...Option) *TemplateFinder {
	f := &TemplateFinder{capturer: c, maxResults: MaxResultCount}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find 查找最佳匹配，低于阈值返回 (nil, nil)
func (f *TemplateFinder) Find(where, what *visual.Visual) (*visual.Visual, error) {
	matches, err := f.find(where, what, 1)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

// FindAll 查找所有高于阈值的匹配，按分数从高到低
func (f *TemplateFinder) FindAll(where, what *visual.Visual) ([]*visual.Visual, error) {
	return f.find(where, what, f.maxResults)
}

func (f *TemplateFinder) find(where, what *visual.Visual, limit int) ([]*visual.Visual, error) {
	startTime := time.Now()

	if what.Content() == nil {
		return nil, fmt.Errorf("%s 没有像素数据", what)
	}
	src, meta, err := f.source(where)
	if err != nil {
		return nil, err
	}

	srcMat, err := codec.ToMat(src)
	if err != nil {
		return nil, err
	}
	defer srcMat.Close()

	searchMat, err := codec.ToMat(what.Content())
	if err != nil {
		return nil, err
	}
	defer searchMat.Close()

	if err := checkSourceLargerThanSearch(srcMat, searchMat); err != nil {
		return nil, err
	}

	result := templateResultMatrix(srcMat, searchMat)
	defer result.Close()

	threshold := what.Similarity()
	h, w := searchMat.Rows(), searchMat.Cols()
	var matches []*visual.Visual

	for len(matches) < limit {
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)
		confidence := float64(maxVal)
		if math.IsNaN(confidence) || math.IsInf(confidence, 0) || confidence < threshold {
			break
		}
		if f.rgb {
			confidence = colorConfidence(srcMat, searchMat, maxLoc)
		}

		if confidence >= threshold {
			matches = append(matches, buildMatch(maxLoc, w, h, confidence, meta, what))
		}

		// 屏蔽已匹配区域
		gocv.Rectangle(&result,
			image.Rect(maxLoc.X-w/2, maxLoc.Y-h/2, maxLoc.X+w/2+1, maxLoc.Y+h/2+1),
			color.RGBA{0, 0, 0, 255}, -1)
	}

	log.Debug("find: %s in %s -> %d (%dms)", what, where, len(matches), time.Since(startTime).Milliseconds())
	return matches, nil
}

// source 取查找区域的像素：自带像素的实体直接使用，屏幕实体先截图
func (f *TemplateFinder) source(where *visual.Visual) (image.Image, captureMeta, error) {
	if where.Content() != nil && !where.IsOnScreen() {
		return where.Content(), metaFor(where.Rect(), where.Content(), where.Rect().TopLeft()), nil
	}
	if f.capturer == nil {
		return nil, captureMeta{}, fmt.Errorf("%s 需要截图服务: %w", where, visual.ErrNotSupported)
	}
	shot, err := where.Capture(f.capturer)
	if err != nil {
		return nil, captureMeta{}, err
	}
	return shot.Content(), metaFor(where.Rect(), shot.Content(), where.Rect().TopLeft()), nil
}

// templateResultMatrix 计算模板匹配结果矩阵
func templateResultMatrix(src, search gocv.Mat) gocv.Mat {
	srcGray := toGray(src)
	searchGray := toGray(search)
	defer srcGray.Close()
	defer searchGray.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	result := gocv.NewMat()
	gocv.MatchTemplate(srcGray, searchGray, &result, gocv.TmCcoeffNormed, mask)
	return result
}

// buildMatch 将结果矩阵坐标转换为桌面坐标下的 Match
func buildMatch(leftTop image.Point, w, h int, confidence float64, meta captureMeta, what *visual.Visual) *visual.Visual {
	topLeft := meta.adjust(geom.Point{X: leftTop.X, Y: leftTop.Y})
	bottomRight := meta.adjust(geom.Point{X: leftTop.X + w, Y: leftTop.Y + h})
	rect := geom.Rect{X: topLeft.X, Y: topLeft.Y, Width: bottomRight.X - topLeft.X, Height: bottomRight.Y - topLeft.Y}

	target := rect.Center()
	if off := what.Offset(); off != nil {
		target = target.Add(off.X(), off.Y())
	}

	m := visual.NewMatch(rect, confidence, target)
	if what.IsPattern() {
		m.SetImage(what.Image())
	} else {
		m.SetImage(what)
	}
	return m
}

// toGray 转换为灰度图
func toGray(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
	return dst
}

// checkSourceLargerThanSearch 检查源图像是否大于搜索图像
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{search.Cols(), search.Rows()},
		}
	}
	return nil
}
