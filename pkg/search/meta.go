package search

import (
	"image"
	"math"

	"github.com/zoeyai/zoeyvisual/pkg/geom"
)

// captureMeta 截图元信息：缩放比例与偏移量。
// 缩放屏幕上截图像素数可能大于请求的逻辑尺寸。
type captureMeta struct {
	scaleX  float64
	scaleY  float64
	offsetX int
	offsetY int
}

func metaFor(requested geom.Rect, img image.Image, origin geom.Point) captureMeta {
	b := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if requested.Width > 0 && b.Dx() > 0 {
		scaleX = float64(b.Dx()) / float64(requested.Width)
	}
	if requested.Height > 0 && b.Dy() > 0 {
		scaleY = float64(b.Dy()) / float64(requested.Height)
	}
	return captureMeta{scaleX: scaleX, scaleY: scaleY, offsetX: origin.X, offsetY: origin.Y}
}

// adjust 反向缩放并加上偏移
func (m captureMeta) adjust(p geom.Point) geom.Point {
	return geom.Point{
		X: scaleCoord(p.X, m.scaleX) + m.offsetX,
		Y: scaleCoord(p.Y, m.scaleY) + m.offsetY,
	}
}

// scaleCoord 按比例缩放坐标值
func scaleCoord(value int, scale float64) int {
	if scale <= 0 {
		return value
	}
	return int(math.Round(float64(value) / scale))
}
