package search

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// 比较前把像素截到 [colorFloor, colorCeil]，避开纯黑纯白带来的相关系数失真
const (
	colorFloor = 10
	colorCeil  = 245
)

// colorConfidence 取 src 中以 at 为左上角、与 needle 同尺寸的区域，
// 逐通道做归一化相关，返回最差通道的分数。区域越界时返回 0。
func colorConfidence(src, needle gocv.Mat, at image.Point) float64 {
	area := image.Rect(at.X, at.Y, at.X+needle.Cols(), at.Y+needle.Rows())
	if !area.In(image.Rect(0, 0, src.Cols(), src.Rows())) {
		return 0
	}
	crop := src.Region(area)
	defer crop.Close()

	hay := splitClamped(crop)
	ref := splitClamped(needle)
	defer closeAll(hay)
	defer closeAll(ref)

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	worst := 1.0
	for i := 0; i < len(hay) && i < len(ref); i++ {
		// 同尺寸匹配，结果矩阵只有一个元素
		gocv.MatchTemplate(hay[i], ref[i], &result, gocv.TmCcoeffNormed, mask)
		_, score, _, _ := gocv.MinMaxLoc(result)
		s := float64(score)
		if math.IsNaN(s) {
			s = 0
		}
		worst = math.Min(worst, s)
	}
	return worst
}

func splitClamped(m gocv.Mat) []gocv.Mat {
	clamped := gocv.NewMat()
	defer clamped.Close()
	gocv.Threshold(m, &clamped, colorCeil, colorCeil, gocv.ThresholdTrunc)
	gocv.Threshold(clamped, &clamped, colorFloor, 0, gocv.ThresholdToZero)
	return gocv.Split(clamped)
}

func closeAll(ms []gocv.Mat) {
	for _, m := range ms {
		m.Close()
	}
}
