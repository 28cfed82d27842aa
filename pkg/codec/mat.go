package codec

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrUnsupportedPixelFormat 无法转换为 Mat 的像素格式
var ErrUnsupportedPixelFormat = errors.New("不支持的像素格式")

// ToMat 将像素缓冲转换为 BGR Mat（灰度图为单通道）。
// 不支持的像素格式记录错误日志并返回空 Mat 与 ErrUnsupportedPixelFormat。
func ToMat(img image.Image) (gocv.Mat, error) {
	switch src := img.(type) {
	case *image.RGBA, *image.NRGBA:
		log.Debug("ToMat: %T (%dx%d)", img, src.Bounds().Dx(), src.Bounds().Dy())
		mat, err := gocv.ImageToMatRGB(img)
		if err != nil {
			return gocv.NewMat(), fmt.Errorf("图像转换失败: %w", err)
		}
		return mat, nil
	case *image.Gray:
		mat, err := gocv.ImageGrayToMatGray(src)
		if err != nil {
			return gocv.NewMat(), fmt.Errorf("图像转换失败: %w", err)
		}
		return mat, nil
	case nil:
		return gocv.NewMat(), nil
	default:
		b := img.Bounds()
		log.Error("ToMat: 不支持的像素格式 %T (%dx%d)", img, b.Dx(), b.Dy())
		return gocv.NewMat(), fmt.Errorf("%w: %T", ErrUnsupportedPixelFormat, img)
	}
}

// Gocv 基于 OpenCV imencode/imdecode 的编解码器
type Gocv struct{}

// NewGocv 创建 gocv 编解码器
func NewGocv() *Gocv {
	return &Gocv{}
}

func fileExt(format string) (gocv.FileExt, error) {
	switch NormalizeFormat(format) {
	case "png":
		return gocv.PNGFileExt, nil
	case "jpeg":
		return gocv.JPEGFileExt, nil
	case "bmp":
		return gocv.FileExt(".bmp"), nil
	case "tiff":
		return gocv.FileExt(".tiff"), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Encode 编码为指定格式
func (g *Gocv) Encode(img image.Image, format string) ([]byte, error) {
	ext, err := fileExt(format)
	if err != nil {
		return nil, err
	}

	mat, err := ToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	if mat.Empty() {
		return []byte{}, nil
	}

	buf, err := gocv.IMEncode(ext, mat)
	if err != nil {
		return nil, fmt.Errorf("imencode 失败: %w", err)
	}
	defer buf.Close()

	// NativeByteBuffer 关闭后底层内存失效，需要复制
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// Decode 解码为图像
func (g *Gocv) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("图像数据为空")
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("imdecode 失败: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("imdecode 失败: 无法识别的图像数据 (%d bytes)", len(data))
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat 转换失败: %w", err)
	}
	return img, nil
}
