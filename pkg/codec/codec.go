// Package codec 提供图像编解码：Go 原生编解码（png/jpeg/bmp/tiff，可解码 webp）
// 以及基于 OpenCV 的 gocv 编解码。两者都实现 visual.Codec。
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/zoeyai/zoeyvisual/internal/logger"
	"github.com/zoeyai/zoeyvisual/pkg/visual"
)

var log = logger.Named("SX.Codec")

// ErrUnsupportedFormat 不支持的编码格式
var ErrUnsupportedFormat = errors.New("不支持的图像格式")

// NormalizeFormat 规范化格式名："PNG"、".png" 均为 "png"，"jpg" 归为 "jpeg"
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "":
		return visual.FormatPNG
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return f
}

// Std Go 原生编解码器
type Std struct {
	// Quality JPEG 质量 1-100，默认 80
	Quality int
}

// NewStd 创建 Go 原生编解码器
func NewStd() *Std {
	return &Std{Quality: 80}
}

// Encode 编码为指定格式
func (s *Std) Encode(img image.Image, format string) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("图像为空")
	}

	quality := s.Quality
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	var buf bytes.Buffer
	var err error
	switch NormalizeFormat(format) {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s 编码失败: %w", NormalizeFormat(format), err)
	}
	return buf.Bytes(), nil
}

// Decode 自动识别格式解码
func (s *Std) Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码失败 (%d bytes): %w", len(data), err)
	}
	log.Debug("Decode: %s %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// LoadImage 读取图像文件为 Image 实体
func LoadImage(path string, dec visual.Decoder) (*visual.Visual, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取图像文件失败: %w", err)
	}
	img, err := visual.NewImageBytes(data, dec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	img.SetSource(path)
	return img, nil
}

// SaveImage 将实体的像素缓冲按扩展名对应格式写入文件
func SaveImage(v *visual.Visual, path string, enc visual.Encoder) error {
	format := NormalizeFormat(filepath.Ext(path))
	data, err := v.ImageBytes(enc, format)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s 没有像素数据", v)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入图像文件失败: %w", err)
	}
	return nil
}
