package search

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoeyai/zoeyvisual/pkg/codec"
)

func TestColorConfidence(t *testing.T) {
	scene := noise(60, 40, 21)
	src, err := codec.ToMat(scene)
	require.NoError(t, err)
	defer src.Close()
	needle, err := codec.ToMat(crop(scene, image.Rect(10, 5, 30, 20)))
	require.NoError(t, err)
	defer needle.Close()

	assert.Greater(t, colorConfidence(src, needle, image.Pt(10, 5)), 0.99)
	assert.Less(t, colorConfidence(src, needle, image.Pt(30, 20)), 0.5)

	// 区域超出源图
	assert.Equal(t, 0.0, colorConfidence(src, needle, image.Pt(45, 30)))
}
