package visual

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoeyai/zoeyvisual/pkg/geom"
)

// ============ 测试替身 ============

type fakeCapturer struct {
	calls []geom.Rect
	fill  color.Color
	err   error
}

func (f *fakeCapturer) Capture(r geom.Rect) (image.Image, error) {
	f.calls = append(f.calls, r)
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	fill := f.fill
	if fill == nil {
		fill = color.RGBA{R: 10, G: 20, B: 30, A: 255}
	}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.Set(x, y, fill)
		}
	}
	return img, nil
}

type fakeMonitors []geom.Rect

func (m fakeMonitors) Monitors() []geom.Rect { return m }

type pngCodec struct{}

func (pngCodec) Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pngCodec) Decode(data []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(data))
}

type brokenCodec struct{ pngCodec }

func (brokenCodec) Encode(image.Image, string) ([]byte, error) {
	return []byte("not a png"), nil
}

type fakeFinder struct {
	match   *Visual
	matches []*Visual
	err     error
}

func (f *fakeFinder) Find(where, what *Visual) (*Visual, error) {
	return f.match, f.err
}

func (f *fakeFinder) FindAll(where, what *Visual) ([]*Visual, error) {
	return f.matches, f.err
}

// ============ 变体与能力判断 ============

func TestCapabilities(t *testing.T) {
	cases := []struct {
		v         *Visual
		point     bool
		rectangle bool
		onScreen  bool
	}{
		{NewRegion(0, 0, 10, 10), false, true, true},
		{NewLocation(1, 1), true, false, true},
		{NewImage(nil), false, false, false},
		{NewScreen(0, geom.R(0, 0, 1920, 1080)), false, true, true},
		{NewMatch(geom.R(0, 0, 5, 5), 0.9, geom.Pt(2, 2)), false, true, true},
		{NewWindow(WindowInfo{Title: "记事本"}, geom.R(0, 0, 10, 10)), false, true, true},
		{NewPattern(NewImage(nil)), false, false, false},
		{NewOffset(1, 2), false, false, false},
	}
	for _, c := range cases {
		t.Run(c.v.Kind().String(), func(t *testing.T) {
			assert.Equal(t, c.point, c.v.IsPoint())
			assert.Equal(t, c.rectangle, c.v.IsRectangle())
			assert.Equal(t, c.onScreen, c.v.IsOnScreen())
			assert.True(t, c.v.IsDesktop())
			assert.False(t, c.v.IsRemote())
			assert.True(t, c.v.IsValid())
		})
	}
}

func TestKindIdentity(t *testing.T) {
	assert.True(t, NewRegion(0, 0, 1, 1).IsRegion())
	assert.True(t, NewLocation(0, 0).IsLocation())
	assert.True(t, NewImage(nil).IsImage())
	assert.True(t, NewScreen(1, geom.R(0, 0, 1, 1)).IsScreen())
	assert.True(t, NewMatch(geom.R(0, 0, 1, 1), 1, geom.Pt(0, 0)).IsMatch())
	assert.True(t, NewWindow(WindowInfo{}, geom.R(0, 0, 1, 1)).IsWindow())
	assert.True(t, NewPattern(nil).IsPattern())
	assert.True(t, NewOffset(0, 0).IsOffset())

	k, ok := ParseKind("match")
	assert.True(t, ok)
	assert.Equal(t, KindMatch, k)
	_, ok = ParseKind("VISUAL")
	assert.False(t, ok)
}

func TestRemoteValidity(t *testing.T) {
	connected := true
	s := NewRemoteScreen(0, geom.R(0, 0, 800, 600), func() bool { return connected })

	assert.True(t, s.IsRemote())
	assert.False(t, s.IsDesktop())
	assert.True(t, s.IsValid())

	connected = false
	assert.False(t, s.IsValid())
}

func TestInitClamping(t *testing.T) {
	r := NewRegion(1, 2, 0, -5)
	assert.Equal(t, 1, r.W())
	assert.Equal(t, 1, r.H())

	l := NewLocation(3, 4)
	l.Init(3, 4, -1, -1)
	assert.Equal(t, 0, l.W())
	assert.Equal(t, 0, l.H())
	assert.Equal(t, int64(0), l.Size())

	off := NewOffset(-3, 4)
	off.Init(-3, 4, -7, -8)
	assert.Equal(t, -3, off.X())
	assert.Equal(t, -7, off.W(), "Offset 不做宽高修正")

	m := NewMatch(geom.R(0, 0, 0, 0), 0.5, geom.Pt(0, 0))
	assert.Equal(t, int64(1), m.Size())

	r.InitPoint(geom.Pt(7, 8))
	assert.Equal(t, geom.R(7, 8, 1, 1), r.Rect())

	r.InitFrom(NewRegion(1, 1, 20, 30))
	assert.Equal(t, int64(600), r.Size())
}

// ============ 文本格式 ============

func TestString(t *testing.T) {
	assert.Equal(t, `["REGION", [10, 20, 30, 40]]`, NewRegion(10, 20, 30, 40).String())
	assert.Equal(t, `["LOCATION", [5, 6]]`, NewLocation(5, 6).String())
	assert.Equal(t, `["OFFSET", [-3, 2]]`, NewOffset(-3, 2).String())
	assert.Equal(t, `["MATCH", [1, 2, 3, 4], 0.9500]`, NewMatch(geom.R(1, 2, 3, 4), 0.95, geom.Pt(2, 3)).String())
	assert.Equal(t, `["SCREEN", [0, 0, 1920, 1080], 1]`, NewScreen(1, geom.R(0, 0, 1920, 1080)).String())
	assert.Equal(t, `["WINDOW", [0, 0, 10, 10], "编辑器"]`, NewWindow(WindowInfo{Title: "编辑器"}, geom.R(0, 0, 10, 10)).String())
}

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON(`["REGION", [0, 0, 1, 1]]`))
	assert.False(t, IsJSON(`REGION(0, 0)`))
	assert.False(t, IsJSON(``))
}

func TestParseRoundTrip(t *testing.T) {
	visuals := []*Visual{
		NewRegion(10, 20, 30, 40),
		NewLocation(-5, 6),
		NewOffset(3, -2),
		NewMatch(geom.R(1, 2, 3, 4), 0.8125, geom.Pt(2, 3)),
		NewScreen(2, geom.R(1920, 0, 1280, 1024)),
		NewWindow(WindowInfo{Title: `say "hi"`}, geom.R(5, 5, 50, 50)),
	}
	for _, v := range visuals {
		t.Run(v.Kind().String(), func(t *testing.T) {
			got, err := Parse(v.String())
			require.NoError(t, err)
			assert.Equal(t, v.Kind(), got.Kind())
			assert.Equal(t, v.Rect(), got.Rect())
			assert.Equal(t, v.String(), got.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("hello")
	assert.ErrorIs(t, err, ErrNotVisualText)

	var pe *ParseError
	for _, s := range []string{
		`["REGION", [1, 2]]`,
		`["LOCATION", [1, 2, 3, 4]]`,
		`["VISUAL", [1, 2]]`,
		`["REGION", "x"]`,
		`["REGION", [1, 2, "a", 4]]`,
		`["REGION", [1, 2`,
		`["REGION"]`,
		`["REGION", [1.9, 2, 3, 4]]`,
		`["OFFSET", [1, 2.5]]`,
		`["LOCATION", [1, 2], "x"]`,
	} {
		_, err := Parse(s)
		assert.True(t, errors.As(err, &pe), "期望 ParseError: %s", s)
	}

	// 整数值的浮点写法仍可接受
	v, err := Parse(`["REGION", [1.0, 2, 3, 4]]`)
	require.NoError(t, err)
	assert.Equal(t, 1, v.X())
}

// ============ 目标点 ============

func TestTargetCached(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	assert.False(t, r.HasTarget())

	first := r.Target()
	assert.Equal(t, geom.Pt(50, 25), first)
	assert.True(t, r.HasTarget())
	assert.Equal(t, first, r.Target())
}

func TestTargetWithOffsetNotCached(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	r.SetOffsetXY(10, -5)

	assert.Equal(t, geom.Pt(60, 20), r.Target())
	assert.Equal(t, geom.Pt(60, 20), r.Target(), "重复读取结果一致")
	assert.False(t, r.HasTarget(), "偏移结果不写入缓存")

	r.SetOffset(nil)
	assert.Equal(t, geom.Pt(50, 25), r.Target())
}

func TestSetOffsetInvalidatesDerivedTarget(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	r.Target()
	r.SetOffsetXY(5, 5)
	assert.Equal(t, geom.Pt(55, 30), r.Target())

	r.SetTargetXY(1, 1)
	r.SetOffsetXY(9, 9)
	assert.Equal(t, geom.Pt(1, 1), r.Target(), "显式目标点不受偏移影响")

	r.SetOffset(NewLocation(2, 3))
	require.NotNil(t, r.Offset())
	assert.True(t, r.Offset().IsOffset())
}

func TestSetTargetFromOffset(t *testing.T) {
	l := NewLocation(5, 5)
	l.SetTarget(NewOffset(3, -2))
	assert.Equal(t, geom.Pt(8, 3), l.Target())

	r := NewRegion(0, 0, 100, 50)
	r.SetTarget(NewOffset(-10, 0))
	assert.Equal(t, geom.Pt(40, 25), r.Target())
}

func TestSetTargetAbsolute(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	r.SetTarget(NewRegion(30, 40, 10, 10))
	assert.Equal(t, geom.Pt(30, 40), r.Target(), "取左上角而非中心")

	r.SetTarget(NewLocation(7, 9))
	assert.Equal(t, geom.Pt(7, 9), r.Target())

	r.ResetTarget()
	assert.Equal(t, geom.Pt(50, 25), r.Target())
}

func TestTranslateCommutesWithTarget(t *testing.T) {
	a := NewRegion(0, 0, 100, 50)
	b := NewRegion(0, 0, 100, 50)

	a.Translate(7, -3)
	afterTranslate := a.Target()

	before := b.Target()
	b.Translate(7, -3)
	assert.Equal(t, before.Add(7, -3), b.Target())
	assert.Equal(t, afterTranslate, b.Target())
}

func TestTranslateKeepsBakedOffset(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	r.SetTarget(NewOffset(10, 10))
	r.Translate(5, 5)
	assert.Equal(t, geom.Pt(65, 40), r.Target())

	r.TranslateBy(NewOffset(-5, -5))
	assert.Equal(t, geom.Pt(60, 35), r.Target())
	assert.Equal(t, geom.R(0, 0, 100, 50), r.Rect())
}

func TestAt(t *testing.T) {
	r := NewRegion(10, 10, 20, 20)
	r.Target()
	r.At(100, 200)
	assert.Equal(t, geom.R(100, 200, 20, 20), r.Rect())
	assert.Equal(t, geom.Pt(110, 210), r.Target())
}

func TestMatchTarget(t *testing.T) {
	m := NewMatch(geom.R(0, 0, 10, 10), 0.9, geom.Pt(2, 3))
	assert.Equal(t, geom.Pt(2, 3), m.Target(), "Match 目标点为定位点")
	assert.Equal(t, geom.Pt(5, 5), m.Point())
}

func TestMatchFallsBackToOwnTarget(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	assert.Equal(t, geom.Pt(50, 25), r.Match())
	assert.Equal(t, `["LOCATION", [50, 25]]`, r.TargetLocation().String())
}

func TestMatchUsesLastMatch(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	located := NewMatch(geom.R(70, 10, 10, 10), 0.93, geom.Pt(72, 12))
	f := &fakeFinder{match: located}

	m, err := r.Find(f, NewPattern(NewImage(nil)))
	require.NoError(t, err)
	assert.Same(t, located, m)
	assert.Same(t, located, r.LastMatch())
	assert.Equal(t, geom.Pt(72, 12), r.Match())
	assert.NotEqual(t, r.Target(), r.Match())
}

// ============ 方向与几何 ============

func TestDirectional(t *testing.T) {
	r := NewRegion(0, 0, 100, 50)
	assert.Equal(t, `["LOCATION", [40, 25]]`, r.Left(10).String())
	assert.Equal(t, `["LOCATION", [60, 25]]`, r.Right(10).String())
	assert.Equal(t, `["LOCATION", [50, 15]]`, r.Above(10).String())
	assert.Equal(t, `["LOCATION", [50, 35]]`, r.Below(10).String())
	assert.Equal(t, `["LOCATION", [60, 25]]`, r.Left(-10).String())
	assert.False(t, r.HasTarget(), "方向计算不影响目标点缓存")

	l := NewLocation(5, 5)
	assert.Equal(t, geom.Pt(2, 5), l.Left(3).Point())
	assert.Equal(t, geom.Pt(5, 8), l.Below(3).Point())
	assert.Equal(t, geom.Pt(6, 7), l.OffsetTo(NewOffset(1, 2)).Point())
	assert.Equal(t, geom.Pt(51, 27), r.OffsetBy(1, 2).Point())
}

func TestUnionAlwaysRegion(t *testing.T) {
	a := NewMatch(geom.R(0, 0, 10, 10), 0.9, geom.Pt(1, 1))
	b := NewScreen(0, geom.R(20, 20, 5, 5))

	u := a.Union(b)
	assert.True(t, u.IsRegion())
	assert.Equal(t, geom.R(0, 0, 25, 25), u.Rect())
	assert.Equal(t, u.Rect(), b.Union(a).Rect())
	assert.True(t, u.Contains(a))
	assert.True(t, u.Contains(b))
}

func TestContains(t *testing.T) {
	r := NewRegion(0, 0, 100, 100)

	assert.True(t, r.Contains(NewRegion(10, 10, 20, 20)))
	assert.False(t, r.Contains(NewRegion(90, 90, 20, 20)))
	assert.True(t, r.Contains(NewLocation(0, 0)))
	assert.True(t, r.Contains(NewLocation(99, 99)))
	assert.False(t, r.Contains(NewLocation(100, 50)))
	assert.False(t, r.Contains(NewOffset(1, 1)), "Offset 既非点也非矩形")
	assert.False(t, r.Contains(NewImage(nil)))

	l := NewLocation(5, 5)
	assert.False(t, l.Contains(NewLocation(5, 5)), "点类实体不包含任何东西")
	assert.False(t, NewImage(nil).Contains(NewLocation(0, 0)))
}

func TestContainingScreenNumber(t *testing.T) {
	monitors := fakeMonitors{geom.R(0, 0, 1920, 1080), geom.R(1920, 0, 1920, 1080)}

	assert.Equal(t, 0, NewLocation(10, 10).ContainingScreenNumber(monitors))
	assert.Equal(t, 1, NewRegion(2000, 5, 10, 10).ContainingScreenNumber(monitors))
	assert.Equal(t, -1, NewLocation(5000, 5000).ContainingScreenNumber(monitors))
}

func TestMarginAndGrow(t *testing.T) {
	m := DefaultMargin.With(0, -1)
	assert.Equal(t, Margin{W: 50, H: 50}, m)
	m = m.With(10, 20)
	assert.Equal(t, Margin{W: 10, H: 20}, m)

	g := NewLocation(100, 100).Grow(m)
	assert.True(t, g.IsRegion())
	assert.Equal(t, geom.R(90, 80, 20, 40), g.Rect())

	assert.Equal(t, geom.R(-5, -5, 20, 20), NewRegion(0, 0, 10, 10).GrowBy(5, 5).Rect())
}

func TestIntersection(t *testing.T) {
	a := NewRegion(0, 0, 10, 10)
	assert.Equal(t, geom.R(5, 5, 5, 5), a.Intersection(NewRegion(5, 5, 10, 10)).Rect())
	assert.Nil(t, a.Intersection(NewRegion(50, 50, 1, 1)))
}

// ============ 截图与编码 ============

func TestCaptureDesktop(t *testing.T) {
	c := &fakeCapturer{}
	r := NewRegion(0, 0, 10, 10)

	img, err := r.Capture(c)
	require.NoError(t, err)
	require.Len(t, c.calls, 1)
	assert.Equal(t, geom.R(0, 0, 10, 10), c.calls[0])
	assert.True(t, img.IsImage())
	assert.Equal(t, 10, img.W())
	assert.Equal(t, 10, img.H())
	assert.NotNil(t, img.Content())
	assert.Same(t, img, r.LastCapture())
}

func TestCaptureRemoteNotSupported(t *testing.T) {
	c := &fakeCapturer{}
	s := NewRemoteScreen(0, geom.R(0, 0, 10, 10), nil)

	_, err := s.Capture(c)
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Empty(t, c.calls, "远程实体不应调用截图服务")
	assert.Nil(t, s.LastCapture())
}

func TestCaptureErrors(t *testing.T) {
	_, err := NewImage(nil).Capture(&fakeCapturer{})
	assert.ErrorIs(t, err, ErrNotSupported)

	boom := errors.New("display lost")
	_, err = NewRegion(0, 0, 5, 5).Capture(&fakeCapturer{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestColor(t *testing.T) {
	c := &fakeCapturer{fill: color.RGBA{R: 255, A: 255}}

	col, err := NewRegion(0, 0, 10, 10).Color(c)
	require.NoError(t, err)
	r, g, b, _ := col.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, geom.R(5, 5, 1, 1), c.calls[0])

	_, err = NewOffset(1, 1).Color(c)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestImageBytesAbsentContent(t *testing.T) {
	r := NewRegion(0, 0, 10, 10)

	data, err := r.ImageBytes(pngCodec{}, "")
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)

	img, err := r.DecodedImage(pngCodec{}, FormatPNG)
	require.NoError(t, err)
	assert.True(t, img.Bounds().Empty())
}

func TestImageBytesRoundTrip(t *testing.T) {
	shot, err := NewRegion(0, 0, 4, 3).Capture(&fakeCapturer{})
	require.NoError(t, err)

	data, err := shot.ImageBytes(pngCodec{}, FormatPNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	img, err := shot.DecodedImage(pngCodec{}, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestDecodedImageError(t *testing.T) {
	shot, err := NewRegion(0, 0, 2, 2).Capture(&fakeCapturer{})
	require.NoError(t, err)

	_, err = shot.DecodedImage(brokenCodec{}, FormatPNG)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, FormatPNG, de.Format)

	_, err = NewImageBytes([]byte("garbage"), pngCodec{})
	assert.ErrorAs(t, err, &de)
}

func TestPatternFromImage(t *testing.T) {
	img, err := NewImageBytes(mustPNG(t, 8, 6), pngCodec{})
	require.NoError(t, err)

	p := NewPattern(img)
	assert.Equal(t, geom.R(0, 0, 8, 6), p.Rect())
	assert.Same(t, img, p.Image())
	assert.Equal(t, DefaultSimilarity, p.Similarity())
	p.Similar(0.95)
	assert.Equal(t, 0.95, p.Similarity())
	p.Similar(3)
	assert.Equal(t, 0.95, p.Similarity())
}

func mustPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	data, err := pngCodec{}.Encode(image.NewRGBA(image.Rect(0, 0, w, h)), FormatPNG)
	require.NoError(t, err)
	return data
}

// ============ 查找 ============

func TestFindNotFound(t *testing.T) {
	r := NewRegion(0, 0, 100, 100)
	r.Find(&fakeFinder{match: NewMatch(geom.R(0, 0, 1, 1), 1, geom.Pt(0, 0))}, NewPattern(nil))
	require.NotNil(t, r.LastMatch())

	_, err := r.Find(&fakeFinder{}, NewPattern(nil))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, r.LastMatch())
	assert.False(t, r.Exists(&fakeFinder{}, NewPattern(nil)))
}

func TestFindOnInvalidSurface(t *testing.T) {
	s := NewRemoteScreen(0, geom.R(0, 0, 10, 10), func() bool { return false })
	_, err := s.Find(&fakeFinder{}, NewPattern(nil))
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestFindAll(t *testing.T) {
	a := NewMatch(geom.R(0, 0, 5, 5), 0.81, geom.Pt(2, 2))
	b := NewMatch(geom.R(10, 0, 5, 5), 0.97, geom.Pt(12, 2))
	c := NewMatch(geom.R(20, 0, 5, 5), 0.90, geom.Pt(22, 2))

	r := NewRegion(0, 0, 100, 100)
	got, err := r.FindAll(&fakeFinder{matches: []*Visual{a, b, c}}, NewPattern(nil))
	require.NoError(t, err)
	assert.Equal(t, []*Visual{a, b, c}, got)
	assert.Equal(t, []*Visual{a, b, c}, r.LastMatches(), "保持发现顺序")
	assert.Same(t, b, r.LastMatch())
	assert.Equal(t, geom.Pt(12, 2), r.Match())

	_, err = r.FindAll(&fakeFinder{err: errors.New("boom")}, NewPattern(nil))
	assert.Error(t, err)
	assert.Empty(t, r.LastMatches())
}

// ============ 未实现的操作 ============

func TestUnsupportedOperations(t *testing.T) {
	r := NewRegion(0, 0, 10, 10)

	assert.ErrorIs(t, r.Show(time.Second), ErrNotSupported)
	assert.ErrorIs(t, r.Write("abc"), ErrNotSupported)
	assert.ErrorIs(t, r.Paste("abc"), ErrNotSupported)
	assert.ErrorIs(t, r.StopObserver(""), ErrNotSupported)

	_, err := r.WaitFor(NewPattern(nil), time.Second)
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = r.WaitVanish(NewPattern(nil), time.Second)
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestWait(t *testing.T) {
	start := time.Now()
	NewRegion(0, 0, 1, 1).Wait(20 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFindTypeString(t *testing.T) {
	assert.Equal(t, "ONE", FindTypeOne.String())
	assert.Equal(t, "BEST", FindTypeBest.String())
	assert.Equal(t, "VISUAL", Kind(99).String())
}

func TestParseFindType(t *testing.T) {
	ft, ok := ParseFindType(" best ")
	require.True(t, ok)
	assert.Equal(t, FindTypeBest, ft)

	_, ok = ParseFindType("some")
	assert.False(t, ok)
	assert.Equal(t, "UNKNOWN", FindType(42).String())
}

func TestFindBy(t *testing.T) {
	where := NewRegion(0, 0, 200, 200)
	what := NewImage(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	low := NewMatch(geom.Rect{X: 0, Y: 0, Width: 4, Height: 4}, 0.75, geom.Point{X: 2, Y: 2})
	high := NewMatch(geom.Rect{X: 50, Y: 50, Width: 4, Height: 4}, 0.98, geom.Point{X: 52, Y: 52})
	f := &fakeFinder{match: low, matches: []*Visual{low, high}}

	got, err := where.FindBy(f, what, FindTypeOne)
	require.NoError(t, err)
	assert.Equal(t, []*Visual{low}, got)

	got, err = where.FindBy(f, what, FindTypeAll)
	require.NoError(t, err)
	assert.Equal(t, []*Visual{low, high}, got)

	got, err = where.FindBy(f, what, FindTypeBest)
	require.NoError(t, err)
	assert.Equal(t, []*Visual{high}, got)
	assert.Same(t, high, where.LastMatch())

	_, err = where.FindBy(f, what, FindTypeVanish)
	assert.ErrorIs(t, err, ErrNotSupported)

	_, err = where.FindBy(&fakeFinder{}, what, FindTypeBest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCells(t *testing.T) {
	r := NewRegion(0, 0, 300, 200)

	c, err := r.Cell(2, 3, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, `["REGION", [100, 100, 100, 100]]`, c.String())
	assert.Equal(t, geom.Point{X: 150, Y: 150}, c.Target())

	c, err = r.CellAt("2.2.1.2")
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 150, Y: 0, Width: 150, Height: 100}, c.Rect())

	_, err = r.Cell(2, 2, 3, 1)
	assert.Error(t, err)
	_, err = r.CellAt("2.2")
	assert.Error(t, err)

	cells := r.Cells(2, 2)
	require.Len(t, cells, 4)
	assert.Equal(t, geom.Rect{X: 0, Y: 100, Width: 150, Height: 100}, cells[2].Rect())
	assert.Nil(t, r.Cells(0, 2))
}
