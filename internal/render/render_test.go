package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/arran4/event-barcodes/internal/domain"
	"github.com/arran4/event-barcodes/internal/encoder"
)

func luma(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (r + g + b) / 3 >> 8
}

func alpha(c color.Color) uint32 {
	_, _, _, a := c.RGBA()
	return a >> 8
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func fullMatrix(n int) *encoder.Matrix {
	m := encoder.NewMatrix(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			m.Set(r, c, true)
		}
	}
	return m
}

func TestIsPositionMarker(t *testing.T) {
	const n = 21
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{1, 1, true},
		{6, 6, true},
		{2, 2, false},
		{3, 3, false},
		{4, 4, false},
		{7, 7, false},
		{0, 14, true},
		{0, 13, false},
		{3, 17, false},
		{6, 20, true},
		{14, 0, true},
		{17, 3, false},
		{20, 6, true},
		{20, 20, false},
		{10, 10, false},
	}
	for _, c := range cases {
		if got := IsPositionMarker(c.row, c.col, n); got != c.want {
			t.Errorf("IsPositionMarker(%d, %d, %d) = %v, want %v", c.row, c.col, n, got, c.want)
		}
	}

	count := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if IsPositionMarker(r, c, n) {
				count++
			}
		}
	}
	if count != 3*(49-9) {
		t.Fatalf("expected 120 marker modules, got %d", count)
	}
}

func TestDrawModules(t *testing.T) {
	style := DefaultStyle()
	img := DrawModules(fullMatrix(21), style)

	if got := img.Bounds().Dx(); got != (21+8)*10 {
		t.Fatalf("unexpected side %d", got)
	}
	if luma(img.At(5, 5)) < 250 {
		t.Errorf("quiet zone should be white")
	}
	if luma(img.At(45, 45)) > 5 {
		t.Errorf("module center should be black")
	}
	if luma(img.At(40, 40)) < 128 {
		t.Errorf("rounded marker corner should be mostly white, got %d", luma(img.At(40, 40)))
	}
	if luma(img.At(140, 140)) > 5 {
		t.Errorf("data module corner should be square and black")
	}

	style.RoundMarkers = false
	square := DrawModules(fullMatrix(21), style)
	if luma(square.At(40, 40)) > 5 {
		t.Errorf("square marker corner should be black")
	}
}

func TestRoundCorners(t *testing.T) {
	src := solid(100, 100, color.Black)

	out := RoundCorners(src, 20)
	if alpha(out.At(0, 0)) != 0 {
		t.Errorf("corner should be transparent, alpha=%d", alpha(out.At(0, 0)))
	}
	if alpha(out.At(50, 50)) != 255 || luma(out.At(50, 50)) != 0 {
		t.Errorf("center should stay opaque black")
	}
	if RoundCorners(src, 0) != image.Image(src) {
		t.Errorf("zero radius should return the input")
	}
}

func TestOverlayLogo(t *testing.T) {
	src := solid(200, 200, color.Black)
	logo := solid(50, 30, color.RGBA{R: 255, A: 255})

	out := OverlayLogo(src, logo, 0.25)
	r, g, b, _ := out.At(100, 100).RGBA()
	if r>>8 < 250 || g>>8 > 5 || b>>8 > 5 {
		t.Errorf("center should show the logo, got %v", out.At(100, 100))
	}
	// d=50, ring extends 4px past the logo edge.
	if luma(out.At(100+27, 100)) < 250 {
		t.Errorf("padding ring should be white")
	}
	if luma(out.At(5, 5)) != 0 {
		t.Errorf("outside the logo should stay black")
	}

	if OverlayLogo(src, nil, 0.25) != image.Image(src) {
		t.Errorf("nil logo should return the input")
	}
}

func TestAddCaption(t *testing.T) {
	faces, err := NewFaces()
	if err != nil {
		t.Fatalf("NewFaces: %v", err)
	}
	cs := CaptionStyle{Enabled: true, Height: 60, FontSize: 24, SecondaryFontSize: 16, Heavy: true}

	src := RoundCorners(solid(200, 200, color.Black), 30)
	out, err := AddCaption(src, []string{"085f", "Team A", "dropped"}, cs, faces)
	if err != nil {
		t.Fatalf("AddCaption: %v", err)
	}
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 260 {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if alpha(out.At(0, 0)) != 255 || luma(out.At(0, 0)) < 250 {
		t.Errorf("transparent corner should be flattened to white")
	}

	dark := 0
	for y := 200; y < 260; y++ {
		for x := 0; x < 200; x++ {
			if luma(out.At(x, y)) < 64 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Errorf("expected caption text in the band")
	}

	same, err := AddCaption(src, nil, cs, faces)
	if err != nil {
		t.Fatalf("AddCaption without lines: %v", err)
	}
	if same != src {
		t.Errorf("no lines should return the input")
	}
}

func TestAddCaptionShrinksLongText(t *testing.T) {
	faces, err := NewFaces()
	if err != nil {
		t.Fatalf("NewFaces: %v", err)
	}
	cs := CaptionStyle{Enabled: true, Height: 60, FontSize: 48, SecondaryFontSize: 32}
	out, err := AddCaption(solid(300, 120, color.White), []string{"Battle of the Bands"}, cs, faces)
	if err != nil {
		t.Fatalf("AddCaption: %v", err)
	}
	dark := 0
	for y := 120; y < 180; y++ {
		// Text must stay clear of the left and right edges.
		if luma(out.At(0, y)) < 128 || luma(out.At(299, y)) < 128 {
			t.Fatalf("caption touches the edge at row %d", y)
		}
		for x := 0; x < 300; x++ {
			if luma(out.At(x, y)) < 64 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatalf("expected shrunk caption text")
	}
}

func TestCompose(t *testing.T) {
	enc, err := encoder.New("boombuler")
	if err != nil {
		t.Fatalf("encoder: %v", err)
	}
	m, err := enc.Encode("https://apexgne.vercel.app/clubdashboard?student_id=085f", encoder.LevelH)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	r, err := NewRenderer(DefaultStyle())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	img, err := r.Compose(m, solid(64, 64, color.RGBA{B: 255, A: 255}), []string{"085f"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if img.Bounds().Dx() != 1000 || img.Bounds().Dy() != 1120 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	plain := DefaultStyle()
	plain.Caption.Enabled = false
	plain.CornerRadius = 0
	r, err = NewRenderer(plain)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	img, err = r.Compose(m, nil, []string{"ignored"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if img.Bounds().Dy() != 1000 {
		t.Fatalf("captions disabled should keep a square image, got %v", img.Bounds())
	}

	if _, err := r.Compose(encoder.NewMatrix(0), nil, nil); !domain.IsKind(err, domain.KindRender) {
		t.Fatalf("expected render error for empty matrix, got %v", err)
	}
}

func TestComposeNativeSize(t *testing.T) {
	const n = 21
	m := encoder.NewMatrix(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			m.Set(r, c, (r+c)%2 == 0)
		}
	}

	style := DefaultStyle()
	style.Size = 0
	style.RoundMarkers = false
	style.CornerRadius = 0
	style.Caption.Enabled = false
	r, err := NewRenderer(style)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	img, err := r.Compose(m, nil, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	want := (n + 2*style.BorderModules) * style.ModulePixels
	if b := img.Bounds(); b.Dx() != want || b.Dy() != want {
		t.Fatalf("expected %dx%d, got %v", want, want, b)
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v := luma(img.At(x, y)); v != 0 && v != 255 {
				t.Fatalf("resampled pixel %v at (%d,%d)", img.At(x, y), x, y)
			}
		}
	}
}

func TestStyleValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Style)
	}{
		{"tiny", func(s *Style) { s.Size = 10 }},
		{"no module pixels", func(s *Style) { s.ModulePixels = 0 }},
		{"negative border", func(s *Style) { s.BorderModules = -1 }},
		{"marker radius", func(s *Style) { s.MarkerRadius = 0.9 }},
		{"corner radius", func(s *Style) { s.CornerRadius = 600 }},
		{"logo scale", func(s *Style) { s.LogoScale = 0.5 }},
		{"caption height", func(s *Style) { s.Caption.Height = 0 }},
	}
	if err := DefaultStyle().Validate(); err != nil {
		t.Fatalf("default style invalid: %v", err)
	}
	native := DefaultStyle()
	native.Size = 0
	if err := native.Validate(); err != nil {
		t.Fatalf("size 0 should be valid: %v", err)
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultStyle()
			c.mutate(&s)
			if err := s.Validate(); !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected invalid_config, got %v", err)
			}
		})
	}
}
