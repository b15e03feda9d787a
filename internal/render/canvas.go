package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ivlev/scalegen/internal/geometry"
)

// canvas wraps an RGBA buffer with the few primitives the scene needs:
// anti-aliased polygon fill, thick lines, rectangles and text.
type canvas struct {
	img  *image.RGBA
	w, h int
}

func newCanvas(w, h int, bg color.RGBA) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &canvas{img: img, w: w, h: h}
}

func (c *canvas) fillPolygon(pts []geometry.Point, col color.RGBA) {
	if len(pts) < 3 {
		return
	}
	z := vector.NewRasterizer(c.w, c.h)
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// line draws a segment of the given width as a filled quad.
func (c *canvas) line(x1, y1, x2, y2, width float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Half-width normal offset on each side of the segment.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2
	c.fillPolygon([]geometry.Point{
		{X: x1 + nx, Y: y1 + ny},
		{X: x2 + nx, Y: y2 + ny},
		{X: x2 - nx, Y: y2 - ny},
		{X: x1 - nx, Y: y1 - ny},
	}, col)
}

func (c *canvas) fillRect(x0, y0, x1, y1 int, col color.RGBA) {
	draw.Draw(c.img, image.Rect(x0, y0, x1, y1), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *canvas) strokeRect(x0, y0, x1, y1, width int, col color.RGBA) {
	c.fillRect(x0-width, y0-width, x1+width, y0, col)
	c.fillRect(x0-width, y1, x1+width, y1+width, col)
	c.fillRect(x0-width, y0, x0, y1, col)
	c.fillRect(x1, y0, x1+width, y1, col)
}

// text draws s with its top-left corner at (x, y).
func (c *canvas) text(x, y int, s string, face font.Face, col color.RGBA) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func textHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// loadFace builds an opentype face from embedded TTF data. Any failure
// falls back to the basic bitmap face rather than failing the task.
func loadFace(ttf []byte, size float64) font.Face {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
