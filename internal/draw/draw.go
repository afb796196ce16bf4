// Package draw renders the bar into an offscreen surface and paints it
// onto bar windows.
package draw

import (
	"fmt"
	"image"
	"os"

	"github.com/BurntSushi/freetype-go/freetype/truetype"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xgraphics"

	"tesswm/internal/wm"
)

// fallbackFonts is tried in order when no font path is configured.
var fallbackFonts = []string{
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// Scheme is one foreground/background pair, parsed from "#rrggbb"
// strings.
type Scheme struct {
	Fg xgraphics.BGRA
	Bg xgraphics.BGRA
}

// Drawer implements the engine's renderer on an xgraphics canvas. All
// drawing lands on the canvas; Paint copies it onto a bar window.
type Drawer struct {
	xu   *xgbutil.XUtil
	font *truetype.Font
	size float64

	fontHeight int
	schemes    map[wm.SchemeID]Scheme
	canvas     *xgraphics.Image
}

// New loads the font and builds a drawer with the given color schemes.
// An empty fontPath tries a set of common DejaVu locations.
func New(xu *xgbutil.XUtil, fontPath string, fontSize float64, schemes map[wm.SchemeID]Scheme) (*Drawer, error) {
	if fontSize <= 0 {
		fontSize = 12
	}
	font, err := loadFont(fontPath)
	if err != nil {
		return nil, err
	}
	_, height := xgraphics.TextMaxExtents(font, fontSize, "Ag|")
	if height < 1 {
		height = int(fontSize)
	}
	return &Drawer{
		xu:         xu,
		font:       font,
		size:       fontSize,
		fontHeight: height,
		schemes:    schemes,
		canvas:     xgraphics.New(xu, image.Rect(0, 0, 1, 1)),
	}, nil
}

func loadFont(path string) (*truetype.Font, error) {
	paths := fallbackFonts
	if path != "" {
		paths = []string{path}
	}
	var lastErr error
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			lastErr = err
			continue
		}
		font, err := xgraphics.ParseFont(f)
		f.Close()
		if err != nil {
			lastErr = fmt.Errorf("parsing font %s: %w", p, err)
			continue
		}
		return font, nil
	}
	return nil, fmt.Errorf("no usable font: %w", lastErr)
}

// ParseColor turns "#rrggbb" into an opaque BGRA pixel.
func ParseColor(s string) (xgraphics.BGRA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return xgraphics.BGRA{}, fmt.Errorf("bad color %q, want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return xgraphics.BGRA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return xgraphics.BGRA{B: b, G: g, R: r, A: 0xff}, nil
}

func (d *Drawer) FontHeight() int { return d.fontHeight }

// TextWidth is the rendered width of s plus one font height of cell
// padding.
func (d *Drawer) TextWidth(s string) int {
	w, _ := xgraphics.Extents(d.font, d.size, s)
	return w + d.fontHeight
}

// Resize reallocates the canvas. Existing contents are discarded.
func (d *Drawer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if d.canvas != nil {
		d.canvas.Destroy()
	}
	d.canvas = xgraphics.New(d.xu, image.Rect(0, 0, width, height))
}

func (d *Drawer) colors(scheme wm.SchemeID, invert bool) (fg, bg xgraphics.BGRA) {
	s := d.schemes[scheme]
	if invert {
		return s.Bg, s.Fg
	}
	return s.Fg, s.Bg
}

// Rect fills (or outlines) a rectangle in the scheme's foreground
// color, or the background color when invert is set.
func (d *Drawer) Rect(x, y, w, h int, scheme wm.SchemeID, filled, invert bool) {
	clr, _ := d.colors(scheme, invert)
	bounds := d.canvas.Bounds().Intersect(image.Rect(x, y, x+w, y+h))
	if bounds.Empty() {
		return
	}
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			onEdge := px == bounds.Min.X || px == bounds.Max.X-1 ||
				py == bounds.Min.Y || py == bounds.Max.Y-1
			if filled || onEdge {
				d.canvas.SetBGRA(px, py, clr)
			}
		}
	}
}

// Text fills a w×h cell with the scheme background, draws s with pad
// pixels of leading space, and returns the x just past the cell.
func (d *Drawer) Text(x, y, w, h int, scheme wm.SchemeID, pad int, s string, invert bool) int {
	fg, bg := d.colors(scheme, invert)
	d.fillRect(x, y, w, h, bg)
	ty := y + (h-d.fontHeight)/2
	if ty < y {
		ty = y
	}
	_, _, _ = d.canvas.Text(x+pad, ty, fg, d.size, d.font, s)
	return x + w
}

func (d *Drawer) fillRect(x, y, w, h int, clr xgraphics.BGRA) {
	bounds := d.canvas.Bounds().Intersect(image.Rect(x, y, x+w, y+h))
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			d.canvas.SetBGRA(px, py, clr)
		}
	}
}

// Paint copies the top-left width×height region of the canvas onto a
// bar window.
func (d *Drawer) Paint(w wm.Window, width, height int) {
	region := d.canvas.Bounds().Intersect(image.Rect(0, 0, width, height))
	if region.Empty() {
		return
	}
	sub, ok := d.canvas.SubImage(region).(*xgraphics.Image)
	if !ok {
		return
	}
	sub.XExpPaint(xproto.Window(w), 0, 0)
}
