package wm

// applySizeHints adjusts a requested geometry so the window stays reachable
// and, for floating clients, honors WM_NORMAL_HINTS (base size, aspect
// bounds, resize increments, min/max). It returns the adjusted geometry and
// whether it differs from the client's current one.
//
// interact marks geometry coming from a pointer drag; those clamp against
// the whole virtual screen instead of the client's monitor window area.
func (wm *WM) applySizeHints(c *Client, x, y, w, h int, interact bool) (int, int, int, int, bool) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if interact {
		sw, sh := wm.backend.ScreenSize()
		if x > sw {
			x = sw - wm.gappedWidth(c)
		}
		if y > sh {
			y = sh - wm.gappedHeight(c)
		}
		if x+w+2*c.BorderWidth < 0 {
			x = 0
		}
		if y+h+2*c.BorderWidth < 0 {
			y = 0
		}
	} else {
		wa := wm.monitor(c.Monitor).WinArea
		if x >= wa.X+wa.Width {
			x = wa.X + wa.Width - wm.gappedWidth(c)
		}
		if y >= wa.Y+wa.Height {
			y = wa.Y + wa.Height - wm.gappedHeight(c)
		}
		if x+w+2*c.BorderWidth <= wa.X {
			x = wa.X
		}
		if y+h+2*c.BorderWidth <= wa.Y {
			y = wa.Y
		}
	}
	if h < wm.barHeight {
		h = wm.barHeight
	}
	if w < wm.barHeight {
		w = wm.barHeight
	}
	if c.IsFloating {
		// ICCCM 4.1.2.3: a base size equal to the minimum size is not a
		// true base and must not be stripped before the aspect check.
		baseIsMin := c.BaseW == c.MinW && c.BaseH == c.MinH
		if !baseIsMin {
			w -= c.BaseW
			h -= c.BaseH
		}
		if c.MinAspect > 0 && c.MaxAspect > 0 {
			switch {
			case c.MaxAspect < float64(w)/float64(h):
				w = int(float64(h)*c.MaxAspect + 0.5)
			case c.MinAspect < float64(h)/float64(w):
				h = int(float64(w)*c.MinAspect + 0.5)
			}
		}
		if baseIsMin {
			// The increment calculation still needs base stripped.
			w -= c.BaseW
			h -= c.BaseH
		}
		if c.IncW > 0 {
			w -= w % c.IncW
		}
		if c.IncH > 0 {
			h -= h % c.IncH
		}
		w += c.BaseW
		h += c.BaseH
		if w < c.MinW {
			w = c.MinW
		}
		if h < c.MinH {
			h = c.MinH
		}
		if c.MaxW > 0 && w > c.MaxW {
			w = c.MaxW
		}
		if c.MaxH > 0 && h > c.MaxH {
			h = c.MaxH
		}
	}
	changed := x != c.Geom.X || y != c.Geom.Y || w != c.Geom.Width || h != c.Geom.Height
	return x, y, w, h, changed
}
