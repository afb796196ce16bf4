package wm

// The bar shows, left to right: the occupied and selected tags, the active
// mode name (or the focused client's title), and on the selected monitor
// the status text. Status segments are separated by control characters so
// clicks can be mapped back to a segment signal.

// drawBar repaints one monitor's bar into the shared renderer buffer and
// maps it onto the bar window.
func (wm *WM) drawBar(mi int) {
	m := &wm.monitors[mi]
	if !m.ShowBar || m.BarWin == None {
		return
	}
	bh := wm.barHeight
	underline := bh / 10
	textH := bh - underline
	ww := m.WinArea.Width

	wm.renderer.Rect(0, 0, ww, bh, SchemeNormal, true, true)

	// Status first so the tags can overdraw a too-long status.
	statusW := 0
	if mi == wm.selMon {
		statusW = wm.renderer.TextWidth(wm.statusText) - wm.lrPad + 2
		wm.renderer.Text(ww-statusW, 0, statusW, textH, SchemeNormal, 0, wm.statusText, false)
	}

	var occupied, urgent uint32
	for ci := m.Clients; ci != nilIdx; ci = wm.client(ci).nextManaged {
		c := wm.client(ci)
		occupied |= c.Tags
		if c.IsUrgent {
			urgent |= c.Tags
		}
	}

	x := 0
	for i, tag := range wm.cfg.Tags {
		mask := uint32(1) << i
		selected := m.SelTags&mask != 0
		if occupied&mask == 0 && !selected {
			continue
		}
		tw := wm.renderer.TextWidth(tag)
		scheme := SchemeNormal
		if selected {
			scheme = SchemeSelected
		}
		wm.renderer.Text(x, 0, tw, textH, scheme, wm.lrPad/2, tag, urgent&mask != 0)
		if selected {
			wm.renderer.Rect(x, bh-underline, tw, underline, SchemeMode, true, false)
		}
		x += tw
	}

	if w := ww - statusW - x; w > bh {
		if mode := wm.currentMode(); mode != 0 {
			name := wm.cfg.Modes[mode-1]
			wm.renderer.Text(x, 0, w, textH, SchemeMode, wm.lrPad/2, name, false)
		} else if m.Sel != nilIdx {
			c := wm.client(m.Sel)
			wm.renderer.Text(x, 0, w, textH, SchemeNormal, wm.lrPad/2, c.Name, false)
			if c.IsFloating {
				boxW := wm.renderer.FontHeight()/6 + 2
				boxS := wm.renderer.FontHeight() / 9
				wm.renderer.Rect(x+boxS, boxS, boxW, boxW, SchemeNormal, c.IsFixed, false)
			}
		}
	}

	wm.renderer.Paint(m.BarWin, ww, bh)
}

func (wm *WM) drawBars() {
	for mi := range wm.monitors {
		if wm.monitors[mi].Valid {
			wm.drawBar(mi)
		}
	}
}

// updateBars creates bar windows for monitors that lack one and resizes
// the render buffer to the widest bar.
func (wm *WM) updateBars() error {
	widest := 0
	for mi := range wm.monitors {
		m := &wm.monitors[mi]
		if !m.Valid {
			continue
		}
		if m.WinArea.Width > widest {
			widest = m.WinArea.Width
		}
		if m.BarWin != None {
			wm.backend.MoveResizeBar(m.BarWin, Rect{X: m.WinArea.X, Y: m.BarY, Width: m.WinArea.Width, Height: wm.barHeight})
			continue
		}
		win, err := wm.backend.CreateBar(Rect{X: m.WinArea.X, Y: m.BarY, Width: m.WinArea.Width, Height: wm.barHeight})
		if err != nil {
			return err
		}
		m.BarWin = win
	}
	wm.renderer.Resize(widest, wm.barHeight)
	return nil
}

// updateStatus re-reads the status text from the root window name.
func (wm *WM) updateStatus() {
	text, ok := wm.backend.RootName()
	if !ok || text == "" {
		text = "tesswm-" + Version
	}
	wm.statusText = text
	wm.drawBar(wm.selMon)
}

// statusSegment maps a click x offset inside the status area to the
// segment's signal number. Segments are delimited by bytes below 0x20;
// the delimiter value is the signal for the text that follows it.
func statusSegment(status string, clickX, startX int, width func(string) int, pad int) int {
	sig := 0
	x := startX
	seg := 0
	for i := 0; i < len(status); i++ {
		if status[i] >= ' ' {
			continue
		}
		x += width(status[seg:i]) - pad
		if x >= clickX {
			break
		}
		sig = int(status[i])
		seg = i + 1
	}
	return sig
}

// barClick classifies a press on the bar into a region and, for the tag
// bar, the clicked tag's bit.
func (wm *WM) barClick(mi, clickX int) (region string, tagBits uint32) {
	m := &wm.monitors[mi]

	var occupied uint32
	for ci := m.Clients; ci != nilIdx; ci = wm.client(ci).nextManaged {
		occupied |= wm.client(ci).Tags
	}

	x := 0
	for i, tag := range wm.cfg.Tags {
		mask := uint32(1) << i
		if occupied&mask == 0 && m.SelTags&mask == 0 {
			continue
		}
		x += wm.renderer.TextWidth(tag)
		if clickX < x {
			return "tagbar", mask
		}
	}

	statusW := wm.renderer.TextWidth(wm.statusText) - wm.lrPad + 2
	if clickX > m.WinArea.Width-statusW {
		wm.statusSig = statusSegment(wm.statusText, clickX, m.WinArea.Width-statusW, wm.renderer.TextWidth, wm.lrPad)
		return "status", 0
	}
	return "title", 0
}
