package wm

// manage starts managing a window: allocates its client record, places it
// on a monitor and tag set, applies the initial geometry fixups, and maps
// it.
func (wm *WM) manage(w Window, attr WindowAttributes) {
	ci := wm.clients.alloc()
	c := wm.client(ci)
	c.Win = w
	c.Geom = attr.Geometry
	c.OldGeom = attr.Geometry
	c.OldBorderWidth = attr.BorderWidth

	wm.updateTitle(ci)
	if trans, ok := wm.backend.Transient(w); ok {
		if ti := wm.winToClient(trans); ti != nilIdx {
			t := wm.client(ti)
			c.Monitor = t.Monitor
			c.Tags = t.Tags
		} else {
			c.Monitor = wm.selMon
			c.Tags = wm.clampTags(c.Tags, wm.selMon)
		}
		c.IsFloating = true
	} else {
		c.Monitor = wm.selMon
		c.Tags = wm.clampTags(c.Tags, wm.selMon)
	}

	m := &wm.monitors[c.Monitor]
	if c.Geom.X+wm.gappedWidth(c) > m.Screen.X+m.Screen.Width {
		c.Geom.X = m.Screen.X + m.Screen.Width - wm.gappedWidth(c)
	}
	if c.Geom.Y+wm.gappedHeight(c) > m.Screen.Y+m.Screen.Height {
		c.Geom.Y = m.Screen.Y + m.Screen.Height - wm.gappedHeight(c)
	}
	if c.Geom.X < m.Screen.X {
		c.Geom.X = m.Screen.X
	}
	// Keep the window below a top bar when its center is over the bar's
	// span; otherwise only keep it on screen.
	yFloor := m.Screen.Y
	center := c.Geom.X + c.Geom.Width/2
	if m.TopBar && m.ShowBar && center >= m.WinArea.X && center < m.WinArea.X+m.WinArea.Width {
		yFloor = m.WinArea.Y
	}
	if c.Geom.Y < yFloor {
		c.Geom.Y = yFloor
	}
	c.BorderWidth = wm.cfg.BorderWidth

	wm.backend.SetBorderWidth(w, c.BorderWidth)
	wm.backend.SetBorder(w, SchemeNormal)
	wm.backend.NotifyConfigure(w, c.Geom, c.BorderWidth)
	wm.updateWindowType(ci)
	wm.updateSizeHints(ci)
	wm.updateWMHints(ci)
	wm.backend.SelectClientEvents(w)
	wm.backend.GrabButtons(w, false, wm.clientButtons)

	if !c.IsFloating {
		c.IsFloating = c.IsFixed
		c.WasFloating = c.IsFloating
	}
	if c.IsFloating {
		wm.backend.Raise(w)
	}

	wm.attach(ci)
	wm.attachStack(ci)
	wm.backend.AppendClientList(w)

	// Park the window off screen until arrange places it; some clients
	// need a real configure before their first map.
	sw, _ := wm.backend.ScreenSize()
	wm.backend.Configure(w, Rect{X: c.Geom.X + 2*sw, Y: c.Geom.Y, Width: c.Geom.Width, Height: c.Geom.Height}, c.BorderWidth)
	wm.backend.SetNormalState(w)

	if c.Monitor == wm.selMon {
		wm.unfocus(wm.monitors[wm.selMon].Sel, false)
	}
	wm.monitors[c.Monitor].Sel = ci
	wm.arrange(c.Monitor)
	wm.backend.MapWindow(w)
	wm.focus(nilIdx)

	wm.log.Debug().
		Uint32("window", uint32(w)).
		Str("name", c.Name).
		Int("monitor", c.Monitor).
		Msg("managed client")
}

// unmanage forgets a client. destroyed marks windows that are already gone
// on the server, in which case no cleanup requests are sent.
func (wm *WM) unmanage(ci int, destroyed bool) {
	c := wm.client(ci)
	mi := c.Monitor
	w := c.Win

	wm.detach(ci)
	wm.detachStack(ci)
	if !destroyed {
		wm.backend.SetBorderWidth(w, c.OldBorderWidth)
		wm.backend.SetWithdrawn(w)
	}
	wm.clients.release(ci)
	wm.focus(nilIdx)
	wm.publishClientList()
	wm.arrange(mi)

	wm.log.Debug().Uint32("window", uint32(w)).Msg("unmanaged client")
}

// publishClientList rebuilds _NET_CLIENT_LIST from the managed lists.
func (wm *WM) publishClientList() {
	var ws []Window
	for mi := range wm.monitors {
		if !wm.monitors[mi].Valid {
			continue
		}
		for ci := wm.monitors[mi].Clients; ci != nilIdx; ci = wm.client(ci).nextManaged {
			ws = append(ws, wm.client(ci).Win)
		}
	}
	wm.backend.SetClientList(ws)
}

// sendToMonitor moves a client to another monitor, adopting that monitor's
// tag selection.
func (wm *WM) sendToMonitor(ci, mi int) {
	c := wm.client(ci)
	if c.Monitor == mi {
		return
	}
	wm.unfocus(ci, true)
	wm.detach(ci)
	wm.detachStack(ci)
	c.Monitor = mi
	c.Tags = wm.monitors[mi].SelTags
	wm.attach(ci)
	wm.attachStack(ci)
	wm.focus(nilIdx)
	wm.arrangeAll()
}

// setFullscreen switches a client in or out of fullscreen. Entering saves
// the floating state and border and covers the whole physical screen;
// leaving restores the saved geometry.
func (wm *WM) setFullscreen(ci int, fullscreen bool) {
	c := wm.client(ci)
	switch {
	case fullscreen && !c.IsFullscreen:
		wm.backend.SetFullscreenProperty(c.Win, true)
		c.IsFullscreen = true
		c.WasFloating = c.IsFloating
		c.OldBorderWidth = c.BorderWidth
		c.BorderWidth = 0
		c.IsFloating = true
		s := wm.monitors[c.Monitor].Screen
		wm.resizeClient(ci, s.X, s.Y, s.Width, s.Height)
		wm.backend.Raise(c.Win)
	case !fullscreen && c.IsFullscreen:
		wm.backend.SetFullscreenProperty(c.Win, false)
		c.IsFullscreen = false
		c.IsFloating = c.WasFloating
		c.BorderWidth = c.OldBorderWidth
		c.Geom = c.OldGeom
		wm.resizeClient(ci, c.Geom.X, c.Geom.Y, c.Geom.Width, c.Geom.Height)
		wm.arrange(c.Monitor)
	}
}

func (wm *WM) updateTitle(ci int) {
	c := wm.client(ci)
	name, ok := wm.backend.Title(c.Win)
	if !ok || name == "" {
		name = brokenTitle
	}
	if len(name) > maxTitleLen {
		name = name[:maxTitleLen]
	}
	c.Name = name
}

// updateSizeHints refreshes the cached WM_NORMAL_HINTS fields. A client
// whose minimum equals its maximum is fixed and always floats.
func (wm *WM) updateSizeHints(ci int) {
	c := wm.client(ci)
	h, err := wm.backend.SizeHints(c.Win)
	if err != nil {
		h = SizeHints{}
	}
	c.BaseW, c.BaseH = h.BaseW, h.BaseH
	c.IncW, c.IncH = h.IncW, h.IncH
	c.MaxW, c.MaxH = h.MaxW, h.MaxH
	c.MinW, c.MinH = h.MinW, h.MinH
	c.MinAspect, c.MaxAspect = h.MinAspect, h.MaxAspect
	c.IsFixed = c.MaxW != 0 && c.MaxH != 0 && c.MaxW == c.MinW && c.MaxH == c.MinH
}

// updateWMHints refreshes urgency and input-model state. Urgency on the
// focused client is cleared at the source instead of recorded.
func (wm *WM) updateWMHints(ci int) {
	c := wm.client(ci)
	h, ok := wm.backend.WMHints(c.Win)
	if !ok {
		return
	}
	if ci == wm.monitors[wm.selMon].Sel && h.Urgent {
		wm.backend.SetUrgencyHint(c.Win, false)
	} else {
		c.IsUrgent = h.Urgent
	}
	c.NeverFocus = h.NeverFocus
}

// updateWindowType honors pre-set fullscreen state and floats dialogs.
func (wm *WM) updateWindowType(ci int) {
	c := wm.client(ci)
	if wm.backend.WantsFullscreen(c.Win) {
		wm.setFullscreen(ci, true)
	}
	if wm.backend.IsDialog(c.Win) {
		c.IsFloating = true
	}
}

// zoom promotes the selected tiled client to master. If it already is the
// master, the next tiled client is promoted instead.
func (wm *WM) zoom() {
	m := &wm.monitors[wm.selMon]
	ci := m.Sel
	if ci == nilIdx || wm.client(ci).IsFloating {
		return
	}
	if ci == wm.nextTiled(m.Clients) {
		ci = wm.nextTiled(wm.client(ci).nextManaged)
		if ci == nilIdx {
			return
		}
	}
	wm.detach(ci)
	wm.attach(ci)
	wm.focus(ci)
	wm.arrange(wm.client(ci).Monitor)
}

// toggleFloating floats or re-tiles the selected client. Fixed clients
// always float. Re-tiling saves the floating geometry; floating again
// restores it, and a client floated for the first time is centered in
// the window area.
func (wm *WM) toggleFloating() {
	m := &wm.monitors[wm.selMon]
	ci := m.Sel
	if ci == nilIdx {
		return
	}
	c := wm.client(ci)
	if c.IsFullscreen {
		return
	}
	c.IsFloating = !c.IsFloating || c.IsFixed
	if c.IsFloating {
		if c.hasFloatGeom {
			g := c.FloatGeom
			wm.resize(ci, g.X, g.Y, g.Width, g.Height, false)
		} else {
			cx := m.WinArea.X + m.WinArea.Width/2 - c.Geom.Width/2
			cy := m.WinArea.Y + m.WinArea.Height/2 - c.Geom.Height/2
			wm.resize(ci, cx, cy, c.Geom.Width, c.Geom.Height, false)
		}
	} else {
		c.FloatGeom = c.Geom
		c.hasFloatGeom = true
	}
	wm.arrange(wm.selMon)
}

// killClient asks the selected client to close, falling back to a forced
// kill when it does not speak WM_DELETE_WINDOW.
func (wm *WM) killClient() {
	ci := wm.monitors[wm.selMon].Sel
	if ci == nilIdx {
		return
	}
	w := wm.client(ci).Win
	if !wm.backend.CloseGently(w) {
		wm.backend.Kill(w)
	}
}
