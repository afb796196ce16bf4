package wm

// Run drives the main event loop until a quit command or a lost server
// connection. Events deferred during pointer drags are replayed before new
// ones are read.
func (wm *WM) Run() error {
	wm.running = true
	for wm.running {
		if len(wm.deferred) > 0 {
			wm.pending = append(wm.pending, wm.deferred...)
			wm.deferred = wm.deferred[:0]
		}
		var ev Event
		if len(wm.pending) > 0 {
			ev = wm.pending[0]
			wm.pending = wm.pending[1:]
		} else {
			var err error
			ev, err = wm.backend.WaitEvent()
			if err != nil {
				return err
			}
		}
		if err := wm.handle(ev); err != nil {
			return err
		}
	}
	return nil
}

func (wm *WM) handle(ev Event) error {
	switch ev := ev.(type) {
	case MapRequestEvent:
		wm.handleMapRequest(ev)
	case ConfigureRequestEvent:
		wm.handleConfigureRequest(ev)
	case RootGeometryEvent:
		wm.handleRootGeometry(ev)
	case DestroyEvent:
		if ci := wm.winToClient(ev.Window); ci != nilIdx {
			wm.unmanage(ci, true)
		}
	case UnmapEvent:
		if ci := wm.winToClient(ev.Window); ci != nilIdx {
			if ev.Synthetic {
				wm.backend.SetWithdrawn(ev.Window)
			} else {
				wm.unmanage(ci, false)
			}
		}
	case EnterEvent:
		wm.handleEnter(ev)
	case ExposeEvent:
		wm.handleExpose(ev)
	case FocusInEvent:
		// Some clients grab focus on their own; pull it back.
		if sel := wm.monitors[wm.selMon].Sel; sel != nilIdx && ev.Window != wm.client(sel).Win {
			wm.setFocus(sel)
		}
	case KeyPressEvent:
		clean := wm.backend.CleanMask(ev.State)
		for _, kb := range wm.keys[wm.currentMode()] {
			if kb.Stroke.Matches(ev.Keycode, clean) {
				return wm.runAction(kb.Action, kb.Arg)
			}
		}
	case ButtonPressEvent:
		return wm.handleButtonPress(ev)
	case MotionEvent:
		wm.handleRootMotion(ev)
	case PropertyEvent:
		wm.handleProperty(ev)
	case FullscreenRequestEvent:
		if ci := wm.winToClient(ev.Window); ci != nilIdx {
			c := wm.client(ci)
			wm.setFullscreen(ci, ev.Action == 1 || (ev.Action == 2 && !c.IsFullscreen))
		}
	case ActivateRequestEvent:
		if ci := wm.winToClient(ev.Window); ci != nilIdx {
			if ci != wm.monitors[wm.selMon].Sel && !wm.client(ci).IsUrgent {
				wm.setUrgent(ci, true)
				wm.drawBars()
			}
		}
	case CommandEvent:
		wm.handleCommand(ev)
	case MappingEvent:
		if ev.Keyboard {
			wm.grabKeys()
		}
	}
	return nil
}

func (wm *WM) handleMapRequest(ev MapRequestEvent) {
	attr, err := wm.backend.Attributes(ev.Window)
	if err != nil || attr.OverrideRedirect {
		return
	}
	if wm.winToClient(ev.Window) == nilIdx {
		wm.manage(ev.Window, attr)
	}
}

// handleConfigureRequest honors geometry wishes from floating clients,
// clamping them back on screen; tiled clients only get a synthetic
// ConfigureNotify restating their actual geometry.
func (wm *WM) handleConfigureRequest(ev ConfigureRequestEvent) {
	ci := wm.winToClient(ev.Window)
	if ci == nilIdx {
		wm.backend.PassthroughConfigure(ev)
		wm.backend.Sync()
		return
	}
	c := wm.client(ci)
	switch {
	case ev.Mask&CfgBorderWidth != 0:
		c.BorderWidth = ev.BorderWidth
	case c.IsFloating:
		m := &wm.monitors[c.Monitor]
		if ev.Mask&CfgX != 0 {
			c.OldGeom.X = c.Geom.X
			c.Geom.X = m.Screen.X + ev.X
		}
		if ev.Mask&CfgY != 0 {
			c.OldGeom.Y = c.Geom.Y
			c.Geom.Y = m.Screen.Y + ev.Y
		}
		if ev.Mask&CfgWidth != 0 {
			c.OldGeom.Width = c.Geom.Width
			c.Geom.Width = ev.Width
		}
		if ev.Mask&CfgHeight != 0 {
			c.OldGeom.Height = c.Geom.Height
			c.Geom.Height = ev.Height
		}
		if c.Geom.X+c.Geom.Width > m.Screen.X+m.Screen.Width {
			c.Geom.X = m.Screen.X + m.Screen.Width/2 - wm.gappedWidth(c)/2
		}
		if c.Geom.Y+c.Geom.Height > m.Screen.Y+m.Screen.Height {
			c.Geom.Y = m.Screen.Y + m.Screen.Height/2 - wm.gappedHeight(c)/2
		}
		if ev.Mask&(CfgX|CfgY) != 0 && ev.Mask&(CfgWidth|CfgHeight) == 0 {
			wm.backend.NotifyConfigure(c.Win, c.Geom, c.BorderWidth)
		}
		if wm.isVisible(ci) {
			wm.backend.Configure(c.Win, c.Geom, c.BorderWidth)
		}
	default:
		wm.backend.NotifyConfigure(c.Win, c.Geom, c.BorderWidth)
	}
	wm.backend.Sync()
}

// handleRootGeometry reacts to the virtual screen changing size: monitors
// are re-detected, bars rebuilt, and fullscreen clients restretched.
func (wm *WM) handleRootGeometry(ev RootGeometryEvent) {
	dirty := ev.Width != wm.screenW || ev.Height != wm.screenH
	wm.screenW = ev.Width
	wm.screenH = ev.Height
	if !wm.updateGeometry() && !dirty {
		return
	}
	if err := wm.updateBars(); err != nil {
		wm.log.Error().Err(err).Msg("rebuilding bars")
	}
	for mi := range wm.monitors {
		m := &wm.monitors[mi]
		if !m.Valid {
			continue
		}
		for ci := m.Clients; ci != nilIdx; ci = wm.client(ci).nextManaged {
			if wm.client(ci).IsFullscreen {
				wm.resizeClient(ci, m.Screen.X, m.Screen.Y, m.Screen.Width, m.Screen.Height)
			}
		}
	}
	wm.focus(nilIdx)
	wm.arrangeAll()
}

func (wm *WM) handleEnter(ev EnterEvent) {
	ci := wm.winToClient(ev.Window)
	mi := wm.selMon
	if ci != nilIdx {
		mi = wm.client(ci).Monitor
	} else {
		mi = wm.winToMonitor(ev.Window, ev.Root)
	}
	if mi != wm.selMon {
		wm.unfocus(wm.monitors[wm.selMon].Sel, true)
		wm.selMon = mi
	} else if ci != nilIdx && ci != wm.monitors[wm.selMon].Sel {
		wm.focus(ci)
	}
}

func (wm *WM) handleExpose(ev ExposeEvent) {
	if ev.Count == 0 {
		wm.drawBar(wm.winToMonitor(ev.Window, false))
	}
}

// handleRootMotion follows the pointer across monitor boundaries.
func (wm *WM) handleRootMotion(ev MotionEvent) {
	if !ev.Root {
		return
	}
	mi := wm.rectToMonitor(Rect{X: ev.RootX, Y: ev.RootY, Width: 1, Height: 1})
	if mi != wm.motionMon && wm.motionMon != nilIdx {
		wm.unfocus(wm.monitors[wm.selMon].Sel, true)
		wm.selMon = mi
		wm.focus(nilIdx)
	}
	wm.motionMon = mi
}

func (wm *WM) handleButtonPress(ev ButtonPressEvent) error {
	if mi := wm.winToMonitor(ev.Window, false); mi != wm.selMon {
		wm.unfocus(wm.monitors[wm.selMon].Sel, true)
		wm.selMon = mi
		wm.focus(nilIdx)
	}

	region := "root"
	var tagBits uint32
	if ev.Window == wm.monitors[wm.selMon].BarWin {
		region, tagBits = wm.barClick(wm.selMon, ev.X)
	} else if ci := wm.winToClient(ev.Window); ci != nilIdx {
		wm.focus(ci)
		wm.restack(wm.selMon)
		wm.backend.ReplayPointer()
		region = "client"
	}

	clean := wm.backend.CleanMask(ev.State)
	for _, b := range wm.buttons {
		if b.Region != region || b.Stroke.Button != ev.Button || b.Stroke.Mods != clean {
			continue
		}
		arg := b.Arg
		if region == "tagbar" && arg.Bits == 0 {
			arg.Bits = tagBits
		}
		return wm.runAction(b.Action, arg)
	}
	return nil
}

func (wm *WM) handleProperty(ev PropertyEvent) {
	if ev.Kind == PropStatus {
		wm.updateStatus()
		return
	}
	ci := wm.winToClient(ev.Window)
	if ci == nilIdx {
		return
	}
	c := wm.client(ci)
	switch ev.Kind {
	case PropTransient:
		if !c.IsFloating {
			if trans, ok := wm.backend.Transient(c.Win); ok && wm.winToClient(trans) != nilIdx {
				c.IsFloating = true
				wm.arrange(c.Monitor)
			}
		}
	case PropNormalHints:
		wm.updateSizeHints(ci)
	case PropWMHints:
		wm.updateWMHints(ci)
		wm.drawBars()
	case PropTitle:
		wm.updateTitle(ci)
		if ci == wm.monitors[c.Monitor].Sel {
			wm.drawBar(c.Monitor)
		}
	case PropWindowType:
		wm.updateWindowType(ci)
	}
}

// handleCommand executes a control command injected through the command
// window (see the ipc package).
func (wm *WM) handleCommand(ev CommandEvent) {
	switch ev.Code {
	case CmdView:
		wm.view(ev.Arg)
	case CmdToggleLayout:
		wm.toggleLayout()
	case CmdQuit:
		wm.running = false
	}
}
