package wm

// setFocus gives a client input focus, honoring globally active input
// models via WM_TAKE_FOCUS.
func (wm *WM) setFocus(ci int) {
	c := wm.client(ci)
	if !c.NeverFocus {
		wm.backend.SetInputFocus(c.Win)
		wm.backend.SetActiveWindow(c.Win)
	}
	wm.backend.TakeFocus(c.Win)
}

// unfocus demotes a client to the unfocused border and button grabs.
// setFocus additionally returns input focus to the root.
func (wm *WM) unfocus(ci int, setFocus bool) {
	if ci == nilIdx {
		return
	}
	c := wm.client(ci)
	wm.backend.GrabButtons(c.Win, false, wm.clientButtons)
	wm.backend.SetBorder(c.Win, SchemeNormal)
	if setFocus {
		wm.backend.FocusRoot()
		wm.backend.ClearActiveWindow()
	}
}

// focus moves selection to a client, or to the first visible client on the
// selected monitor when ci is nilIdx or hidden. Focusing a client on
// another monitor switches the selected monitor.
func (wm *WM) focus(ci int) {
	if ci == nilIdx || !wm.isVisible(ci) {
		ci = nilIdx
		for i := wm.monitors[wm.selMon].Stack; i != nilIdx; i = wm.client(i).nextStack {
			if wm.isVisible(i) {
				ci = i
				break
			}
		}
	}

	if sel := wm.monitors[wm.selMon].Sel; sel != nilIdx && sel != ci {
		wm.unfocus(sel, false)
	}

	if ci != nilIdx {
		c := wm.client(ci)
		if c.Monitor != wm.selMon {
			wm.selMon = c.Monitor
		}
		if c.IsUrgent {
			wm.setUrgent(ci, false)
		}
		wm.detachStack(ci)
		wm.attachStack(ci)
		wm.backend.GrabButtons(c.Win, true, wm.clientButtons)
		wm.backend.SetBorder(c.Win, SchemeSelected)
		wm.setFocus(ci)
	} else {
		wm.backend.FocusRoot()
		wm.backend.ClearActiveWindow()
	}
	wm.monitors[wm.selMon].Sel = ci
	wm.drawBars()
}

func (wm *WM) setUrgent(ci int, urgent bool) {
	c := wm.client(ci)
	c.IsUrgent = urgent
	wm.backend.SetUrgencyHint(c.Win, urgent)
}

// selectMonitor moves selection to another monitor, refocusing there.
func (wm *WM) selectMonitor(mi int) {
	wm.unfocus(wm.monitors[wm.selMon].Sel, false)
	wm.selMon = mi
	wm.focus(nilIdx)
}

// focusMonitor shifts selection to the next (+1) or previous (-1) valid
// monitor.
func (wm *WM) focusMonitor(dir int) {
	mi := wm.dirToMonitor(dir)
	if mi == wm.selMon {
		return
	}
	wm.selectMonitor(mi)
}

// focusStack cycles selection through visible clients in managed-list
// order. Fullscreen selections do not cycle.
func (wm *WM) focusStack(dir int) {
	m := &wm.monitors[wm.selMon]
	if m.Sel == nilIdx || wm.client(m.Sel).IsFullscreen {
		return
	}
	target := nilIdx
	if dir > 0 {
		for ci := wm.client(m.Sel).nextManaged; ci != nilIdx; ci = wm.client(ci).nextManaged {
			if wm.isVisible(ci) {
				target = ci
				break
			}
		}
		if target == nilIdx {
			for ci := m.Clients; ci != nilIdx; ci = wm.client(ci).nextManaged {
				if wm.isVisible(ci) {
					target = ci
					break
				}
			}
		}
	} else {
		// Last visible client before the selection, wrapping to the
		// list tail when the selection comes first.
		for ci := m.Clients; ci != m.Sel; ci = wm.client(ci).nextManaged {
			if wm.isVisible(ci) {
				target = ci
			}
		}
		if target == nilIdx {
			for ci := m.Sel; ci != nilIdx; ci = wm.client(ci).nextManaged {
				if wm.isVisible(ci) {
					target = ci
				}
			}
		}
	}
	if target != nilIdx {
		wm.focus(target)
		wm.restack(wm.selMon)
	}
}
