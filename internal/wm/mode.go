package wm

// modeStackDepth bounds how deep modes can nest. Pushes beyond the limit
// are ignored rather than clobbering the stack.
const modeStackDepth = 8

// currentMode is the mode whose keybinding table is active.
func (wm *WM) currentMode() int {
	return wm.modeStack[wm.modeTop]
}

// pushMode activates a mode's keybinding table on top of the stack.
func (wm *WM) pushMode(mode int) {
	if wm.modeTop+1 >= modeStackDepth {
		return
	}
	wm.modeTop++
	wm.modeStack[wm.modeTop] = mode
	wm.grabKeys()
	wm.arrange(wm.selMon)
}

// popMode returns to the previously active mode. Popping the base mode is
// a no-op.
func (wm *WM) popMode() {
	if wm.modeTop == 0 {
		return
	}
	wm.modeTop--
	wm.grabKeys()
	wm.drawBars()
}

// resetMode drops straight back to the base mode.
func (wm *WM) resetMode() {
	if wm.modeTop == 0 {
		return
	}
	wm.modeTop = 0
	wm.grabKeys()
	wm.drawBars()
}

// grabKeys re-registers the key grabs for the active mode's table only, so
// keys bound in other modes pass through to clients.
func (wm *WM) grabKeys() {
	table := wm.keys[wm.currentMode()]
	strokes := make([]Keystroke, 0, len(table))
	for i := range table {
		strokes = append(strokes, table[i].Stroke)
	}
	wm.backend.GrabKeys(strokes)
}
