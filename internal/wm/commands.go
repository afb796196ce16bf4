package wm

import (
	"fmt"

	"tesswm/internal/config"
)

// nudgeStep is how far the keyboard move/resize commands push a floating
// client per press.
const nudgeStep = 5

// KeyBinding is one resolved key table entry.
type KeyBinding struct {
	Stroke Keystroke
	Action string
	Arg    config.Arg
}

// ButtonBinding is one resolved pointer table entry, scoped to a bar
// region or client windows.
type ButtonBinding struct {
	Region string
	Stroke ButtonStroke
	Action string
	Arg    config.Arg
}

// resolveBindings turns the validated config tables into grabbed strokes.
// Key tables are grouped per mode so grabKeys can swap them wholesale.
func (wm *WM) resolveBindings() error {
	wm.keys = make([][]KeyBinding, wm.cfg.ModeCount())
	for _, k := range wm.cfg.Keys {
		stroke, err := wm.backend.ResolveKey(k.Sequence())
		if err != nil {
			return fmt.Errorf("key %q: %w", k.Sequence(), err)
		}
		mode, _ := wm.cfg.ModeIndex(k.Mode)
		wm.keys[mode] = append(wm.keys[mode], KeyBinding{Stroke: stroke, Action: k.Action, Arg: k.Arg})
	}
	for _, b := range wm.cfg.Buttons {
		stroke, err := wm.backend.ResolveButton(b.Mods, b.Button)
		if err != nil {
			return fmt.Errorf("button %d: %w", b.Button, err)
		}
		bb := ButtonBinding{Region: b.Region, Stroke: stroke, Action: b.Action, Arg: b.Arg}
		wm.buttons = append(wm.buttons, bb)
		if b.Region == "client" {
			wm.clientButtons = append(wm.clientButtons, stroke)
		}
	}
	return nil
}

// runAction executes one bound action. Unknown actions cannot reach here;
// the config rejects them at load time.
func (wm *WM) runAction(action string, arg config.Arg) error {
	switch action {
	case "spawn":
		// Spawning from inside a pushed mode pops all the way out, so a
		// one-shot launcher mode does not linger.
		if wm.modeTop > 0 {
			wm.resetMode()
		}
		wm.spawn(arg.Cmd)
	case "push-mode":
		if mode, ok := wm.cfg.ModeIndex(arg.Mode); ok {
			wm.pushMode(mode)
		}
	case "pop-mode":
		wm.popMode()
	case "view":
		wm.view(arg.Bits)
	case "toggle-view":
		wm.toggleView(arg.Bits)
	case "tag":
		wm.tag(arg.Bits)
	case "toggle-tag":
		wm.toggleTag(arg.Bits)
	case "focus-stack":
		wm.focusStack(arg.Int)
	case "focus-monitor":
		wm.focusMonitor(arg.Int)
	case "tag-monitor":
		wm.tagMonitor(arg.Int)
	case "set-mfact":
		wm.setMFact(arg.Int)
	case "toggle-layout":
		wm.toggleLayout()
	case "toggle-floating":
		wm.toggleFloating()
	case "zoom":
		wm.zoom()
	case "kill":
		wm.killClient()
	case "resize":
		wm.resizeSelected(arg.Int)
	case "move-x":
		wm.moveHoriz(arg.Int)
	case "move-y":
		wm.moveVert(arg.Int)
	case "aspect":
		wm.changeAspect(arg.Int)
	case "move-mouse":
		return wm.moveMouse()
	case "resize-mouse":
		return wm.resizeMouse()
	case "status-signal":
		wm.statusSignal(arg.Int)
	case "quit":
		wm.running = false
	case "none":
	}
	return nil
}

// view switches the selected monitor to a tag set.
func (wm *WM) view(bits uint32) {
	m := &wm.monitors[wm.selMon]
	tags := bits & wm.tagMask
	if tags == m.SelTags {
		return
	}
	if tags != 0 {
		m.SelTags = tags
	}
	wm.focus(nilIdx)
	wm.arrange(wm.selMon)
}

// toggleView flips tags in the selected monitor's view; flipping the last
// one off is refused.
func (wm *WM) toggleView(bits uint32) {
	m := &wm.monitors[wm.selMon]
	tags := m.SelTags ^ (bits & wm.tagMask)
	if tags == 0 {
		return
	}
	m.SelTags = tags
	wm.focus(nilIdx)
	wm.arrange(wm.selMon)
}

// tag moves the selected client to a tag set.
func (wm *WM) tag(bits uint32) {
	ci := wm.monitors[wm.selMon].Sel
	if ci == nilIdx || bits&wm.tagMask == 0 {
		return
	}
	wm.client(ci).Tags = bits & wm.tagMask
	wm.focus(nilIdx)
	wm.arrange(wm.selMon)
}

// toggleTag flips tags on the selected client; the last tag stays.
func (wm *WM) toggleTag(bits uint32) {
	ci := wm.monitors[wm.selMon].Sel
	if ci == nilIdx {
		return
	}
	tags := wm.client(ci).Tags ^ (bits & wm.tagMask)
	if tags == 0 {
		return
	}
	wm.client(ci).Tags = tags
	wm.focus(nilIdx)
	wm.arrange(wm.selMon)
}

// tagMonitor sends the selected client to the next (+1) or previous (-1)
// monitor.
func (wm *WM) tagMonitor(dir int) {
	ci := wm.monitors[wm.selMon].Sel
	if ci == nilIdx {
		return
	}
	mi := wm.dirToMonitor(dir)
	if mi != wm.selMon {
		wm.sendToMonitor(ci, mi)
	}
}

// setMFact nudges the selected monitor's master width percentage, clamped
// to 5..95.
func (wm *WM) setMFact(delta int) {
	m := &wm.monitors[wm.selMon]
	f := m.MFact + delta
	if f < 5 || f > 95 {
		return
	}
	m.MFact = f
	wm.arrange(wm.selMon)
}

// toggleLayout flips the selected monitor between tile and monocle.
func (wm *WM) toggleLayout() {
	m := &wm.monitors[wm.selMon]
	if m.Layout == LayoutTile {
		m.Layout = LayoutMonocle
	} else {
		m.Layout = LayoutTile
	}
	if m.Sel != nilIdx {
		wm.arrange(wm.selMon)
	} else {
		wm.drawBar(wm.selMon)
	}
}

// resizeSelected grows or shrinks a floating selection around its center;
// with a tiled selection it adjusts the global gap instead.
func (wm *WM) resizeSelected(dir int) {
	step := nudgeStep
	if dir <= 0 {
		step = -nudgeStep
	}
	ci := wm.monitors[wm.selMon].Sel
	if ci != nilIdx && wm.client(ci).IsFloating {
		c := wm.client(ci)
		wm.resize(ci, c.Geom.X+step, c.Geom.Y+step, c.Geom.Width-2*step, c.Geom.Height-2*step, false)
		return
	}
	if g := wm.gap + step; g >= 0 {
		wm.gap = g
		wm.arrangeAll()
	}
}

// moveVert nudges a floating selection vertically.
func (wm *WM) moveVert(dir int) {
	step := nudgeStep
	if dir <= 0 {
		step = -nudgeStep
	}
	ci := wm.monitors[wm.selMon].Sel
	if ci != nilIdx && wm.client(ci).IsFloating {
		c := wm.client(ci)
		wm.resize(ci, c.Geom.X, c.Geom.Y+step, c.Geom.Width, c.Geom.Height, false)
	}
}

// moveHoriz nudges a floating selection horizontally.
func (wm *WM) moveHoriz(dir int) {
	step := nudgeStep
	if dir <= 0 {
		step = -nudgeStep
	}
	ci := wm.monitors[wm.selMon].Sel
	if ci != nilIdx && wm.client(ci).IsFloating {
		c := wm.client(ci)
		wm.resize(ci, c.Geom.X+step, c.Geom.Y, c.Geom.Width, c.Geom.Height, false)
	}
}

// changeAspect trades height for width (or back) on a floating selection,
// keeping the center fixed.
func (wm *WM) changeAspect(dir int) {
	step := nudgeStep
	if dir <= 0 {
		step = -nudgeStep
	}
	ci := wm.monitors[wm.selMon].Sel
	if ci != nilIdx && wm.client(ci).IsFloating {
		c := wm.client(ci)
		wm.resize(ci, c.Geom.X-step, c.Geom.Y+step, c.Geom.Width+2*step, c.Geom.Height-2*step, false)
	}
}
