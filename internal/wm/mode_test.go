package wm

import (
	"testing"

	"tesswm/internal/config"
)

func TestPushPopMode(t *testing.T) {
	w, b, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})

	if got := w.currentMode(); got != 0 {
		t.Fatalf("initial mode = %d, want 0", got)
	}
	baseGrabs := len(b.grabbedKeys)

	w.pushMode(1)
	if got := w.currentMode(); got != 1 {
		t.Errorf("mode after push = %d, want 1", got)
	}
	// The browser mode's table has two bindings in the default config.
	if len(b.grabbedKeys) == baseGrabs {
		t.Error("key grabs not swapped on push")
	}

	w.popMode()
	if got := w.currentMode(); got != 0 {
		t.Errorf("mode after pop = %d, want 0", got)
	}
	if len(b.grabbedKeys) != baseGrabs {
		t.Errorf("base mode grabs %d keys, want %d", len(b.grabbedKeys), baseGrabs)
	}
}

func TestPopModeAtBaseIsNoop(t *testing.T) {
	w, _, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	w.popMode()
	if got := w.currentMode(); got != 0 {
		t.Errorf("mode = %d, want 0", got)
	}
	if w.modeTop != 0 {
		t.Errorf("modeTop = %d, want 0", w.modeTop)
	}
}

func TestPushModeOverflowIgnored(t *testing.T) {
	w, _, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})

	for i := 0; i < modeStackDepth+3; i++ {
		w.pushMode(1)
	}
	if w.modeTop != modeStackDepth-1 {
		t.Errorf("modeTop = %d, want %d", w.modeTop, modeStackDepth-1)
	}
	if got := w.currentMode(); got != 1 {
		t.Errorf("mode = %d, want 1", got)
	}
}

func TestResetModeDropsToBase(t *testing.T) {
	w, _, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	w.pushMode(1)
	w.pushMode(1)
	w.pushMode(1)

	w.resetMode()
	if w.modeTop != 0 || w.currentMode() != 0 {
		t.Errorf("modeTop = %d mode = %d, want 0 0", w.modeTop, w.currentMode())
	}
}

func TestSpawnActionResetsPushedModes(t *testing.T) {
	w, _, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})
	w.pushMode(1)

	// An empty argv never forks but still runs the mode bookkeeping.
	if err := w.runAction("spawn", config.Arg{}); err != nil {
		t.Fatalf("runAction: %v", err)
	}
	if got := w.currentMode(); got != 0 {
		t.Errorf("mode after spawn = %d, want 0", got)
	}
}

func TestModeKeyTablesAreScoped(t *testing.T) {
	w, _, _ := newTestWM(t, []Rect{{0, 0, 1920, 1080}})

	// The default config binds mod4-b in both modes: push-mode in
	// normal, spawn in browser.
	if len(w.keys) != 2 {
		t.Fatalf("%d key tables, want 2", len(w.keys))
	}
	find := func(table []KeyBinding, action string) bool {
		for _, kb := range table {
			if kb.Action == action {
				return true
			}
		}
		return false
	}
	if !find(w.keys[0], "push-mode") {
		t.Error("normal table missing push-mode")
	}
	if !find(w.keys[1], "pop-mode") {
		t.Error("browser table missing pop-mode")
	}
	if find(w.keys[1], "zoom") {
		t.Error("browser table holds a normal-mode binding")
	}
}
