package wm

import (
	"github.com/rs/zerolog"

	"tesswm/internal/config"
	"tesswm/internal/spawnutil"
)

// Version is reported by the -v flag and used as the fallback status text.
const Version = "0.3.0"

// WM is the whole window manager state. One instance exists per display
// connection and every mutation happens on the event loop goroutine.
type WM struct {
	backend  Backend
	renderer Renderer
	cfg      *config.Config
	log      zerolog.Logger

	clients  clientArena
	monitors []Monitor
	selMon   int

	keys          [][]KeyBinding
	buttons       []ButtonBinding
	clientButtons []ButtonStroke

	modeStack [modeStackDepth]int
	modeTop   int

	gap           int
	tagMask       uint32
	defaultLayout Layout

	barHeight int
	lrPad     int
	screenW   int
	screenH   int

	statusText string
	statusSig  int
	statusPID  int

	motionMon int
	running   bool

	// deferred collects events a drag sub-loop could not handle; pending
	// is the replay queue the main loop drains first.
	deferred []Event
	pending  []Event
}

// New assembles a window manager around a backend and renderer. Call Setup
// before Run.
func New(backend Backend, renderer Renderer, cfg *config.Config, log zerolog.Logger) *WM {
	layout, _ := ParseLayout(cfg.DefaultLayout)
	return &WM{
		backend:       backend,
		renderer:      renderer,
		cfg:           cfg,
		log:           log,
		gap:           cfg.Gap,
		tagMask:       cfg.TagMask(),
		defaultLayout: layout,
		motionMon:     nilIdx,
	}
}

// Setup detects monitors, resolves bindings, creates the bars, launches the
// status bar subprocess and adopts windows that are already mapped.
func (wm *WM) Setup() error {
	wm.lrPad = wm.renderer.FontHeight()
	wm.barHeight = wm.renderer.FontHeight() + 10
	wm.screenW, wm.screenH = wm.backend.ScreenSize()

	wm.updateGeometry()
	if err := wm.resolveBindings(); err != nil {
		return err
	}
	if err := wm.updateBars(); err != nil {
		return err
	}
	wm.updateStatus()

	if len(wm.cfg.StatusBarCmd) > 0 {
		pid, err := spawnutil.Spawn(wm.cfg.StatusBarCmd)
		if err != nil {
			wm.log.Warn().Err(err).Msg("starting status bar")
		} else {
			wm.statusPID = pid
		}
	}

	wm.grabKeys()
	wm.focus(nilIdx)
	wm.scan()

	wm.log.Info().
		Int("monitors", wm.validMonitors()).
		Int("modes", wm.cfg.ModeCount()).
		Msg("setup complete")
	return nil
}

func (wm *WM) validMonitors() int {
	n := 0
	for i := range wm.monitors {
		if wm.monitors[i].Valid {
			n++
		}
	}
	return n
}

// scan adopts windows that were mapped before the manager started:
// ordinary windows first, then transients, so a transient always finds its
// lead client managed.
func (wm *WM) scan() {
	wins, err := wm.backend.ExistingWindows()
	if err != nil {
		wm.log.Warn().Err(err).Msg("scanning existing windows")
		return
	}
	adoptable := func(attr WindowAttributes) bool {
		return attr.Viewable || attr.Iconic
	}
	for _, w := range wins {
		attr, err := wm.backend.Attributes(w)
		if err != nil || attr.OverrideRedirect {
			continue
		}
		if _, transient := wm.backend.Transient(w); transient {
			continue
		}
		if adoptable(attr) {
			wm.manage(w, attr)
		}
	}
	for _, w := range wins {
		if wm.winToClient(w) != nilIdx {
			continue
		}
		attr, err := wm.backend.Attributes(w)
		if err != nil {
			continue
		}
		if _, transient := wm.backend.Transient(w); transient && adoptable(attr) {
			wm.manage(w, attr)
		}
	}
}

// Cleanup releases every managed window back to the server and tears down
// the bars. Safe to call after Run returns for any reason.
func (wm *WM) Cleanup() {
	wm.view(wm.tagMask)
	for mi := range wm.monitors {
		if !wm.monitors[mi].Valid {
			continue
		}
		for wm.monitors[mi].Stack != nilIdx {
			wm.unmanage(wm.monitors[mi].Stack, false)
		}
	}
	for mi := range wm.monitors {
		if wm.monitors[mi].Valid {
			wm.invalidateMonitor(mi)
		}
	}
	if wm.statusPID > 0 {
		spawnutil.Terminate(wm.statusPID)
	}
	wm.backend.FocusRoot()
	wm.backend.ClearActiveWindow()
	wm.backend.Sync()
}

// spawn launches a command detached from the manager process.
func (wm *WM) spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	if _, err := spawnutil.Spawn(argv); err != nil {
		wm.log.Warn().Err(err).Strs("argv", argv).Msg("spawn failed")
	}
}

// statusSignal forwards a bar click to the status bar subprocess as a
// realtime signal. The signal number comes from the clicked status
// segment's delimiter byte.
func (wm *WM) statusSignal(int) {
	if wm.statusSig == 0 || wm.statusPID <= 0 {
		return
	}
	if err := spawnutil.SignalRT(wm.statusPID, wm.statusSig); err != nil {
		wm.log.Debug().Err(err).Int("pid", wm.statusPID).Msg("status bar signal")
	}
}
