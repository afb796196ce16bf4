package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"tesswm/internal/config"
	"tesswm/internal/draw"
	"tesswm/internal/ipc"
	"tesswm/internal/wm"
	"tesswm/internal/x11"
)

func main() {
	switch {
	case len(os.Args) == 2 && os.Args[1] == "-v":
		fmt.Printf("tesswm-%s\n", wm.Version)
		os.Exit(0)
	case len(os.Args) > 1:
		fmt.Fprintln(os.Stderr, "usage: tesswm [-v]")
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tesswm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel)

	conn, err := x11.Connect(log.With().Str("component", "x11").Logger())
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SetBorderColors(
		cfg.Colors.Normal.Border,
		cfg.Colors.Selected.Border,
		cfg.Colors.Mode.Border,
	); err != nil {
		return err
	}

	schemes, err := parseSchemes(cfg.Colors)
	if err != nil {
		return err
	}
	renderer, err := draw.New(conn.XUtil(), cfg.Font, cfg.FontSize, schemes)
	if err != nil {
		return err
	}

	manager := wm.New(conn, renderer, cfg, log.With().Str("component", "wm").Logger())
	if err := manager.Setup(); err != nil {
		return err
	}
	defer manager.Cleanup()

	server, err := ipc.NewServer(wm.Version, log.With().Str("component", "ipc").Logger())
	if err != nil {
		log.Warn().Err(err).Msg("IPC unavailable")
	} else {
		if err := server.Start(); err != nil {
			log.Warn().Err(err).Msg("IPC server failed to start")
		} else {
			defer server.Stop()
		}
	}

	// Signals can't touch the event loop; translate them into the same
	// control message the IPC server uses.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		if cl, err := x11.Dial(); err == nil {
			_ = cl.SendCommand(x11.CmdQuit, 0)
			cl.Close()
		}
	}()

	return manager.Run()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func parseSchemes(colors config.Colors) (map[wm.SchemeID]draw.Scheme, error) {
	schemes := make(map[wm.SchemeID]draw.Scheme, 3)
	for id, sc := range map[wm.SchemeID]config.SchemeColors{
		wm.SchemeNormal:   colors.Normal,
		wm.SchemeSelected: colors.Selected,
		wm.SchemeMode:     colors.Mode,
	} {
		fg, err := draw.ParseColor(sc.Fg)
		if err != nil {
			return nil, err
		}
		bg, err := draw.ParseColor(sc.Bg)
		if err != nil {
			return nil, err
		}
		schemes[id] = draw.Scheme{Fg: fg, Bg: bg}
	}
	return schemes, nil
}
