// Package spawnutil launches helper processes detached from the window
// manager so they survive it and never become zombies.
package spawnutil

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// sigRTMin is the first realtime signal on Linux. Status bars listen on
// SIGRTMIN+n for their per-segment refresh signals.
const sigRTMin = 34

// Spawn starts argv in its own session with the manager's environment and
// returns the child's pid. The child is reaped in the background.
func Spawn(argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("spawn: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawn %s: %w", argv[0], err)
	}
	pid := cmd.Process.Pid
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

// SignalRT sends SIGRTMIN+offset to a process.
func SignalRT(pid, offset int) error {
	return unix.Kill(pid, unix.Signal(sigRTMin+offset))
}

// Terminate asks a spawned process to exit.
func Terminate(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}
