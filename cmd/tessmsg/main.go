package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"tesswm/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "clients":
		os.Exit(runClients(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "view":
		os.Exit(runView(os.Args[2:]))
	case "toggle-layout":
		os.Exit(runSimple("toggle-layout", os.Args[2:], func(c *ipc.Client) error {
			return c.ToggleLayout()
		}))
	case "quit":
		os.Exit(runSimple("quit", os.Args[2:], func(c *ipc.Client) error {
			return c.Quit()
		}))
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tessmsg <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  status              Show manager status")
	fmt.Fprintln(w, "  clients             List managed window titles")
	fmt.Fprintln(w, "  monitors            List monitor geometries")
	fmt.Fprintln(w, "  view <tag>          Switch to a tag (1-based index)")
	fmt.Fprintln(w, "  toggle-layout       Flip between tile and monocle")
	fmt.Fprintln(w, "  quit                Ask the manager to exit")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tessmsg <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tessmsg status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show manager status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("version:        %s\n", status.Version)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Printf("active_window:  %s\n", status.ActiveWindow)
	fmt.Printf("client_count:   %d\n", status.ClientCount)
	return 0
}

func runClients(args []string) int {
	fs := flag.NewFlagSet("clients", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tessmsg clients")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List managed window titles in management order.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "clients takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetClients()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, name := range data.Clients {
		fmt.Println(name)
	}
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tessmsg monitors")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List physical monitor geometries.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range data.Monitors {
		fmt.Printf("%d: %dx%d+%d+%d\n", m.ID, m.Width, m.Height, m.X, m.Y)
	}
	return 0
}

func runView(args []string) int {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tessmsg view <tag>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Switch the selected monitor to a tag (1-based index).")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "view requires <tag>")
		fs.Usage()
		return 2
	}

	tag, err := strconv.Atoi(fs.Arg(0))
	if err != nil || tag < 1 || tag > 31 {
		fmt.Fprintf(os.Stderr, "invalid tag %q, want 1..31\n", fs.Arg(0))
		return 2
	}

	client := ipc.NewClient()
	if err := client.View(1 << uint(tag-1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSimple(name string, args []string, send func(*ipc.Client) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tessmsg %s\n", name)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	if err := send(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
