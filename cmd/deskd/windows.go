package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/1broseidon/deskd/internal/ipc"
)

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd windows [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List open windows sorted bottom to top of the stack.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output the registry snapshot as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	client := newClient()
	data, err := client.GetWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("top_stack_order: %d\n", data.TopStackOrder)
	fmt.Printf("focused_id:      %s\n", data.FocusedID)
	for _, w := range data.Windows {
		state := ""
		if w.Minimized {
			state += " [min]"
		}
		if w.Maximized {
			state += " [max]"
		}
		marker := " "
		if w.Focused {
			marker = "*"
		}
		fmt.Printf("%s z=%d  %s  %q  %dx%d @ (%d,%d)%s\n",
			marker, w.ZIndex, w.ID, w.Title, w.Width, w.Height, w.X, w.Y, state)
	}
	return 0
}

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd open [flags] <id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a window, or bring it to the front if the id is already open.")
		fmt.Fprintln(os.Stderr, "With no flags the daemon fills title and geometry from the app")
		fmt.Fprintln(os.Stderr, "config for the id's kind (the id prefix before the first '-').")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	title := fs.String("title", "", "Window title")
	icon := fs.String("icon", "", "Window icon name")
	x := fs.Int("x", 0, "Left edge position")
	y := fs.Int("y", 0, "Top edge position")
	width := fs.Int("width", 0, "Window width")
	height := fs.Int("height", 0, "Window height")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "open requires exactly one <id>")
		fs.Usage()
		return 2
	}

	client := newClient()
	data, err := client.OpenWindow(ipc.OpenWindowPayload{
		ID:     fs.Arg(0),
		Title:  *title,
		Icon:   *icon,
		X:      *x,
		Y:      *y,
		Width:  *width,
		Height: *height,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if data.Created {
		fmt.Printf("opened: %s (z=%d)\n", data.ID, data.ZIndex)
	} else {
		fmt.Printf("refocused: %s (z=%d)\n", data.ID, data.ZIndex)
	}
	return 0
}

// runWindowOp handles the single-target verbs that share a "<verb> <id>"
// shape: close, focus, minimize, maximize, restore.
func runWindowOp(args []string, verb string) int {
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskd %s <id>\n", verb)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one <id>\n", verb)
		return 2
	}
	id := fs.Arg(0)

	client := newClient()
	var data *ipc.WindowOpData
	var err error
	switch verb {
	case "close":
		data, err = client.CloseWindow(id)
	case "focus":
		data, err = client.FocusWindow(id)
	case "minimize":
		data, err = client.MinimizeWindow(id)
	case "maximize":
		data, err = client.MaximizeWindow(id)
	case "restore":
		data, err = client.RestoreWindow(id)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !data.Found {
		fmt.Fprintf(os.Stderr, "window not found: %s\n", id)
		return 1
	}
	fmt.Printf("%s: %s\n", verb, id)
	return 0
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd move <id> <x> <y>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "move requires <id> <x> <y>")
		return 2
	}
	x, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid x: %s\n", fs.Arg(1))
		return 2
	}
	y, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid y: %s\n", fs.Arg(2))
		return 2
	}

	client := newClient()
	data, err := client.MoveWindow(fs.Arg(0), x, y)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !data.Found {
		fmt.Fprintf(os.Stderr, "window not found: %s\n", fs.Arg(0))
		return 1
	}
	fmt.Printf("moved: %s to (%d,%d)\n", fs.Arg(0), x, y)
	return 0
}

func runResize(args []string) int {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskd resize <id> <width> <height>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "resize requires <id> <width> <height>")
		return 2
	}
	width, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid width: %s\n", fs.Arg(1))
		return 2
	}
	height, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid height: %s\n", fs.Arg(2))
		return 2
	}

	client := newClient()
	data, err := client.ResizeWindow(fs.Arg(0), width, height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !data.Found {
		fmt.Fprintf(os.Stderr, "window not found: %s\n", fs.Arg(0))
		return 1
	}
	fmt.Printf("resized: %s to %dx%d\n", fs.Arg(0), width, height)
	return 0
}
