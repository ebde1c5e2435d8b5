package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	if args[0] == "--help" || args[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if args[0] == "--version" || args[0] == "-v" {
		fmt.Printf("memexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	dtbPath := args[0]
	if _, err := os.Stat(dtbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: dtb file not found: %s\n", dtbPath)
		os.Exit(1)
	}

	m, err := NewModel(dtbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: memexplorer <dtb>")
	fmt.Fprintln(os.Stderr, "Run 'memexplorer --help' for details.")
}

func printHelp() {
	fmt.Println(`memexplorer - interactive viewer over a live physical memory allocator

Usage:
  memexplorer <dtb>

The allocator boots from the given devicetree blob with the firmware
mailbox answered in memory. The main pane shows the free list; allocate
and free from the keyboard and watch regions split and merge.

Keys:
  up/down, pgup/pgdn   scroll the free list
  1-5                  allocate one size class (32..512 bytes)
  a                    allocate a random size
  A                    allocate a large aligned block (64 KiB @ 4 KiB)
  d                    free the most recent allocation
  r                    reset to the boot-time state
  ?                    toggle help
  q                    quit`)
}
