package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRangesCmd())
}

func newRangesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranges <dtb>",
		Short: "Print the free list",
		Long: `The ranges command boots an allocator from a devicetree blob and prints
its free list, one inclusive interval per line in ascending address
order.

Example:
  memctl ranges bcm2710-rpi-3-b.dtb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRanges(args[0])
		},
	}
}

type FreeRange struct {
	Start uint64
	End   uint64
	Size  uint64
}

func runRanges(path string) error {
	a, _, err := bootAllocator(path)
	if err != nil {
		return err
	}

	ranges, err := a.FreeRanges()
	if err != nil {
		return err
	}

	if jsonOut {
		out := make([]FreeRange, 0, len(ranges))
		for _, r := range ranges {
			out = append(out, FreeRange{Start: r.Start(), End: r.End(), Size: r.Size()})
		}
		return printJSON(out)
	}

	printInfo("%-18s %-18s %s\n", "START", "END", "SIZE")
	for _, r := range ranges {
		printInfo("%#-18x %#-18x %s\n", r.Start(), r.End(), formatBytes(r.Size()))
	}

	return nil
}
