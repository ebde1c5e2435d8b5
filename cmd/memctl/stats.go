package main

import (
	"fmt"

	"github.com/memkit/memkit/mem"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <dtb>",
		Short: "Show allocator statistics after boot",
		Long: `The stats command boots an allocator from a devicetree blob and shows
totals: usable memory, reserved regions, free bytes and the size-class
ladder small allocations are bucketed into.

Example:
  memctl stats bcm2710-rpi-3-b.dtb
  memctl stats bcm2710-rpi-3-b.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args[0])
		},
	}
}

type AllocStats struct {
	DTBPath string

	UsableBytes   uint64
	ReservedCount int
	FreeBytes     uint64
	FreeRegions   int

	SizeClasses []uint64
}

func runStats(path string) error {
	a, m, err := bootAllocator(path)
	if err != nil {
		return err
	}

	stats := AllocStats{
		DTBPath:     path,
		SizeClasses: mem.SizeClasses(),
	}
	for _, reg := range m.Usable {
		stats.UsableBytes += reg.Size
	}
	stats.ReservedCount = len(m.Reserved)

	if stats.FreeBytes, err = a.FreeMemorySize(); err != nil {
		return err
	}
	ranges, err := a.FreeRanges()
	if err != nil {
		return err
	}
	stats.FreeRegions = len(ranges)

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("\nAllocator Statistics: %s\n\n", path)
	printInfo("  Usable memory: %s\n", formatBytes(stats.UsableBytes))
	printInfo("  Reserved regions: %d\n", stats.ReservedCount)
	printInfo("  Free memory: %s\n", formatBytes(stats.FreeBytes))
	printInfo("  Free regions: %d\n", stats.FreeRegions)
	printInfo("  Size classes: %v\n", stats.SizeClasses)

	return nil
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
