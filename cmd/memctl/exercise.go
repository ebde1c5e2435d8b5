package main

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/memkit/memkit/internal/arena"
	"github.com/memkit/memkit/mem"
	"github.com/spf13/cobra"
)

var (
	exerciseOps     int
	exerciseSeed    int64
	exerciseMaxSize uint64
)

// maxLive caps concurrent allocations so free-list fragments stay well
// under the set capacity.
const maxLive = 128

func init() {
	cmd := newExerciseCmd()
	cmd.Flags().IntVar(&exerciseOps, "ops", 1000, "Number of operations to run")
	cmd.Flags().Int64Var(&exerciseSeed, "seed", 1, "Seed of the workload generator")
	cmd.Flags().Uint64Var(&exerciseMaxSize, "max-size", 8192, "Largest allocation size in bytes")
	rootCmd.AddCommand(cmd)
}

func newExerciseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercise <dtb>",
		Short: "Run an allocation workload and verify the free list",
		Long: `The exercise command boots an allocator from a devicetree blob, runs a
random alloc/dealloc workload against it and then frees everything,
verifying that the free list returns exactly to its boot-time state.

Usable memory is backed by an anonymous mapping; every allocation is
written through it and checked on free, so out-of-window or overlapping
allocations are caught.

Example:
  memctl exercise bcm2710-rpi-3-b.dtb --ops 10000 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercise(args[0])
		},
	}
}

type allocation struct {
	addr  uint64
	size  uint64
	align uint64
}

type ExerciseReport struct {
	Ops           int
	Allocs        int
	Deallocs      int
	Unsatisfiable int
	PeakRegions   int
	Restored      bool
}

func runExercise(path string) error {
	a, m, err := bootAllocator(path)
	if err != nil {
		return err
	}

	// Back the whole usable window with host memory so allocations can be
	// written and checked.
	window, err := arena.New(m.Usable[0].Base, int(m.Usable[0].Size))
	if err != nil {
		return err
	}
	defer window.Close()

	initial, err := a.FreeRanges()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(exerciseSeed))
	aligns := []uint64{1, 2, 8, 16, 64, 4096}

	report := ExerciseReport{Ops: exerciseOps, PeakRegions: len(initial)}
	var live []allocation

	for i := 0; i < exerciseOps; i++ {
		free := len(live) >= maxLive || (len(live) > 0 && rng.Intn(2) == 0)
		if free {
			j := rng.Intn(len(live))
			al := live[j]
			if err := checkFill(window, al); err != nil {
				return err
			}
			if err := a.TryDealloc(al.addr, al.size, al.align); err != nil {
				return fmt.Errorf("dealloc %#x: %w", al.addr, err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			report.Deallocs++
		} else {
			size := uint64(rng.Int63n(int64(exerciseMaxSize))) + 1
			align := aligns[rng.Intn(len(aligns))]
			addr, err := a.TryAlloc(size, align)
			if errors.Is(err, mem.ErrNotSatisfiable) {
				report.Unsatisfiable++
				continue
			}
			if err != nil {
				return fmt.Errorf("alloc size=%d align=%d: %w", size, align, err)
			}
			al := allocation{addr: addr, size: size, align: align}
			if err := fill(window, al); err != nil {
				return err
			}
			live = append(live, al)
			report.Allocs++
		}

		if ranges, err := a.FreeRanges(); err == nil && len(ranges) > report.PeakRegions {
			report.PeakRegions = len(ranges)
		}
	}

	for _, al := range live {
		if err := checkFill(window, al); err != nil {
			return err
		}
		if err := a.TryDealloc(al.addr, al.size, al.align); err != nil {
			return fmt.Errorf("final dealloc %#x: %w", al.addr, err)
		}
	}
	report.Deallocs += len(live)

	final, err := a.FreeRanges()
	if err != nil {
		return err
	}
	report.Restored = slices.Equal(final, initial)

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printInfo("\nExercise: %s\n\n", path)
		printInfo("  Operations: %d\n", report.Ops)
		printInfo("  Allocations: %d\n", report.Allocs)
		printInfo("  Deallocations: %d\n", report.Deallocs)
		printInfo("  Unsatisfiable: %d\n", report.Unsatisfiable)
		printInfo("  Peak free regions: %d\n", report.PeakRegions)
		printInfo("  Free list restored: %v\n", report.Restored)
	}

	if !report.Restored {
		return errors.New("free list did not return to its boot-time state")
	}
	return nil
}

// fill writes the allocation's marker byte over its backing memory.
func fill(window *arena.Arena, al allocation) error {
	buf, err := window.Slice(al.addr, al.size)
	if err != nil {
		return fmt.Errorf("allocation outside usable window: %w", err)
	}
	marker := byte(al.addr ^ al.size)
	for i := range buf {
		buf[i] = marker
	}
	return nil
}

// checkFill verifies the marker survived, catching overlapping
// allocations.
func checkFill(window *arena.Arena, al allocation) error {
	buf, err := window.Slice(al.addr, al.size)
	if err != nil {
		return fmt.Errorf("allocation outside usable window: %w", err)
	}
	marker := byte(al.addr ^ al.size)
	for i, b := range buf {
		if b != marker {
			return fmt.Errorf("allocation %#x corrupted at byte %d", al.addr, i)
		}
	}
	return nil
}
