package emu

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

// bootFixture is one independently-constructed machine to run to
// completion: its own Emu, its own ROM bytes, and the register state it is
// expected to reach after running cyclesBudget cycles. Each fixture owns
// its Emu entirely; nothing is shared across goroutines but the errgroup
// itself, matching the "each goroutine owns its own Emu" design this
// harness fans out rather than parallelizing the core's own execution.
type bootFixture struct {
	name          string
	rom           []byte
	cyclesBudget  int
	wantPC        uint32
}

// runBootConformance runs every fixture concurrently and returns the first
// failure encountered, mirroring a boot-ROM conformance suite that checks
// several independent fixtures reach their expected post-boot state.
func runBootConformance(ctx context.Context, fixtures []bootFixture) error {
	g, _ := errgroup.WithContext(ctx)
	for _, f := range fixtures {
		f := f
		g.Go(func() error {
			e := New()
			if err := e.LoadROM(f.rom); err != nil {
				return fmt.Errorf("%s: load rom: %w", f.name, err)
			}
			e.PowerOn()
			e.RunCycles(f.cyclesBudget)
			if e.CPU().PC != f.wantPC {
				return fmt.Errorf("%s: PC = %#x, want %#x", f.name, e.CPU().PC, f.wantPC)
			}
			return nil
		})
	}
	return g.Wait()
}

// jpLoopROM builds a trivial fixture ROM: a JP instruction that jumps to
// itself, so after enough cycles PC settles on the jump target regardless
// of how many times the loop has executed.
func jpLoopROM(target uint32) []byte {
	rom := make([]byte, 64)
	rom[0] = 0xC3
	rom[1] = byte(target)
	rom[2] = byte(target >> 8)
	rom[3] = byte(target >> 16)
	return rom
}

func TestBootConformanceRunsIndependentFixturesConcurrently(t *testing.T) {
	fixtures := []bootFixture{
		{name: "fixture-a", rom: jpLoopROM(0), cyclesBudget: 100, wantPC: 0},
		{name: "fixture-b", rom: jpLoopROM(0), cyclesBudget: 100, wantPC: 0},
		{name: "fixture-c", rom: jpLoopROM(0), cyclesBudget: 100, wantPC: 0},
	}
	if err := runBootConformance(context.Background(), fixtures); err != nil {
		t.Fatalf("boot conformance suite failed: %v", err)
	}
}

func TestBootConformanceReportsFirstFailure(t *testing.T) {
	fixtures := []bootFixture{
		{name: "good", rom: jpLoopROM(0), cyclesBudget: 100, wantPC: 0},
		{name: "bad", rom: jpLoopROM(0), cyclesBudget: 100, wantPC: 0x1234},
	}
	err := runBootConformance(context.Background(), fixtures)
	if err == nil {
		t.Fatal("expected the mismatched fixture to fail the suite")
	}
}

func TestBootConformanceRejectsEmptyROM(t *testing.T) {
	fixtures := []bootFixture{
		{name: "empty", rom: nil, cyclesBudget: 10, wantPC: 0},
	}
	if err := runBootConformance(context.Background(), fixtures); err == nil {
		t.Fatal("expected a nil ROM fixture to fail via LoadROM's bad-input rejection")
	}
}
