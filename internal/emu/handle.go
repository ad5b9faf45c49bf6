package emu

import (
	"fmt"
	"sync"

	"github.com/zotley/ce83/internal/peripherals"
)

// Handle is a Go-native stand-in for the opaque-integer handle a cgo/WASM
// export layer would hand out: an integer-keyed table of *Emu instances
// guarded by a package-level mutex. It exists so every operation the
// foreign-function boundary would need already has a home on this side of
// that boundary, without this module building the boundary itself.
type Handle int32

var (
	handlesMu sync.Mutex
	handles   = map[Handle]*Emu{}
	nextHandle Handle = 1
)

// CreateHandle constructs a new Emu and returns a handle to it.
func CreateHandle(opts ...Option) Handle {
	handlesMu.Lock()
	defer handlesMu.Unlock()

	h := nextHandle
	nextHandle++
	handles[h] = New(opts...)
	return h
}

// DestroyHandle releases the Emu associated with h; h is invalid after
// this call.
func DestroyHandle(h Handle) {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	delete(handles, h)
}

func lookup(h Handle) (*Emu, error) {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	e, ok := handles[h]
	if !ok {
		return nil, fmt.Errorf("handle %d: %w", h, ErrBadInput)
	}
	return e, nil
}

// LoadROM mirrors the C-style "0 ok, negative error" contract: 0 on
// success, -1 on a nil/unknown handle, -2 on bad ROM data.
func (h Handle) LoadROM(data []byte) int {
	e, err := lookup(h)
	if err != nil {
		return -1
	}
	if err := e.LoadROM(data); err != nil {
		return -2
	}
	return 0
}

func (h Handle) Reset() error {
	e, err := lookup(h)
	if err != nil {
		return err
	}
	e.Reset()
	return nil
}

func (h Handle) PowerOn() error {
	e, err := lookup(h)
	if err != nil {
		return err
	}
	e.PowerOn()
	return nil
}

// RunCycles returns cycles executed, or -1 on an invalid handle.
func (h Handle) RunCycles(n int) int {
	e, err := lookup(h)
	if err != nil {
		return -1
	}
	return e.RunCycles(n)
}

// Framebuffer returns a pointer-equivalent slice valid until the next call
// against this handle, per the handle API's aliasing contract.
func (h Handle) Framebuffer() ([]byte, int, int, error) {
	e, err := lookup(h)
	if err != nil {
		return nil, 0, 0, err
	}
	return e.RenderFrame(), peripherals.Width, peripherals.Height, nil
}

func (h Handle) SetKey(row, col int, down bool) int {
	e, err := lookup(h)
	if err != nil {
		return -1
	}
	if err := e.SetKey(row, col, down); err != nil {
		return -2
	}
	return 0
}

func (h Handle) Backlight() (byte, error) {
	e, err := lookup(h)
	if err != nil {
		return 0, err
	}
	return e.Backlight(), nil
}

func (h Handle) IsLCDOn() (bool, error) {
	e, err := lookup(h)
	if err != nil {
		return false, err
	}
	return e.LCDOn(), nil
}

// SaveState returns the serialized state, or an error on an invalid
// handle or an encode failure.
func (h Handle) SaveState() ([]byte, error) {
	e, err := lookup(h)
	if err != nil {
		return nil, err
	}
	return e.SaveState()
}

// LoadState returns 0 on success or a negative code on an invalid handle
// (-1) or a format error (-2), matching the C-style contract.
func (h Handle) LoadState(data []byte) int {
	e, err := lookup(h)
	if err != nil {
		return -1
	}
	if err := e.LoadState(data); err != nil {
		return -2
	}
	return 0
}
