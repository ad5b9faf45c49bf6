package emu

import "errors"

// Error kinds are sentinel values, not bespoke struct types, so callers use
// errors.Is against these and wrap with context at the call site the same
// way the rest of this module's runner/debug code does.
var (
	// ErrBadInput covers a nil ROM, an empty ROM, and out-of-range key
	// coordinates.
	ErrBadInput = errors.New("emu: bad input")

	// ErrStateFormat covers a save-state magic/version mismatch or a
	// truncated buffer.
	ErrStateFormat = errors.New("emu: state format")
)
