package emu

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/zotley/ce83/internal/cpu"
	"github.com/zotley/ce83/internal/peripherals"
)

// Persisted state is a versioned envelope: magic, version, then the CPU
// register file, the peripheral set, and gzip-compressed RAM/flash images,
// mirroring the teacher's own snapshot envelope shape (magic + version +
// length-prefixed compressed memory) generalized from one memory region to
// two plus a typed register/peripheral section. The concrete byte layout
// is this implementation's own choice; only the magic/version check and
// round-trip fidelity are load-bearing.
const (
	stateMagic   = "CE83"
	stateVersion = 1
)

// SaveState serializes the full CPU, peripheral, RAM, and flash state into
// a self-contained buffer. LoadState on the resulting bytes restores
// execution at exactly the instruction boundary SaveState was called at.
func (e *Emu) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(stateMagic)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(stateVersion)); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	if err := gob.NewEncoder(&buf).Encode(e.cpu.ExportState()); err != nil {
		return nil, fmt.Errorf("save state: encode cpu: %w", err)
	}
	if err := gob.NewEncoder(&buf).Encode(e.periph.Export()); err != nil {
		return nil, fmt.Errorf("save state: encode peripherals: %w", err)
	}
	if err := writeCompressedBlock(&buf, e.bus.RAMBytes()); err != nil {
		return nil, fmt.Errorf("save state: compress ram: %w", err)
	}
	if err := writeCompressedBlock(&buf, e.bus.FlashBytes()); err != nil {
		return nil, fmt.Errorf("save state: compress flash: %w", err)
	}

	return buf.Bytes(), nil
}

// LoadState validates the envelope and restores CPU, peripheral, RAM, and
// flash state from it. On any format error the Emu is left untouched and
// ErrStateFormat is returned.
func (e *Emu) LoadState(data []byte) error {
	r := bytes.NewReader(data)

	magic := make([]byte, len(stateMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != stateMagic {
		return fmt.Errorf("load state: bad magic: %w", ErrStateFormat)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("load state: %w", ErrStateFormat)
	}
	if version != stateVersion {
		return fmt.Errorf("load state: unsupported version %d: %w", version, ErrStateFormat)
	}

	var cpuState cpu.State
	if err := gob.NewDecoder(r).Decode(&cpuState); err != nil {
		return fmt.Errorf("load state: cpu: %w", ErrStateFormat)
	}
	var periphSnap peripherals.Snapshot
	if err := gob.NewDecoder(r).Decode(&periphSnap); err != nil {
		return fmt.Errorf("load state: peripherals: %w", ErrStateFormat)
	}
	ram, err := readCompressedBlock(r)
	if err != nil {
		return fmt.Errorf("load state: ram: %w", ErrStateFormat)
	}
	flash, err := readCompressedBlock(r)
	if err != nil {
		return fmt.Errorf("load state: flash: %w", ErrStateFormat)
	}

	copy(e.bus.RAMBytes(), ram)
	e.bus.LoadFlash(flash)
	e.cpu.ImportState(cpuState)
	e.periph.Import(periphSnap)

	// irq_pending is re-derived rather than trusted verbatim, per the
	// persisted-state contract.
	e.cpu.SetIRQLine(e.periph.IRQPending())
	e.nmiArmed = false

	return nil
}

func writeCompressedBlock(buf *bytes.Buffer, data []byte) error {
	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("compressing: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip: %w", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(compressed.Len())); err != nil {
		return err
	}
	_, err := buf.Write(compressed.Bytes())
	return err
}

func readCompressedBlock(r *bytes.Reader) ([]byte, error) {
	var rawLen, compLen uint32
	if err := binary.Read(r, binary.LittleEndian, &rawLen); err != nil {
		return nil, fmt.Errorf("reading raw length: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &compLen); err != nil {
		return nil, fmt.Errorf("reading compressed length: %w", err)
	}
	compressed := make([]byte, compLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("reading compressed block: %w", err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("opening gzip reader: %w", err)
	}
	defer gz.Close()

	out := make([]byte, rawLen)
	if _, err := io.ReadFull(gz, out); err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return out, nil
}
