// ce83dbg is an interactive register/memory/breakpoint REPL over a loaded
// ROM image: single-keystroke step/continue, line-edited register and
// memory commands. There is no disassembly output; the disassembler is
// out of scope, so the closest command is a plain hex dump around PC.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/zotley/ce83/internal/debug"
	"github.com/zotley/ce83/internal/emu"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ce83dbg <rom-file>")
		os.Exit(1)
	}

	rom, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading rom: %v\n", err)
		os.Exit(1)
	}

	e := emu.New()
	if err := e.LoadROM(rom); err != nil {
		fmt.Fprintf(os.Stderr, "loading rom: %v\n", err)
		os.Exit(1)
	}
	dbg := debug.New(e)

	fmt.Println("ce83dbg - step (s), continue (c), break <addr> (b), registers (r),")
	fmt.Println("          dump <addr> <len> (d), write <addr> <byte> (w), reset (x), quit (q)")
	runREPL(dbg)
}

func runREPL(dbg *debug.Debugger) {
	stdinFD := int(os.Stdin.Fd())
	isTerminal := term.IsTerminal(stdinFD)

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		var line string
		if isTerminal {
			line = readSingleCommand(stdinFD, reader)
		} else {
			l, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = l
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "s", "step":
			dbg.PushSnapshot()
			dbg.Step()
			printPC(dbg)
		case "c", "continue":
			dbg.PushSnapshot()
			if dbg.RunToBreakpoint(0) {
				fmt.Printf("breakpoint hit at %06X\n", dbg.GetPC())
			}
		case "b", "break":
			if len(fields) < 2 {
				fmt.Println("usage: break <hex-addr>")
				continue
			}
			addr, err := strconv.ParseUint(fields[1], 16, 32)
			if err != nil {
				fmt.Println("bad address:", err)
				continue
			}
			dbg.SetBreakpoint(uint32(addr))
		case "r", "registers":
			for _, reg := range dbg.GetRegisters() {
				fmt.Printf("%-4s = %0*X\n", reg.Name, (reg.Width+3)/4, reg.Value)
			}
		case "d", "dump":
			addr, length := dbg.GetPC(), uint64(64)
			if len(fields) >= 2 {
				if v, err := strconv.ParseUint(fields[1], 16, 32); err == nil {
					addr = uint32(v)
				}
			}
			if len(fields) >= 3 {
				if v, err := strconv.ParseUint(fields[2], 10, 32); err == nil {
					length = v
				}
			}
			hexDump(dbg, addr, int(length))
		case "w", "write":
			if len(fields) < 3 {
				fmt.Println("usage: write <hex-addr> <hex-byte>")
				continue
			}
			addr, err1 := strconv.ParseUint(fields[1], 16, 32)
			val, err2 := strconv.ParseUint(fields[2], 16, 8)
			if err1 != nil || err2 != nil {
				fmt.Println("bad write arguments")
				continue
			}
			dbg.WriteMemory(uint32(addr), []byte{byte(val)})
		case "back":
			if err := dbg.Backstep(); err != nil {
				fmt.Println(err)
			} else {
				printPC(dbg)
			}
		case "x", "reset":
			fmt.Println("reset not available mid-session; restart ce83dbg")
		case "q", "quit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

// readSingleCommand reads a single raw keystroke for step/continue/quit,
// or falls back to cooked line input (restoring the terminal mode while
// reading) for any command that needs arguments.
func readSingleCommand(fd int, reader *bufio.Reader) string {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		l, _ := reader.ReadString('\n')
		return l
	}
	defer term.Restore(fd, oldState)

	b := make([]byte, 1)
	if _, err := os.Stdin.Read(b); err != nil {
		return ""
	}
	switch b[0] {
	case 's', 'c', 'q', '\r', '\n':
		fmt.Println(string(b[0]))
		return string(b[0])
	}
	term.Restore(fd, oldState)
	fmt.Print(string(b[0]))
	rest, _ := reader.ReadString('\n')
	return string(b[0]) + rest
}

func printPC(dbg *debug.Debugger) {
	fmt.Printf("PC = %06X\n", dbg.GetPC())
}

func hexDump(dbg *debug.Debugger, addr uint32, length int) {
	data := dbg.ReadMemory(addr, length)
	for i := 0; i < len(data); i += 16 {
		end := min(i+16, len(data))
		fmt.Printf("%06X: ", addr+uint32(i))
		for _, b := range data[i:end] {
			fmt.Printf("%02X ", b)
		}
		fmt.Println()
	}
}
