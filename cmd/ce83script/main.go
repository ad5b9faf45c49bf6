// ce83script runs a Lua script that drives the assembled core through its
// Go-exposed API: load a ROM, run N cycles, press/release a key, assert on
// a memory location or register, and report pass/fail. It is a scriptable
// integration-test harness for boot and keypad scenarios that would
// otherwise need hand-written Go per scenario.
package main

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/zotley/ce83/internal/emu"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ce83script <script.lua>")
		os.Exit(1)
	}

	e := emu.New()

	L := lua.NewState()
	defer L.Close()
	registerAPI(L, e)

	if err := L.DoFile(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "script failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("PASS")
}

func registerAPI(L *lua.LState, e *emu.Emu) {
	L.SetGlobal("load_rom", L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		data, err := os.ReadFile(path)
		if err != nil {
			L.RaiseError("load_rom: %v", err)
			return 0
		}
		if err := e.LoadROM(data); err != nil {
			L.RaiseError("load_rom: %v", err)
		}
		return 0
	}))

	L.SetGlobal("power_on", L.NewFunction(func(L *lua.LState) int {
		e.PowerOn()
		return 0
	}))

	L.SetGlobal("run_cycles", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		consumed := e.RunCycles(n)
		L.Push(lua.LNumber(consumed))
		return 1
	}))

	L.SetGlobal("set_key", L.NewFunction(func(L *lua.LState) int {
		row := L.CheckInt(1)
		col := L.CheckInt(2)
		down := L.CheckBool(3)
		if err := e.SetKey(row, col, down); err != nil {
			L.RaiseError("set_key: %v", err)
		}
		return 0
	}))

	L.SetGlobal("set_on_key", L.NewFunction(func(L *lua.LState) int {
		e.SetOnKey(L.CheckBool(1))
		return 0
	}))

	L.SetGlobal("read_byte", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1))
		L.Push(lua.LNumber(e.Bus().ReadByte(addr)))
		return 1
	}))

	L.SetGlobal("write_byte", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1))
		value := byte(L.CheckInt(2))
		e.Bus().WriteByte(addr, value)
		return 0
	}))

	L.SetGlobal("get_register", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		c := e.CPU()
		var v uint64
		switch name {
		case "A":
			v = uint64(c.A)
		case "F":
			v = uint64(c.F)
		case "BC":
			v = uint64(c.BC)
		case "DE":
			v = uint64(c.DE)
		case "HL":
			v = uint64(c.HL)
		case "IX":
			v = uint64(c.IX)
		case "IY":
			v = uint64(c.IY)
		case "SP":
			v = uint64(c.SP)
		case "PC":
			v = uint64(c.PC)
		default:
			L.RaiseError("get_register: unknown register %q", name)
			return 0
		}
		L.Push(lua.LNumber(v))
		return 1
	}))
}
