package macro

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/mfonda/keytrigger/internal/input/key"
)

// runScript executes a Lua chunk against the scripting API. Each run gets a
// fresh sandboxed state; the chunk drives the same injector and key-state
// tracker as declarative actions, so a failed script still drains held keys
// through the usual abort path.
//
// Exposed functions:
//
//	press(key)    key-down, key stays held
//	release(key)  key-up
//	tap(key)      key-down immediately followed by key-up
//	type(text)    type a string, shift-bracketing as needed
//	wait(ms)      pause the script
//
// The type function shadows Lua's builtin type() inside the sandbox. That is
// intentional: the name matches the type_text action, and these chunks drive
// keys rather than reflect on values.
func (it *Interpreter) runScript(ctx context.Context, execID, source string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	sandboxState(L)

	L.SetGlobal("press", L.NewFunction(it.luaKeyOp(execID, "press")))
	L.SetGlobal("release", L.NewFunction(it.luaKeyOp(execID, "release")))
	L.SetGlobal("tap", L.NewFunction(it.luaKeyOp(execID, "tap")))
	L.SetGlobal("type", L.NewFunction(it.luaType(ctx, execID)))
	L.SetGlobal("wait", L.NewFunction(it.luaWait(ctx)))

	if err := L.DoString(source); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// sandboxState strips globals that would let a config script touch the file
// system or load further code, the same cut applied to plugin chunks.
func sandboxState(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "os", "io"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// luaKeyOp implements press/release/tap, sharing key canonicalization and
// held-key bookkeeping with key steps.
func (it *Interpreter) luaKeyOp(execID, op string) lua.LGFunction {
	return func(L *lua.LState) int {
		raw := L.CheckString(1)
		name, ok := key.Canonical(raw)
		if !ok {
			L.RaiseError("unknown key %q", raw)
			return 0
		}

		var err error
		switch op {
		case "press":
			if err = it.pressKey(execID, name); err == nil {
				it.keys.MarkHeld(name)
			}
		case "release":
			if err = it.releaseKey(execID, name); err == nil {
				it.keys.MarkReleased(name)
			}
		case "tap":
			if err = it.pressKey(execID, name); err == nil {
				err = it.releaseKey(execID, name)
			}
		}
		if err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}
}

// luaType implements type(text[, delayMs]).
func (it *Interpreter) luaType(ctx context.Context, execID string) lua.LGFunction {
	return func(L *lua.LState) int {
		text := L.CheckString(1)
		delay := DelaySpec{}
		if L.GetTop() >= 2 {
			ms := L.CheckInt64(2)
			if ms > 0 {
				delay = FixedDelay(time.Duration(ms) * time.Millisecond)
			}
		}
		if err := it.typeText(ctx, execID, text, delay); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}
}

// luaWait implements wait(ms).
func (it *Interpreter) luaWait(ctx context.Context) lua.LGFunction {
	return func(L *lua.LState) int {
		ms := L.CheckInt64(1)
		if ms < 0 {
			L.ArgError(1, "wait must be non-negative")
			return 0
		}
		if err := it.sleep(ctx, time.Duration(ms)*time.Millisecond); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}
}
