// Package script runs Lua roll scripts against a dice client.
//
// Scripts see a sandboxed Lua runtime (base, string, table and math libraries)
// with a global dice table:
//
//	dice.roll(notation [, seed [, difficulty]]) -> table
//	dice.parse(notation) -> table
//
// print writes to the run output instead of stdout.
package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Shopify/go-lua"
	platerrors "github.com/louisbranch/dicebag/internal/platform/errors"
	"github.com/louisbranch/dicebag/internal/platform/timeouts"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dicev1"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
)

// Result is what a script produced.
type Result struct {
	Output []string
	Rolls  []*dicev1.RollResponse
	// Value is the string form of the script's return value, if any.
	Value string
}

// Runner executes scripts.
type Runner struct {
	dice    client.Dice
	locale  string
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout overrides the per-run timeout. Zero or negative keeps the
// default.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLocale sets the locale used for dice error messages raised in scripts.
func WithLocale(locale string) Option {
	return func(r *Runner) {
		r.locale = locale
	}
}

// NewRunner creates a runner. A nil dice rolls in-process.
func NewRunner(dice client.Dice, opts ...Option) *Runner {
	if dice == nil {
		dice = client.NewLocal(nil)
	}
	r := &Runner{dice: dice, timeout: timeouts.Script}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) (Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(source))
}

// Run executes source under name. Failures are *platerrors.Error values with
// CodeScriptFailed.
func (r *Runner) Run(ctx context.Context, name, source string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	run := &execution{ctx: ctx, runner: r}
	done := make(chan error, 1)
	go func() {
		done <- run.exec(name, source)
	}()

	select {
	case err := <-done:
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return Result{}, scriptError(name, err)
		}
		return run.result(), nil
	case <-ctx.Done():
		// The interrupt hook stops the script within hookInterval instructions.
		<-done
		return Result{}, scriptError(name, ctx.Err())
	}
}

func scriptError(name string, err error) error {
	return platerrors.WrapWithMetadata(
		platerrors.CodeScriptFailed,
		fmt.Sprintf("script %s: %v", name, err),
		map[string]string{"Input": name, "Reason": err.Error()},
		err,
	)
}

// execution is the state of one script run.
type execution struct {
	ctx    context.Context
	runner *Runner

	mu  sync.Mutex
	out Result
}

func (e *execution) exec(name, source string) error {
	state := lua.NewState()
	openSandbox(state)
	e.registerDice(state)
	e.registerPrint(state)
	e.interruptOnDone(state)

	if err := lua.LoadBuffer(state, source, name, "t"); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return fmt.Errorf("run lua: %w", err)
	}
	if !state.IsNoneOrNil(-1) {
		value, _ := lua.ToStringMeta(state, -1)
		state.Pop(1)
		e.mu.Lock()
		e.out.Value = value
		e.mu.Unlock()
	}
	state.Pop(1)
	return nil
}

// hookInterval is how many Lua instructions run between cancellation checks.
const hookInterval = 1000

// interruptOnDone raises a Lua error once the run context ends, so loops that
// never call into dice still stop.
func (e *execution) interruptOnDone(state *lua.State) {
	lua.SetDebugHook(state, func(state *lua.State, _ lua.Debug) {
		if err := e.ctx.Err(); err != nil {
			lua.Errorf(state, "%s", err.Error())
		}
	}, lua.MaskCount, hookInterval)
}

func (e *execution) result() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.out
	if out.Output == nil {
		out.Output = []string{}
	}
	if out.Rolls == nil {
		out.Rolls = []*dicev1.RollResponse{}
	}
	return out
}

func openSandbox(state *lua.State) {
	libs := []lua.RegistryFunction{
		{Name: "_G", Function: lua.BaseOpen},
		{Name: "string", Function: lua.StringOpen},
		{Name: "table", Function: lua.TableOpen},
		{Name: "math", Function: lua.MathOpen},
	}
	for _, lib := range libs {
		lua.Require(state, lib.Name, lib.Function, true)
		state.Pop(1)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		state.PushNil()
		state.SetGlobal(name)
	}
}

func (e *execution) registerPrint(state *lua.State) {
	state.Register("print", func(state *lua.State) int {
		top := state.Top()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			s, _ := lua.ToStringMeta(state, i)
			state.Pop(1)
			parts = append(parts, s)
		}
		e.mu.Lock()
		e.out.Output = append(e.out.Output, strings.Join(parts, "\t"))
		e.mu.Unlock()
		return 0
	})
}
