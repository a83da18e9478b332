// Package script runs user supplied JavaScript target filters
//
// A filter script defines a function accept(target) returning a boolean.
// The target argument is a plain object:
//
//	{entity, x, y, faction, factionName, pawn, kind, downed, prisoner,
//	 combatant, juvenile, mechanoid, animal, priority, threatDisabled}
package script

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/targeting"
	"go.uber.org/zap"
)

const defaultCallTimeout = 20 * time.Millisecond

var ErrNoFilterFunc = errors.New("script must define an accept function")

// Filter is a compiled script validator
// Calls are serialised, goja runtimes are not goroutine safe
type Filter struct {
	mu      sync.Mutex
	name    string
	vm      *goja.Runtime
	accept  goja.Callable
	timeout time.Duration

	logger       *zap.Logger
	factionNames func(core.FactionID) string
	reported     bool // Runtime failure already logged
}

// Option configures a Filter
type Option func(*Filter)

// WithLogger sets the logger for runtime failures
func WithLogger(l *zap.Logger) Option {
	return func(f *Filter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithFactionNames exposes faction names to the script
func WithFactionNames(names func(core.FactionID) string) Option {
	return func(f *Filter) { f.factionNames = names }
}

// WithTimeout bounds a single accept call
func WithTimeout(d time.Duration) Option {
	return func(f *Filter) { f.timeout = d }
}

// Load compiles a filter script from a file
func Load(path string, opts ...Option) (*Filter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter %s: %w", path, err)
	}
	return Compile(path, string(src), opts...)
}

// Compile compiles and runs the script once to define accept
func Compile(name, src string, opts ...Option) (*Filter, error) {
	f := &Filter{
		name:    name,
		vm:      goja.New(),
		timeout: defaultCallTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	prog, err := goja.Compile(name, src, true)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	if _, err := f.runGuarded(func() (goja.Value, error) { return f.vm.RunProgram(prog) }); err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	accept, ok := goja.AssertFunction(f.vm.Get("accept"))
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoFilterFunc)
	}
	f.accept = accept
	return f, nil
}

// Func adapts the filter to the targeting validator signature
func (f *Filter) Func() targeting.Filter {
	return f.Accept
}

// Accept runs the script, a runtime error rejects the candidate
func (f *Filter) Accept(t targeting.Target) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	arg := f.vm.ToValue(f.describe(t))
	res, err := f.runGuarded(func() (goja.Value, error) {
		return f.accept(goja.Undefined(), arg)
	})
	if err != nil {
		if !f.reported {
			f.reported = true
			f.logger.Warn("target filter failed",
				zap.String("script", f.name),
				zap.Uint64("target", uint64(t.Entity())),
				zap.Error(err))
		}
		return false
	}
	return res.ToBoolean()
}

// runGuarded interrupts the runtime when a call exceeds the timeout
func (f *Filter) runGuarded(fn func() (goja.Value, error)) (goja.Value, error) {
	if f.timeout > 0 {
		timer := time.AfterFunc(f.timeout, func() {
			f.vm.Interrupt("timeout")
		})
		defer func() {
			timer.Stop()
			f.vm.ClearInterrupt()
		}()
	}
	return fn()
}

func (f *Filter) describe(t targeting.Target) map[string]any {
	pos := t.Position()
	combat := t.Combat()
	obj := map[string]any{
		"entity":         uint64(t.Entity()),
		"x":              pos.X,
		"y":              pos.Y,
		"faction":        int(t.Faction()),
		"priority":       combat.PriorityFactor,
		"threatDisabled": combat.ThreatDisabled,
		"pawn":           false,
	}
	if f.factionNames != nil {
		obj["factionName"] = f.factionNames(t.Faction())
	}
	if p, ok := t.Pawn(); ok {
		obj["pawn"] = true
		obj["kind"] = p.Kind.String()
		obj["downed"] = p.Downed
		obj["prisoner"] = p.Prisoner
		obj["combatant"] = p.Combatant
		obj["juvenile"] = p.Juvenile
		obj["mechanoid"] = p.Kind == component.PawnMechanoid
		obj["animal"] = p.Kind == component.PawnAnimal
	}
	return obj
}
