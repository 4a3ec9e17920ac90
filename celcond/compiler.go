package celcond

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/c360studio/domainlang/doml"
)

const (
	// worldVar is the name of the single variable visible to expressions.
	worldVar = "world"

	// costLimit caps evaluation cost so a pathological expression cannot
	// stall validation.
	costLimit = 100000
)

// Compiler turns CEL expressions into doml conditions and predicates.
// Compiled programs are cached by expression text, so a rule set can be
// evaluated against many worlds without re-compilation. Safe for
// concurrent use.
type Compiler struct {
	env   *cel.Env
	mu    sync.RWMutex
	cache map[string]cel.Program
}

// NewCompiler builds a compiler with the standard environment.
func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable(worldVar, cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return &Compiler{
		env:   env,
		cache: make(map[string]cel.Program),
	}, nil
}

// Condition compiles expr into a doml.Condition. The expression must
// evaluate to a bool; true means the condition detected the situation it
// guards against, and the returned outcome carries description as its
// issue message.
func (c *Compiler) Condition(expr, description string) (doml.Condition, error) {
	prg, err := c.program(expr)
	if err != nil {
		return nil, err
	}
	return func(w *doml.World) (doml.ConditionOutcome, error) {
		hit, err := evalBool(prg, w)
		if err != nil {
			return doml.NoIssue(), err
		}
		if hit {
			return doml.Issues(description), nil
		}
		return doml.NoIssue(), nil
	}, nil
}

// Predicate compiles expr into a doml.Predicate. The expression must
// evaluate to a bool; true means the constraint holds.
func (c *Compiler) Predicate(expr string) (doml.Predicate, error) {
	prg, err := c.program(expr)
	if err != nil {
		return nil, err
	}
	return func(w *doml.World) (bool, error) {
		return evalBool(prg, w)
	}, nil
}

func (c *Compiler) program(expr string) (cel.Program, error) {
	c.mu.RLock()
	prg, hit := c.cache[expr]
	c.mu.RUnlock()
	if hit {
		return prg, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prg, hit = c.cache[expr]; hit {
		return prg, nil
	}

	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := c.env.Program(ast,
		cel.InterruptCheckFrequency(100),
		cel.CostLimit(costLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	c.cache[expr] = prg
	return prg, nil
}

func evalBool(prg cel.Program, w *doml.World) (bool, error) {
	out, _, err := prg.Eval(map[string]any{worldVar: w.Input()})
	if err != nil {
		return false, fmt.Errorf("eval: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression result is %T, want bool", out.Value())
	}
	return b, nil
}
