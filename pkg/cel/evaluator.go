package cel

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Evaluator compiles and runs CEL filter expressions against flattened events.
// Expressions see a single `event` variable, a string-keyed map holding every
// flattened field, e.g. `event.status == "success" && event.duration_ms > 500.0`.
type Evaluator struct {
	env *cel.Env
}

func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("event", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Evaluator{env: env}, nil
}

func (e *Evaluator) ValidateFilterExpression(expression string) error {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("CEL expression validation failed: %w", issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return fmt.Errorf("filter expression must return bool, got %v", ast.OutputType())
	}

	return nil
}

// FilterProgram is a compiled filter, safe for reuse across events.
type FilterProgram struct {
	program cel.Program
}

// CompileFilter compiles an expression once so it can be evaluated per event.
func (e *Evaluator) CompileFilter(expression string) (*FilterProgram, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression: %w", issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter expression must return bool, got %v", ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &FilterProgram{program: program}, nil
}

func (p *FilterProgram) Eval(ctx context.Context, event models.FlatEvent) (bool, error) {
	vars := map[string]interface{}{
		"event": map[string]interface{}(event),
	}

	result, _, err := p.program.ContextEval(ctx, vars)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL expression: %w", err)
	}

	boolVal, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression did not return bool, got %T", result.Value())
	}

	return boolVal, nil
}

// EvaluateFilter compiles and evaluates in one call. Prefer CompileFilter when
// the same expression runs against many events.
func (e *Evaluator) EvaluateFilter(ctx context.Context, expression string, event models.FlatEvent) (bool, error) {
	program, err := e.CompileFilter(expression)
	if err != nil {
		return false, err
	}
	return program.Eval(ctx, event)
}
