// Package expr parses and evaluates the condition expressions attached to
// document spans and blocks.
package expr

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jorge-barreto/casedoc/internal/metrics"
)

// Evaluator decides fragment visibility. The zero value logs nowhere.
type Evaluator struct {
	Log     zerolog.Logger
	Metrics *metrics.Metrics
}

// Evaluate reports whether expression holds for ctx. An empty expression
// always holds. Parse and evaluation errors are logged and fail open.
func (e *Evaluator) Evaluate(expression string, ctx map[string]string) bool {
	if strings.TrimSpace(expression) == "" {
		return true
	}
	v, err := Eval(expression, ctx)
	e.Metrics.ExpressionEvaluated(err != nil)
	if err != nil {
		e.Log.Warn().Err(err).Str("expression", expression).Msg("condition failed, showing content")
		return true
	}
	return v.Truthy()
}

// Evaluate uses the global zerolog logger.
func Evaluate(expression string, ctx map[string]string) bool {
	e := Evaluator{Log: log.Logger}
	return e.Evaluate(expression, ctx)
}

// Eval parses and evaluates expression, returning any error to the caller.
// Panics inside the evaluator are turned into errors.
func Eval(expression string, ctx map[string]string) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = Null, fmt.Errorf("evaluating %q: %v", expression, r)
		}
	}()
	n, err := Parse(expression)
	if err != nil {
		return Null, err
	}
	return n.Eval(ctx)
}
