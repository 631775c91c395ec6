package render

import (
	"github.com/rs/zerolog/log"

	"github.com/jorge-barreto/casedoc/internal/expr"
	"github.com/jorge-barreto/casedoc/internal/metrics"
)

// ConditionAttr is the attribute carrying a fragment's condition expression
// on both span marks and block nodes.
const ConditionAttr = "data-condition-expression"

// HiddenClass is the display hint attached to fragments whose condition is
// false. Hidden fragments keep their content.
const HiddenClass = "conditional-hidden"

// Kind is the granularity of a fragment.
type Kind int

const (
	KindBlock Kind = iota
	KindSpan
)

func (k Kind) String() string {
	if k == KindSpan {
		return "span"
	}
	return "block"
}

// Fragment is an inline span or a block of content, optionally gated by a
// condition. A nil Condition means always visible.
type Fragment struct {
	ID        string
	Kind      Kind
	Condition *string
	Content   string
	Children  []*Fragment
}

// Visibility is the render decision for one fragment.
type Visibility struct {
	Fragment *Fragment
	// Own is the result of the fragment's condition alone.
	Own bool
	// Visible is Own and every ancestor visible.
	Visible bool
	// Class is HiddenClass when the fragment is hidden, empty otherwise.
	Class string
}

// Resolver evaluates fragment conditions. Context is passed on every call;
// the resolver holds no render state between calls.
type Resolver struct {
	Evaluator *expr.Evaluator
	Metrics   *metrics.Metrics
}

// Resolve returns a visibility decision for every fragment in the tree, in
// depth-first order. The tree itself is not modified.
func (r *Resolver) Resolve(fragments []*Fragment, ctx map[string]string) []Visibility {
	var out []Visibility
	r.walk(fragments, ctx, true, &out)
	return out
}

func (r *Resolver) walk(fragments []*Fragment, ctx map[string]string, parentVisible bool, out *[]Visibility) {
	for _, f := range fragments {
		own := true
		if f.Condition != nil {
			own = r.evaluator().Evaluate(*f.Condition, ctx)
		}
		v := Visibility{Fragment: f, Own: own, Visible: own && parentVisible}
		if !v.Visible {
			v.Class = HiddenClass
			if !own {
				r.Metrics.FragmentHidden()
			}
		}
		*out = append(*out, v)
		r.walk(f.Children, ctx, v.Visible, out)
	}
}

// Visible returns the fragments that should be displayed.
func (r *Resolver) Visible(fragments []*Fragment, ctx map[string]string) []*Fragment {
	var shown []*Fragment
	for _, v := range r.Resolve(fragments, ctx) {
		if v.Visible {
			shown = append(shown, v.Fragment)
		}
	}
	return shown
}

// Hidden returns the decisions for fragments whose own condition is false,
// which is what a host editor turns into hide decorations.
func (r *Resolver) Hidden(fragments []*Fragment, ctx map[string]string) []Visibility {
	var hidden []Visibility
	for _, v := range r.Resolve(fragments, ctx) {
		if !v.Own {
			hidden = append(hidden, v)
		}
	}
	return hidden
}

func (r *Resolver) evaluator() *expr.Evaluator {
	if r.Evaluator == nil {
		return &expr.Evaluator{Log: log.Logger, Metrics: r.Metrics}
	}
	return r.Evaluator
}
