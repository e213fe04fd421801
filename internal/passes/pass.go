// Package passes implements single-scan peephole rewrites over the IR:
// algebraic identity elimination, strength reduction, and a bounded
// multi-instruction combiner. Each pass makes exactly one forward scan per
// invocation; iterating to a fixed point is the caller's business.
package passes

import (
    "fmt"

    "github.com/tinyrange/peephole/internal/ir"
)

// Preserved is the coarse analysis-invalidation signal a pass reports:
// either every previously computed analysis is still valid, or none are.
type Preserved int

const (
    PreserveAll  Preserved = iota // no rewrites; cached analyses stay valid
    PreserveNone                  // at least one rewrite; recompute everything
)

func (p Preserved) String() string {
    if p == PreserveAll { return "all" }
    return "none"
}

// Result reports one pass invocation.
type Result struct {
    Changed   bool
    Rewrites  int
    Preserved Preserved
}

// Pass is a single forward-scan rewrite registered under a string name.
// Fn returns the number of rewrites performed.
type Pass struct {
    Name     string
    Required bool // run even on functions marked noopt
    Fn       func(*ir.Function) int
}

// Run invokes the pass once on f.
func (p Pass) Run(f *ir.Function) Result {
    n := p.Fn(f)
    r := Result{Changed: n > 0, Rewrites: n, Preserved: PreserveAll}
    if r.Changed { r.Preserved = PreserveNone }
    return r
}

// Canonical pass names, used for lookup by external drivers.
const (
    AlgebraicIdentity = "algebraic-identity"
    StrengthReduction = "strength-reduction"
    MultiInstruction  = "multi-instruction"
)

var registry = map[string]Pass{}

// Register makes a pass available for lookup by name.
func Register(p Pass) {
    if p.Name == "" || p.Fn == nil {
        panic("passes: Register: incomplete pass")
    }
    if _, dup := registry[p.Name]; dup {
        panic(fmt.Sprintf("passes: Register: duplicate pass %q", p.Name))
    }
    registry[p.Name] = p
}

// Lookup resolves a registered pass by name.
func Lookup(name string) (Pass, bool) {
    p, ok := registry[name]
    return p, ok
}

// Default returns the built-in passes in their fixed default order. The
// order is a scheduling choice, not a correctness requirement.
func Default() []Pass {
    names := []string{AlgebraicIdentity, StrengthReduction, MultiInstruction}
    out := make([]Pass, 0, len(names))
    for _, n := range names {
        p, _ := Lookup(n)
        out = append(out, p)
    }
    return out
}

func init() {
    Register(Pass{Name: AlgebraicIdentity, Required: true, Fn: algebraicIdentity})
    Register(Pass{Name: StrengthReduction, Required: true, Fn: strengthReduce})
    Register(Pass{Name: MultiInstruction, Required: true, Fn: combineIncDec})
}
