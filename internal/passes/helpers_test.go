package passes_test

import (
	. "github.com/onsi/gomega"

	"github.com/tinyrange/peephole/internal/ir"
	"github.com/tinyrange/peephole/internal/parser"
	"github.com/tinyrange/peephole/internal/passes"
)

// parseFn builds a single function from its textual form.
func parseFn(src string) *ir.Function {
	m, err := parser.ParseFile("test.ir", src)
	Expect(err).NotTo(HaveOccurred())
	Expect(m.Funcs).To(HaveLen(1))
	return m.Funcs[0]
}

// runPass looks up a registered pass by name and runs it once on f.
func runPass(name string, f *ir.Function) passes.Result {
	p, ok := passes.Lookup(name)
	Expect(ok).To(BeTrue(), "pass %s not registered", name)
	return p.Run(f)
}

// opsOf flattens the function body to opcode names, in scan order.
func opsOf(f *ir.Function) []string {
	var ops []string
	for _, b := range f.Blocks {
		for _, ins := range b.Instrs {
			ops = append(ops, ins.Op.String())
		}
	}
	return ops
}

// evalFn evaluates f and fails the spec on evaluation errors.
func evalFn(f *ir.Function, externs map[string]int64) int64 {
	k, err := f.Eval(externs)
	Expect(err).NotTo(HaveOccurred())
	return k
}
