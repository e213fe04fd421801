package passes_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tinyrange/peephole/internal/ir"
	"github.com/tinyrange/peephole/internal/passes"
)

var _ = Describe("Run", func() {
	It("OR-combines the changed flags of the pipeline", func() {
		// only strength reduction has a match here
		f := parseFn(`func @f(x) {
entry:
  v1 = mul x, 15
  ret v1
}
`)
		res, err := passes.Run(f, passes.Default(), passes.Config{Verify: true})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Changed).To(BeTrue())
		Expect(res.Preserved).To(Equal(passes.PreserveNone))
		Expect(evalFn(f, map[string]int64{"x": 3})).To(Equal(int64(45)))
	})

	It("reports all analyses preserved when nothing matched", func() {
		f := parseFn(`func @f(x, y) {
entry:
  v1 = add x, y
  ret v1
}
`)
		before := f.String()
		res, err := passes.Run(f, passes.Default(), passes.Config{Verify: true})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Changed).To(BeFalse())
		Expect(res.Preserved).To(Equal(passes.PreserveAll))
		Expect(f.String()).To(Equal(before))
	})

	It("lets passes that ran earlier feed the combiner", func() {
		// add x, 0 collapses first, exposing the inc/dec chain
		f := parseFn(`func @f(b) {
entry:
  b2 = add b, 0
  a = add b2, 1
  c = sub a, 1
  ret c
}
`)
		res, err := passes.Run(f, passes.Default(), passes.Config{})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Changed).To(BeTrue())
		Expect(evalFn(f, map[string]int64{"b": 4})).To(Equal(int64(4)))
	})

	It("runs required passes on noopt functions", func() {
		f := parseFn(`func @f(x) noopt {
entry:
  v1 = add x, 0
  ret v1
}
`)
		res, err := passes.Run(f, passes.Default(), passes.Config{})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Changed).To(BeTrue(), "built-in passes declare themselves required")
	})

	It("skips non-required passes on noopt functions", func() {
		ran := false
		counter := passes.Pass{
			Name: "count-invocations",
			Fn: func(*ir.Function) int {
				ran = true
				return 0
			},
		}

		f := parseFn(`func @f(x) noopt {
entry:
  v1 = add x, 0
  ret v1
}
`)
		_, err := passes.Run(f, []passes.Pass{counter}, passes.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(ran).To(BeFalse())

		g := parseFn(`func @g(x) {
entry:
  v1 = add x, 0
  ret v1
}
`)
		_, err = passes.Run(g, []passes.Pass{counter}, passes.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(ran).To(BeTrue())
	})

	It("respects an overridden pass order", func() {
		// combiner first: the chain is matched before strength reduction
		// rewrites anything else
		f := parseFn(`func @f(b) {
entry:
  a = add b, 1
  c = sub a, 1
  v1 = mul c, 15
  ret v1
}
`)
		multi, _ := passes.Lookup(passes.MultiInstruction)
		strength, _ := passes.Lookup(passes.StrengthReduction)
		res, err := passes.Run(f, []passes.Pass{multi, strength}, passes.Config{Verify: true})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Rewrites).To(Equal(2))
		Expect(evalFn(f, map[string]int64{"b": 2})).To(Equal(int64(30)))
	})

	It("shares no rewrite state between invocations", func() {
		f := parseFn(`func @f(x) {
entry:
  v1 = mul x, 15
  ret v1
}
`)
		first, err := passes.Run(f, passes.Default(), passes.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Changed).To(BeTrue())

		second, err := passes.Run(f, passes.Default(), passes.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Changed).To(BeFalse())
		Expect(second.Preserved).To(Equal(passes.PreserveAll))
	})

	It("registers the three built-in passes under canonical names", func() {
		for _, name := range []string{
			passes.AlgebraicIdentity,
			passes.StrengthReduction,
			passes.MultiInstruction,
		} {
			p, ok := passes.Lookup(name)
			Expect(ok).To(BeTrue())
			Expect(p.Name).To(Equal(name))
			Expect(p.Required).To(BeTrue())
		}
		_, ok := passes.Lookup("no-such-pass")
		Expect(ok).To(BeFalse())
	})
})
