package passes_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tinyrange/peephole/internal/ir"
	"github.com/tinyrange/peephole/internal/passes"
)

var _ = Describe("MultiInstruction", func() {
	It("rewires a direct add/sub chain to the base value", func() {
		f := parseFn(`func @f(b) {
entry:
  a = add b, 1
  c = sub a, 1
  ret c
}
`)
		res := runPass(passes.MultiInstruction, f)

		Expect(res.Changed).To(BeTrue())
		Expect(res.Preserved).To(Equal(passes.PreserveNone))
		Expect(opsOf(f)).To(Equal([]string{"add", "ret"}), "only the sub is erased")
		ret := f.Entry().Instrs[1]
		Expect(ret.Args[0].Name).To(Equal("b"))
		Expect(evalFn(f, map[string]int64{"b": 10})).To(Equal(int64(10)))
	})

	It("matches the increment constant on either side", func() {
		f := parseFn(`func @f(b) {
entry:
  a = add 1, b
  c = sub a, 1
  ret c
}
`)
		Expect(runPass(passes.MultiInstruction, f).Changed).To(BeTrue())
		Expect(evalFn(f, map[string]int64{"b": 3})).To(Equal(int64(3)))
	})

	It("matches through a store/load round trip of the same slot", func() {
		f := parseFn(`func @f(b) {
entry:
  a = add b, 1
  store a, @slot
  t = load @slot
  c = sub t, 1
  ret c
}
`)
		res := runPass(passes.MultiInstruction, f)

		Expect(res.Changed).To(BeTrue())
		Expect(opsOf(f)).To(Equal([]string{"add", "store", "load", "ret"}))
		Expect(f.Entry().Instrs[3].Args[0].Name).To(Equal("b"))
		Expect(evalFn(f, map[string]int64{"b": 10})).To(Equal(int64(10)))
	})

	DescribeTable("partial matches leave the IR untouched",
		func(src string) {
			f := parseFn(src)
			before := f.String()
			res := runPass(passes.MultiInstruction, f)

			Expect(res.Changed).To(BeFalse())
			Expect(res.Preserved).To(Equal(passes.PreserveAll))
			Expect(f.String()).To(Equal(before), "IR must be byte-for-byte unchanged")
		},
		Entry("sub constant is not 1", `func @f(b) {
entry:
  a = add b, 1
  c = sub a, 2
  ret c
}
`),
		Entry("add constant is not 1", `func @f(b) {
entry:
  a = add b, 2
  c = sub a, 1
  ret c
}
`),
		Entry("unrelated instruction inside the window", `func @f(b, y) {
entry:
  a = add b, 1
  u = mul y, y
  c = sub a, 1
  ret c
}
`),
		Entry("load from a different slot", `func @f(b) {
entry:
  k = add b, 7
  store k, @other
  a = add b, 1
  store a, @slot
  t = load @other
  c = sub t, 1
  ret c
}
`),
		Entry("sub consumes a different value", `func @f(b, y) {
entry:
  a = add b, 1
  c = sub y, 1
  ret c
}
`),
		Entry("add with no matching sub", `func @f(b) {
entry:
  a = add b, 1
  ret a
}
`),
	)

	It("combines several chains in one scan", func() {
		f := parseFn(`func @f(b) {
entry:
  a1 = add b, 1
  c1 = sub a1, 1
  a2 = add c1, 1
  store a2, @slot
  t = load @slot
  c2 = sub t, 1
  ret c2
}
`)
		res := runPass(passes.MultiInstruction, f)

		Expect(res.Rewrites).To(Equal(2))
		Expect(evalFn(f, map[string]int64{"b": 99})).To(Equal(int64(99)))
		Expect(ir.Verify(f)).To(Succeed())
	})

	It("is idempotent", func() {
		f := parseFn(`func @f(b) {
entry:
  a = add b, 1
  c = sub a, 1
  ret c
}
`)
		Expect(runPass(passes.MultiInstruction, f).Changed).To(BeTrue())
		Expect(runPass(passes.MultiInstruction, f).Changed).To(BeFalse())
	})
})
