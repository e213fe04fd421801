package passes

import (
    "github.com/tinyrange/peephole/internal/ir"
)

// combineIncDec recognizes an increment whose result is decremented right
// back, and rewires the decrement's consumers to the original base value:
//
//   a = add b, 1                 a = add b, 1
//   c = sub a, 1          or     store a, @slot
//                                t = load @slot
//                                c = sub t, 1
//
// In both shapes every use of c ends up observing b; the sub is erased and
// the rest of the chain is left for dead-code cleanup elsewhere. The window
// is at most four consecutive instructions; any unrelated instruction inside
// it, a different slot, or a constant other than 1 abandons the match and
// the IR stays untouched for that window.
func combineIncDec(f *ir.Function) int {
    n := 0
    for _, b := range f.Blocks {
        for i := 0; i < len(b.Instrs); {
            base := addBase(b.Instrs[i])
            if base == nil {
                i++
                continue
            }
            add := b.Instrs[i]

            // direct: the very next instruction is the sub
            if sub := subOneOf(b, i+1, add); sub != nil {
                sub.ReplaceAllUsesWith(base)
                b.Erase(sub)
                n++
                i++
                continue
            }

            // round trip: store a, slot; t = load slot; c = sub t, 1
            if i+2 < len(b.Instrs) {
                st, ld := b.Instrs[i+1], b.Instrs[i+2]
                if st.Op == ir.OpStore && st.Args[0] == add && ld.Op == ir.OpLoad && ld.Args[0] == st.Args[1] {
                    if sub := subOneOf(b, i+3, ld); sub != nil {
                        sub.ReplaceAllUsesWith(base)
                        b.Erase(sub)
                        n++
                        i += 3 // resume after the store/load that stay behind
                        continue
                    }
                }
            }
            i++
        }
    }
    return n
}

// addBase returns b when ins is "add b, 1", with the constant on either
// operand side, and nil otherwise.
func addBase(ins *ir.Value) *ir.Value {
    if ins.Op != ir.OpAdd { return nil }
    if ins.Args[1].IsConst(1) { return ins.Args[0] }
    if ins.Args[0].IsConst(1) { return ins.Args[1] }
    return nil
}

// subOneOf returns the instruction at index i when it is "sub v, 1".
func subOneOf(b *ir.Block, i int, v *ir.Value) *ir.Value {
    if i >= len(b.Instrs) { return nil }
    s := b.Instrs[i]
    if s.Op == ir.OpSub && s.Args[0] == v && s.Args[1].IsConst(1) { return s }
    return nil
}
