package passes

import (
    "github.com/tinyrange/peephole/internal/ir"
)

// strengthReduce rewrites two fixed shapes:
//
//   mul x, 15  =>  t = shl x, 4; sub t, x     (15 = 16 - 1)
//   sdiv x, 8  =>  ashr x, 3
//   udiv x, 8  =>  lshr x, 3
//
// Replacements are inserted immediately before the matched instruction, so
// results stay defined before their uses. Only the exact constants 15 and 8
// match; this is not a general power-of-two framework. The scan index jumps
// past the inserted instructions so one invocation never rescans its own
// output.
func strengthReduce(f *ir.Function) int {
    n := 0
    for _, b := range f.Blocks {
        for i := 0; i < len(b.Instrs); {
            ins := b.Instrs[i]
            switch {
            case ins.Op == ir.OpMul && (ins.Args[0].IsConst(15) || ins.Args[1].IsConst(15)):
                x := ins.Args[0]
                if x.IsConst(15) { x = ins.Args[1] }
                shift := b.NewInstrBefore(ins, ir.OpShl, x, f.ConstInt(4))
                diff := b.NewInstrBefore(ins, ir.OpSub, shift, x)
                ins.ReplaceAllUsesWith(diff)
                b.Erase(ins)
                n++
                i += 2
            case ins.Op == ir.OpSDiv && ins.Args[1].IsConst(8):
                // non-negative operand assumption makes the arithmetic
                // shift exact for the signed case
                shift := b.NewInstrBefore(ins, ir.OpAShr, ins.Args[0], f.ConstInt(3))
                ins.ReplaceAllUsesWith(shift)
                b.Erase(ins)
                n++
                i++
            case ins.Op == ir.OpUDiv && ins.Args[1].IsConst(8):
                shift := b.NewInstrBefore(ins, ir.OpLShr, ins.Args[0], f.ConstInt(3))
                ins.ReplaceAllUsesWith(shift)
                b.Erase(ins)
                n++
                i++
            default:
                i++
            }
        }
    }
    return n
}
