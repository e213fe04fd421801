package passes

import (
    "github.com/tinyrange/peephole/internal/ir"
)

// algebraicIdentity removes additions of zero and multiplications by one.
// The identity operand may appear on either side. Every use of the erased
// instruction is retargeted to the surviving operand before the erase, and
// scanning resumes at the instruction that slid into the erased slot.
func algebraicIdentity(f *ir.Function) int {
    n := 0
    for _, b := range f.Blocks {
        for i := 0; i < len(b.Instrs); {
            ins := b.Instrs[i]
            var repl *ir.Value
            switch ins.Op {
            case ir.OpAdd:
                if ins.Args[1].IsConst(0) {
                    repl = ins.Args[0]
                } else if ins.Args[0].IsConst(0) {
                    repl = ins.Args[1]
                }
            case ir.OpMul:
                if ins.Args[1].IsConst(1) {
                    repl = ins.Args[0]
                } else if ins.Args[0].IsConst(1) {
                    repl = ins.Args[1]
                }
            }
            if repl == nil {
                i++
                continue
            }
            ins.ReplaceAllUsesWith(repl)
            b.Erase(ins)
            n++
        }
    }
    return n
}
