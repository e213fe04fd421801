package ir

import "fmt"

// Verify checks structural invariants of f: operands are defined before
// their uses, every operand slot has a matching entry in the operand's use
// list, and no operand references an instruction that was erased. Rewrite
// drivers run it around passes to catch dangling references early.
func Verify(f *Function) error {
    seen := map[*Value]bool{}
    for _, b := range f.Blocks {
        for _, ins := range b.Instrs {
            if ins.Block != b {
                return fmt.Errorf("%s: instruction %s has wrong owning block", f.Name, ins.Ref())
            }
            for slot, a := range ins.Args {
                if a == nil {
                    return fmt.Errorf("%s: nil operand %d of %s", f.Name, slot, ins.LongString())
                }
                switch a.Op {
                case OpConst, OpExtern:
                    // always available
                default:
                    if a.Block == nil {
                        return fmt.Errorf("%s: operand %s of %s was erased", f.Name, a.Ref(), ins.LongString())
                    }
                    if !seen[a] {
                        return fmt.Errorf("%s: %s used before definition in %s", f.Name, a.Ref(), ins.LongString())
                    }
                }
                if !hasUse(a, ins, slot) {
                    return fmt.Errorf("%s: missing use entry for operand %d of %s", f.Name, slot, ins.LongString())
                }
            }
            for _, u := range ins.uses {
                if u.Slot >= len(u.User.Args) || u.User.Args[u.Slot] != ins {
                    return fmt.Errorf("%s: stale use entry on %s", f.Name, ins.Ref())
                }
            }
            seen[ins] = true
        }
    }
    return nil
}

func hasUse(v *Value, user *Value, slot int) bool {
    for _, u := range v.uses {
        if u.User == user && u.Slot == slot { return true }
    }
    return false
}
