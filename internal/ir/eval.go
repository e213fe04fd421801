package ir

import "fmt"

// Eval executes a straight-line function over concrete extern bindings and
// returns the value of the first ret reached. Blocks run in order; there is
// no branching in this op set. Used to check that a rewrite preserved the
// computed result.
func (f *Function) Eval(externs map[string]int64) (int64, error) {
    vals := map[*Value]int64{}
    mem := map[*Value]int64{}

    operand := func(v *Value) (int64, error) {
        switch v.Op {
        case OpConst:
            return v.AuxInt, nil
        case OpExtern:
            k, ok := externs[v.Name]
            if !ok { return 0, fmt.Errorf("unbound extern %s", v.Name) }
            return k, nil
        default:
            k, ok := vals[v]
            if !ok { return 0, fmt.Errorf("use of %s before definition", v.Ref()) }
            return k, nil
        }
    }

    for _, b := range f.Blocks {
        for _, ins := range b.Instrs {
            switch ins.Op {
            case OpStore:
                k, err := operand(ins.Args[0])
                if err != nil { return 0, err }
                mem[ins.Args[1]] = k
            case OpLoad:
                k, ok := mem[ins.Args[0]]
                if !ok { return 0, fmt.Errorf("load from unwritten slot %s", ins.Args[0].Ref()) }
                vals[ins] = k
            case OpRet:
                return operand(ins.Args[0])
            default:
                a, err := operand(ins.Args[0])
                if err != nil { return 0, err }
                c, err := operand(ins.Args[1])
                if err != nil { return 0, err }
                var k int64
                switch ins.Op {
                case OpAdd:
                    k = a + c
                case OpSub:
                    k = a - c
                case OpMul:
                    k = a * c
                case OpSDiv:
                    if c == 0 { return 0, fmt.Errorf("sdiv by zero in %s", ins.LongString()) }
                    k = a / c
                case OpUDiv:
                    if c == 0 { return 0, fmt.Errorf("udiv by zero in %s", ins.LongString()) }
                    k = int64(uint64(a) / uint64(c))
                case OpShl:
                    k = a << uint64(c)
                case OpLShr:
                    k = int64(uint64(a) >> uint64(c))
                case OpAShr:
                    k = a >> uint64(c)
                default:
                    return 0, fmt.Errorf("cannot evaluate %s", ins.LongString())
                }
                vals[ins] = k
            }
        }
    }
    return 0, fmt.Errorf("function %s has no ret", f.Name)
}
