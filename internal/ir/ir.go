// Package ir implements a small SSA intermediate representation: functions
// hold ordered basic blocks, blocks hold ordered instructions, and every
// instruction result is a Value with an explicit use list. Rewrite passes
// mutate instruction lists in place through the insert/erase/replace
// operations defined here.
package ir

import "fmt"

type Module struct {
    Name  string
    Funcs []*Function
}

func NewModule(name string) *Module { return &Module{Name: name} }

// Op is an instruction opcode. Constants and externs are modelled as ops
// too, so that every operand slot holds a *Value regardless of kind.
type Op int

const (
    OpInvalid Op = iota

    OpConst  // integer constant; AuxInt = value, Bits = width
    OpExtern // opaque external value (argument, global, memory slot); Name set

    OpAdd
    OpSub
    OpMul
    OpSDiv
    OpUDiv
    OpShl
    OpLShr
    OpAShr

    OpStore // store Args[0] to slot Args[1]; void
    OpLoad  // load from slot Args[0]

    OpRet // return Args[0]; void

    opCount // sentinel; must be last
)

type opInfo struct {
    name string
    void bool // produces no result
}

var opInfoTable = [opCount]opInfo{
    OpInvalid: {name: "invalid"},
    OpConst:   {name: "const"},
    OpExtern:  {name: "extern"},
    OpAdd:     {name: "add"},
    OpSub:     {name: "sub"},
    OpMul:     {name: "mul"},
    OpSDiv:    {name: "sdiv"},
    OpUDiv:    {name: "udiv"},
    OpShl:     {name: "shl"},
    OpLShr:    {name: "lshr"},
    OpAShr:    {name: "ashr"},
    OpStore:   {name: "store", void: true},
    OpLoad:    {name: "load"},
    OpRet:     {name: "ret", void: true},
}

func (op Op) String() string {
    if op < 0 || op >= opCount { return fmt.Sprintf("op(%d)", int(op)) }
    return opInfoTable[op].name
}

// Void reports whether the op produces no result value.
func (op Op) Void() bool { return opInfoTable[op].void }

// OpByName resolves a textual opcode. Returns OpInvalid for unknown names.
func OpByName(name string) Op {
    for op := OpAdd; op < opCount; op++ {
        if opInfoTable[op].name == name { return op }
    }
    return OpInvalid
}

type ID int32

// Use identifies one operand slot referencing a value.
type Use struct {
    User *Value // instruction whose operand references the value
    Slot int    // index into User.Args
}

// Value is an SSA computation, a constant, or an opaque external. For
// instruction values, Block is the owning block and Args are the operands.
// Constants and externs have a nil Block and are never erased.
type Value struct {
    ID     ID
    Op     Op
    Args   []*Value
    AuxInt int64  // constant payload
    Bits   int    // constant bit width
    Name   string // extern name or parsed result name
    Block  *Block

    uses []Use
}

// IsConst reports whether v is the integer constant k, compared by value.
// Two distinct constant Values with equal payloads match.
func (v *Value) IsConst(k int64) bool { return v.Op == OpConst && v.AuxInt == k }

// NumUses returns the number of operand slots currently referencing v.
func (v *Value) NumUses() int { return len(v.uses) }

// Uses returns a copy of v's use set.
func (v *Value) Uses() []Use { return append([]Use(nil), v.uses...) }

func (v *Value) addUse(user *Value, slot int) {
    v.uses = append(v.uses, Use{User: user, Slot: slot})
}

func (v *Value) dropUse(user *Value, slot int) {
    for i, u := range v.uses {
        if u.User == user && u.Slot == slot {
            v.uses[i] = v.uses[len(v.uses)-1]
            v.uses = v.uses[:len(v.uses)-1]
            return
        }
    }
    panic("ir: dropUse: use not found")
}

// SetArg replaces operand i of v, keeping both use lists consistent.
func (v *Value) SetArg(i int, w *Value) {
    v.Args[i].dropUse(v, i)
    v.Args[i] = w
    w.addUse(v, i)
}

// ReplaceAllUsesWith retargets every use of v to w in one step. After the
// call v has no uses and may be erased.
func (v *Value) ReplaceAllUsesWith(w *Value) {
    if v == w { return }
    for _, u := range v.uses {
        u.User.Args[u.Slot] = w
        w.uses = append(w.uses, u)
    }
    v.uses = nil
}

type Block struct {
    Name   string
    Instrs []*Value
    Func   *Function
}

type Function struct {
    Name   string
    Params []*Value
    Blocks []*Block
    NoOpt  bool // skip non-required optimization passes

    nextID ID
}

func NewFunction(name string) *Function { return &Function{Name: name} }

func (f *Function) NewBlock(name string) *Block {
    b := &Block{Name: name, Func: f}
    f.Blocks = append(f.Blocks, b)
    return b
}

// Entry returns the first block, or nil for a bodyless function.
func (f *Function) Entry() *Block {
    if len(f.Blocks) == 0 { return nil }
    return f.Blocks[0]
}

func (f *Function) newValue(op Op, args []*Value) *Value {
    f.nextID++
    v := &Value{ID: f.nextID, Op: op}
    for i, a := range args {
        v.Args = append(v.Args, a)
        a.addUse(v, i)
    }
    return v
}

// ConstInt returns a fresh 32-bit constant value. Constant identity is by
// (bits, payload) value, so passes never need a shared instance.
func (f *Function) ConstInt(k int64) *Value {
    f.nextID++
    return &Value{ID: f.nextID, Op: OpConst, AuxInt: k, Bits: 32}
}

// Extern returns a fresh opaque external value (argument, global, slot).
func (f *Function) Extern(name string) *Value {
    f.nextID++
    return &Value{ID: f.nextID, Op: OpExtern, Name: name}
}

// NewParam appends a named function argument.
func (f *Function) NewParam(name string) *Value {
    p := f.Extern(name)
    f.Params = append(f.Params, p)
    return p
}

func (b *Block) indexOf(v *Value) int {
    for i, ins := range b.Instrs {
        if ins == v { return i }
    }
    return -1
}

// Append places a new instruction at the end of the block.
func (b *Block) Append(op Op, args ...*Value) *Value {
    v := b.Func.newValue(op, args)
    v.Block = b
    b.Instrs = append(b.Instrs, v)
    return v
}

// NewInstrBefore creates a new instruction and inserts it immediately before
// pos, so the result is defined before any use that replaces pos.
func (b *Block) NewInstrBefore(pos *Value, op Op, args ...*Value) *Value {
    i := b.indexOf(pos)
    if i < 0 { panic("ir: NewInstrBefore: position not in block") }
    v := b.Func.newValue(op, args)
    v.Block = b
    b.Instrs = append(b.Instrs, nil)
    copy(b.Instrs[i+1:], b.Instrs[i:])
    b.Instrs[i] = v
    return v
}

// Erase removes v from its block and releases its operand uses. Erasing a
// value with outstanding uses would leave dangling operand references, so it
// panics; callers must ReplaceAllUsesWith first.
func (b *Block) Erase(v *Value) {
    if len(v.uses) > 0 {
        panic(fmt.Sprintf("ir: erase of %s with %d outstanding uses", v, len(v.uses)))
    }
    i := b.indexOf(v)
    if i < 0 { panic("ir: erase: value not in block") }
    for slot, a := range v.Args {
        a.dropUse(v, slot)
    }
    copy(b.Instrs[i:], b.Instrs[i+1:])
    b.Instrs = b.Instrs[:len(b.Instrs)-1]
    v.Block = nil
}
