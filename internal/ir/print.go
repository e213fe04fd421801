package ir

import (
    "fmt"
    "io"
    "strings"
)

// Textual form, round-trippable through the parser:
//
//     func @sum(x, y) {
//     entry:
//       v3 = add x, y
//       ret v3
//     }
//
// Printing is deterministic, so "pass left the IR unchanged" can be checked
// by comparing the printed form before and after.

// Ref returns the operand form of v: constants print as their payload,
// named values print their name, anonymous results print as v<id>.
func (v *Value) Ref() string {
    if v == nil { return "<nil>" }
    if v.Op == OpConst { return fmt.Sprintf("%d", v.AuxInt) }
    if v.Name != "" { return v.Name }
    return fmt.Sprintf("v%d", v.ID)
}

func (v *Value) String() string { return v.Ref() }

// LongString renders a full instruction line, e.g. "v3 = add x, 1".
func (v *Value) LongString() string {
    var sb strings.Builder
    if !v.Op.Void() {
        sb.WriteString(v.Ref())
        sb.WriteString(" = ")
    }
    sb.WriteString(v.Op.String())
    for i, a := range v.Args {
        if i == 0 {
            sb.WriteByte(' ')
        } else {
            sb.WriteString(", ")
        }
        sb.WriteString(a.Ref())
    }
    return sb.String()
}

// Fprint writes the textual form of f to w.
func Fprint(w io.Writer, f *Function) {
    var params []string
    for _, p := range f.Params { params = append(params, p.Ref()) }
    attr := ""
    if f.NoOpt { attr = " noopt" }
    fmt.Fprintf(w, "func @%s(%s)%s {\n", f.Name, strings.Join(params, ", "), attr)
    for _, b := range f.Blocks {
        fmt.Fprintf(w, "%s:\n", b.Name)
        for _, ins := range b.Instrs {
            fmt.Fprintf(w, "  %s\n", ins.LongString())
        }
    }
    fmt.Fprintln(w, "}")
}

func (f *Function) String() string {
    var sb strings.Builder
    Fprint(&sb, f)
    return sb.String()
}

func (m *Module) String() string {
    var sb strings.Builder
    for i, f := range m.Funcs {
        if i > 0 { sb.WriteByte('\n') }
        Fprint(&sb, f)
    }
    return sb.String()
}
