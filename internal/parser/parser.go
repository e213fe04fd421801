// Package parser reads the textual IR form produced by ir.Fprint and builds
// the in-memory representation. The format is line oriented:
//
//     func @name(x, y) {
//     entry:
//       v1 = add x, 1
//       store v1, @slot
//       v2 = load @slot
//       ret v2
//     }
package parser

import (
    "fmt"
    "strconv"

    "github.com/tinyrange/peephole/internal/ir"
    "github.com/tinyrange/peephole/internal/lexer"
)

type Parser struct {
    lx  *lexer.Lexer
    tok lexer.Token

    f       *ir.Function
    names   map[string]*ir.Value // params and instruction results
    globals map[string]*ir.Value // @name externs, interned per function
}

func ParseFile(filename, src string) (*ir.Module, error) {
    p := &Parser{lx: lexer.New(src)}
    p.next()
    m := ir.NewModule(filename)
    for p.tok.Type != lexer.EOF {
        f, err := p.parseFunc()
        if err != nil { return nil, err }
        m.Funcs = append(m.Funcs, f)
    }
    return m, nil
}

func (p *Parser) next() { p.tok = p.lx.Next() }

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
    if p.tok.Type != tt {
        return lexer.Token{}, fmt.Errorf("expected %v, got %q at %d:%d", tt, p.tok.Lex, p.tok.Line, p.tok.Col)
    }
    t := p.tok
    p.next()
    return t, nil
}

func (p *Parser) errf(format string, args ...interface{}) error {
    return fmt.Errorf("%s at %d:%d", fmt.Sprintf(format, args...), p.tok.Line, p.tok.Col)
}

func (p *Parser) parseFunc() (*ir.Function, error) {
    if _, err := p.expect(lexer.KW_FUNC); err != nil { return nil, err }
    nameTok, err := p.expect(lexer.GLOBAL)
    if err != nil { return nil, err }
    p.f = ir.NewFunction(nameTok.Lex)
    p.names = map[string]*ir.Value{}
    p.globals = map[string]*ir.Value{}

    if _, err := p.expect(lexer.LPAREN); err != nil { return nil, err }
    if p.tok.Type == lexer.IDENT {
        for {
            t, err := p.expect(lexer.IDENT)
            if err != nil { return nil, err }
            if _, dup := p.names[t.Lex]; dup {
                return nil, fmt.Errorf("duplicate parameter %s at %d:%d", t.Lex, t.Line, t.Col)
            }
            p.names[t.Lex] = p.f.NewParam(t.Lex)
            if p.tok.Type != lexer.COMMA { break }
            p.next()
        }
    }
    if _, err := p.expect(lexer.RPAREN); err != nil { return nil, err }
    if p.tok.Type == lexer.IDENT && p.tok.Lex == "noopt" {
        p.f.NoOpt = true
        p.next()
    }
    if _, err := p.expect(lexer.LBRACE); err != nil { return nil, err }

    var b *ir.Block
    for p.tok.Type != lexer.RBRACE {
        t, err := p.expect(lexer.IDENT)
        if err != nil { return nil, err }
        if p.tok.Type == lexer.COLON {
            p.next()
            b = p.f.NewBlock(t.Lex)
            continue
        }
        if b == nil {
            return nil, fmt.Errorf("instruction before first block label at %d:%d", t.Line, t.Col)
        }
        if err := p.parseInstr(b, t); err != nil { return nil, err }
    }
    p.next() // consume }
    return p.f, nil
}

// parseInstr consumes one instruction. first is the already-read leading
// identifier: either a result name (followed by '=') or a void opcode.
func (p *Parser) parseInstr(b *ir.Block, first lexer.Token) error {
    result := ""
    opTok := first
    if p.tok.Type == lexer.ASSIGN {
        p.next()
        result = first.Lex
        t, err := p.expect(lexer.IDENT)
        if err != nil { return err }
        opTok = t
    }
    op := ir.OpByName(opTok.Lex)
    if op == ir.OpInvalid {
        return fmt.Errorf("unknown opcode %q at %d:%d", opTok.Lex, opTok.Line, opTok.Col)
    }
    if op.Void() && result != "" {
        return fmt.Errorf("%s produces no result at %d:%d", op, opTok.Line, opTok.Col)
    }
    if !op.Void() && result == "" {
        return fmt.Errorf("%s needs a result name at %d:%d", op, opTok.Line, opTok.Col)
    }

    args, err := p.parseOperands()
    if err != nil { return err }
    want := 2
    if op == ir.OpLoad || op == ir.OpRet { want = 1 }
    if len(args) != want {
        return fmt.Errorf("%s takes %d operands, got %d at %d:%d", op, want, len(args), opTok.Line, opTok.Col)
    }

    v := b.Append(op, args...)
    if result != "" {
        if _, dup := p.names[result]; dup {
            return fmt.Errorf("redefinition of %s at %d:%d", result, first.Line, first.Col)
        }
        v.Name = result
        p.names[result] = v
    }
    return nil
}

func (p *Parser) parseOperands() ([]*ir.Value, error) {
    var args []*ir.Value
    for {
        a, err := p.parseOperand()
        if err != nil { return nil, err }
        args = append(args, a)
        if p.tok.Type != lexer.COMMA { break }
        p.next()
    }
    return args, nil
}

func (p *Parser) parseOperand() (*ir.Value, error) {
    switch p.tok.Type {
    case lexer.INT:
        k, err := strconv.ParseInt(p.tok.Lex, 10, 64)
        if err != nil { return nil, p.errf("bad integer %q", p.tok.Lex) }
        p.next()
        return p.f.ConstInt(k), nil
    case lexer.GLOBAL:
        name := p.tok.Lex
        p.next()
        if g, ok := p.globals[name]; ok { return g, nil }
        g := p.f.Extern("@" + name)
        p.globals[name] = g
        return g, nil
    case lexer.IDENT:
        v, ok := p.names[p.tok.Lex]
        if !ok { return nil, p.errf("use of undefined value %s", p.tok.Lex) }
        p.next()
        return v, nil
    default:
        return nil, p.errf("expected operand, got %q", p.tok.Lex)
    }
}
