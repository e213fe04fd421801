package lexer

type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Identifiers + literals
	IDENT  // opcodes, value names, block labels
	GLOBAL // @name
	INT

	// Keywords
	KW_FUNC

	// Symbols
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	COLON  // :
	COMMA  // ,
	ASSIGN // =
)

type Token struct {
	Type TokenType
	Lex  string
	Line int
	Col  int
}

func (t Token) Is(tt TokenType) bool { return t.Type == tt }
