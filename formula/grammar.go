package formula

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar is deliberately small: arithmetic over numeric literals and
// A1-style cell references, with the usual +/- and */ precedence levels,
// parentheses, and unary minus. No ranges, no functions, no string
// operators — those are spec non-goals. Grammar shape follows the
// struct-tag style used in ricklamers-gridstudio/grid-app/formula.go.

var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(\.\d+)?`},
	{Name: "Cell", Pattern: `[A-Za-z]+[0-9]+`},
	{Name: "Punct", Pattern: `[-+*/()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var formulaParser = participle.MustBuild[exprNode](
	participle.Lexer(formulaLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// exprNode is the top of the precedence chain: a sum of terms.
type exprNode struct {
	Left  *termNode  `@@`
	Right []*opTerm  `@@*`
}

type opTerm struct {
	Op   string    `@("+" | "-")`
	Term *termNode `@@`
}

// termNode is a product of factors.
type termNode struct {
	Left  *factorNode `@@`
	Right []*opFactor `@@*`
}

type opFactor struct {
	Op     string      `@("*" | "/")`
	Factor *factorNode `@@`
}

// factorNode applies optional unary minus to a value.
type factorNode struct {
	Negate bool       `@"-"?`
	Value  *valueNode `@@`
}

// valueNode is a leaf: a number literal, a cell reference, or a
// parenthesized sub-expression.
type valueNode struct {
	Number *float64  `  @Number`
	Cell   *string   `| @Cell`
	Sub    *exprNode `| "(" @@ ")"`
}
