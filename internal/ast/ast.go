// Package ast defines the expression tree shape produced by the parser
// and consumed by the evaluator.
package ast

import (
	"strings"

	"github.com/cwbudde/ruledsl/internal/lexer"
	"github.com/cwbudde/ruledsl/internal/value"
)

// Node is the common interface implemented by every expression node.
type Node interface {
	// String renders the node for debugging and error messages.
	String() string
	// Pos returns the node's source position for diagnostics.
	Pos() lexer.Position
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	OpNot     UnaryOp = iota // !
	OpWordNot                // not
	OpNeg                    // unary -
	OpPos                    // unary +
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpWordNot:
		return "not"
	case OpNeg:
		return "-"
	case OpPos:
		return "+"
	default:
		return "?"
	}
}

// Literal is a literal value embedded directly in the AST (true, false,
// null, numbers, strings).
type Literal struct {
	Token lexer.Token
	Value value.Value
}

func (*Literal) exprNode()             {}
func (l *Literal) Pos() lexer.Position { return l.Token.Pos }
func (l *Literal) String() string      { return l.Value.String() }

// Ident is a bare identifier reference.
type Ident struct {
	Token lexer.Token
	Name  string
}

func (*Ident) exprNode()             {}
func (i *Ident) Pos() lexer.Position { return i.Token.Pos }
func (i *Ident) String() string      { return i.Name }

// Unary is a prefix operator applied to one operand.
type Unary struct {
	Token lexer.Token
	Op    UnaryOp
	Expr  Expr
}

func (*Unary) exprNode()             {}
func (u *Unary) Pos() lexer.Position { return u.Token.Pos }
func (u *Unary) String() string {
	if u.Op == OpWordNot {
		return "(not " + u.Expr.String() + ")"
	}
	return "(" + u.Op.String() + u.Expr.String() + ")"
}

// Binary is an infix operator applied to two operands. Op is the
// operator's registry name: symbolic ("+", "==") or word-shaped ("and",
// "contains").
type Binary struct {
	Token lexer.Token
	Left  Expr
	Op    string
	Right Expr
}

func (*Binary) exprNode()             {}
func (b *Binary) Pos() lexer.Position { return b.Token.Pos }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// Call is a named function invocation, e.g. len(x) or (after method-call
// fusion) x.where(pred) -> Call{Name: "filter", Args: [x, pred]}.
type Call struct {
	Token lexer.Token
	Name  string
	Args  []Expr
}

func (*Call) exprNode()             {}
func (c *Call) Pos() lexer.Position { return c.Token.Pos }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Lambda is a single-parameter syntactic argument, never a first-class
// Value: it only exists as an argument recognized by specific
// higher-order built-ins (spec §4.6, §9).
type Lambda struct {
	Token lexer.Token
	Param string
	Body  Expr
}

func (*Lambda) exprNode()             {}
func (l *Lambda) Pos() lexer.Position { return l.Token.Pos }
func (l *Lambda) String() string      { return l.Param + " => " + l.Body.String() }

// Member is field access: target.field.
type Member struct {
	Token  lexer.Token
	Target Expr
	Field  string
}

func (*Member) exprNode()             {}
func (m *Member) Pos() lexer.Position { return m.Token.Pos }
func (m *Member) String() string      { return m.Target.String() + "." + m.Field }

// Index is subscript access: target[index].
type Index struct {
	Token  lexer.Token
	Target Expr
	Index  Expr
}

func (*Index) exprNode()             {}
func (ix *Index) Pos() lexer.Position { return ix.Token.Pos }
func (ix *Index) String() string      { return ix.Target.String() + "[" + ix.Index.String() + "]" }

// StructField is one key:value pair of a StructLiteral, in source order
// (pre sorted-key normalization, which happens at evaluation time).
type StructField struct {
	Name  string
	Value Expr
}

// StructLiteral is a `{ k: e, ... }` literal.
type StructLiteral struct {
	Token  lexer.Token
	Fields []StructField
}

func (*StructLiteral) exprNode()             {}
func (s *StructLiteral) Pos() lexer.Position { return s.Token.Pos }
func (s *StructLiteral) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ListLiteral is a `[ e, ... ]` literal.
type ListLiteral struct {
	Token lexer.Token
	Items []Expr
}

func (*ListLiteral) exprNode()             {}
func (l *ListLiteral) Pos() lexer.Position { return l.Token.Pos }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// EnumVariant is `Name` or `Name(payload)`, recognized at parse time by
// an uppercase-initial identifier.
type EnumVariant struct {
	Token   lexer.Token
	Name    string
	Payload Expr // nil when the variant carries no payload
}

func (*EnumVariant) exprNode()             {}
func (e *EnumVariant) Pos() lexer.Position { return e.Token.Pos }
func (e *EnumVariant) String() string {
	if e.Payload == nil {
		return e.Name
	}
	return e.Name + "(" + e.Payload.String() + ")"
}
