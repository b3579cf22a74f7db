// Package parser implements a Pratt (precedence-climbing) parser for the
// expression DSL (spec.md §4.3). Precedence for symbolic operators is
// fixed; precedence for word operators (spellings that are alphabetic
// identifiers, e.g. "and", "contains") is looked up dynamically from the
// operator.Registry supplied to New, so user-registered word operators
// parse correctly without changing this package.
package parser

import (
	"github.com/cwbudde/ruledsl/internal/ast"
	"github.com/cwbudde/ruledsl/internal/lexer"
	"github.com/cwbudde/ruledsl/internal/operator"
)

// Unary prefix operators all bind at this power (spec.md §4.3).
const unaryBP uint8 = 7

// symbolicPrecedence is the fixed binding-power table for punctuation
// operators (spec.md §4.3). Word operators are not listed here; their
// precedence comes from the operator.Registry at parse time.
var symbolicPrecedence = map[lexer.TokenType]uint8{
	lexer.OR_OR:     1,
	lexer.AND_AND:   2,
	lexer.EQ:        3,
	lexer.NOT_EQ:    3,
	lexer.LT:        4,
	lexer.LT_EQ:     4,
	lexer.GT:        4,
	lexer.GT_EQ:     4,
	lexer.PLUS:      5,
	lexer.MINUS:     5,
	lexer.ASTERISK:  6,
	lexer.SLASH:     6,
	lexer.PERCENT:   6,
}

var symbolicSpelling = map[lexer.TokenType]string{
	lexer.OR_OR:     "||",
	lexer.AND_AND:   "&&",
	lexer.EQ:        "==",
	lexer.NOT_EQ:    "!=",
	lexer.LT:        "<",
	lexer.LT_EQ:     "<=",
	lexer.GT:        ">",
	lexer.GT_EQ:     ">=",
	lexer.PLUS:      "+",
	lexer.MINUS:     "-",
	lexer.ASTERISK:  "*",
	lexer.SLASH:     "/",
	lexer.PERCENT:   "%",
}

// Parser walks a pre-scanned token stream and produces an ast.Expr.
type Parser struct {
	tokens []lexer.Token
	pos    int
	ops    *operator.Registry
}

// New creates a Parser over source text, consulting ops for word-operator
// precedence/associativity.
func New(input string, ops *operator.Registry) (*Parser, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: tokens, ops: ops}, nil
}

// ParseExpression is the public entry point: parse a single expression
// (spec.md §4.3).
func (p *Parser) ParseExpression() (ast.Expr, error) {
	expr, err := p.parseBP(0)
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.EOF) {
		return nil, newError(p.peek().Pos, "unexpected trailing token %q", p.peek().Literal)
	}
	return expr, nil
}

func (p *Parser) peek() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) at(tt lexer.TokenType) bool { return p.tokens[p.pos].Type == tt }

func (p *Parser) bump() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	t := p.bump()
	if t.Type != tt {
		return t, newError(t.Pos, "expected %s, got %q", what, t.Literal)
	}
	return t, nil
}

// parseBP is the core Pratt loop: parse a prefix expression, then repeatedly
// consume postfix forms (member/index/call) and infix operators whose left
// binding power is at least min_bp.
func (p *Parser) parseBP(minBP uint8) (ast.Expr, error) {
	lhs, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		lhs, err = p.tryParsePostfix(lhs)
		if err != nil {
			return nil, err
		}

		name, lbp, rbp, ok, err := p.peekInfix()
		if err != nil {
			return nil, err
		}
		if !ok || lbp < minBP {
			return lhs, nil
		}
		tok := p.bump()
		rhs, err := p.parseBP(rbp)
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Token: tok, Left: lhs, Op: name, Right: rhs}
	}
}

// tryParsePostfix consumes zero or more postfix forms: member access,
// indexing, and calls. A call is only accepted when lhs is an Ident
// (becomes Call{name, args}) — spec.md §4.3 step 2. A Member immediately
// followed by '(' fuses into a Call with the target prepended: this is
// the general method-call sugar of spec.md §4.6/§6 (`target.name(args)`
// == `name(target, args...)`). The handful of HOF spellings in
// methodSugar (where/select/sum/count/avg/min/max) are renamed to their
// evaluator-side name during the fuse; every other method name passes
// through unchanged and is evaluated exactly like a bare call of that name
// (e.g. `"hi".upper()` fuses to `Call{upper, ["hi"]}`).
func (p *Parser) tryParsePostfix(lhs ast.Expr) (ast.Expr, error) {
	for {
		switch p.peek().Type {
		case lexer.DOT:
			dot := p.bump()
			nameTok, err := p.expect(lexer.IDENT, "identifier after '.'")
			if err != nil {
				return nil, err
			}
			if p.at(lexer.LPAREN) {
				name := nameTok.Literal
				if resolved, ok := methodSugar[name]; ok {
					name = resolved
				}
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				lhs = &ast.Call{Token: dot, Name: name, Args: append([]ast.Expr{lhs}, args...)}
				continue
			}
			lhs = &ast.Member{Token: dot, Target: lhs, Field: nameTok.Literal}
			continue
		case lexer.LBRACKET:
			lb := p.bump()
			idx, err := p.parseBP(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
				return nil, err
			}
			lhs = &ast.Index{Token: lb, Target: lhs, Index: idx}
			continue
		case lexer.LPAREN:
			ident, ok := lhs.(*ast.Ident)
			if !ok {
				return lhs, nil
			}
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Call{Token: ident.Token, Name: ident.Name, Args: args}
			continue
		default:
			return lhs, nil
		}
	}
}

// methodSugar maps method-call spellings to the higher-order call name the
// evaluator recognizes (its hofNames), not to function-registry entries
// (spec.md §4.6).
var methodSugar = map[string]string{
	"where":  "filter",
	"select": "map",
	"sum":    "sum_by",
	"count":  "count",
	"avg":    "avg",
	"min":    "method_min",
	"max":    "method_max",
}

func (p *Parser) parseArgList() ([]ast.Expr, error) {
	p.bump() // '('
	var args []ast.Expr
	if p.at(lexer.RPAREN) {
		p.bump()
		return args, nil
	}
	for {
		arg, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		t := p.bump()
		switch t.Type {
		case lexer.COMMA:
			continue
		case lexer.RPAREN:
			return args, nil
		default:
			return nil, newError(t.Pos, "expected ',' or ')' in argument list, got %q", t.Literal)
		}
	}
}

// peekInfix reports the current token's binary-operator name and binding
// powers, if it is one. Symbolic operators consult the fixed table; an
// IDENT token is reinterpreted as a word operator only when the operator
// registry recognizes its spelling (spec.md §4.3).
func (p *Parser) peekInfix() (name string, lbp, rbp uint8, ok bool, err error) {
	tok := p.peek()
	if prec, found := symbolicPrecedence[tok.Type]; found {
		l, r := bindingPowers(prec, operator.Left)
		return symbolicSpelling[tok.Type], l, r, true, nil
	}
	if tok.Type == lexer.IDENT && p.ops.IsWordOperator(tok.Literal) {
		spec, _ := p.ops.Binary(tok.Literal)
		l, r := bindingPowers(spec.Precedence, spec.Assoc)
		return tok.Literal, l, r, true, nil
	}
	return "", 0, 0, false, nil
}

func bindingPowers(precedence uint8, assoc operator.Assoc) (lbp, rbp uint8) {
	if assoc == operator.Right {
		return precedence, precedence
	}
	return precedence, precedence + 1
}
