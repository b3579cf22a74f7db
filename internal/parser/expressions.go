package parser

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/ruledsl/internal/ast"
	"github.com/cwbudde/ruledsl/internal/lexer"
	"github.com/cwbudde/ruledsl/internal/value"
)

// parsePrefix dispatches on the current token to parse a literal, name
// reference, lambda, enum variant, grouped expression, collection
// literal, or prefix operator (spec.md §4.2-§4.4).
func (p *Parser) parsePrefix() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.NUMBER:
		p.bump()
		return parseNumberLiteral(tok)
	case lexer.STRING:
		p.bump()
		return &ast.Literal{Token: tok, Value: value.String(tok.Literal)}, nil
	case lexer.TRUE:
		p.bump()
		return &ast.Literal{Token: tok, Value: value.Bool(true)}, nil
	case lexer.FALSE:
		p.bump()
		return &ast.Literal{Token: tok, Value: value.Bool(false)}, nil
	case lexer.NULL:
		p.bump()
		return &ast.Literal{Token: tok, Value: value.Null{}}, nil
	case lexer.BANG:
		p.bump()
		operand, err := p.parseBP(unaryBP)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Token: tok, Op: ast.OpNot, Expr: operand}, nil
	case lexer.MINUS:
		p.bump()
		operand, err := p.parseBP(unaryBP)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Token: tok, Op: ast.OpNeg, Expr: operand}, nil
	case lexer.PLUS:
		p.bump()
		operand, err := p.parseBP(unaryBP)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Token: tok, Op: ast.OpPos, Expr: operand}, nil
	case lexer.LPAREN:
		p.bump()
		inner, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LBRACKET:
		return p.parseListLiteral()
	case lexer.LBRACE:
		return p.parseStructLiteral()
	case lexer.IDENT:
		return p.parseIdentLike()
	default:
		return nil, newError(tok.Pos, "unexpected token %q", tok.Literal)
	}
}

func parseNumberLiteral(tok lexer.Token) (ast.Expr, error) {
	for _, r := range tok.Literal {
		if r == '.' || r == 'e' || r == 'E' {
			f, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				return nil, newError(tok.Pos, "invalid number literal %q", tok.Literal)
			}
			return &ast.Literal{Token: tok, Value: value.Float(f)}, nil
		}
	}
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, newError(tok.Pos, "invalid number literal %q", tok.Literal)
	}
	return &ast.Literal{Token: tok, Value: value.Int(n)}, nil
}

// parseIdentLike handles every prefix form that starts with an IDENT
// token: the "not" word unary, a lambda (`x => body`), an uppercase-
// initial enum variant (`Name` or `Name(payload)`), and a plain bare
// name reference.
func (p *Parser) parseIdentLike() (ast.Expr, error) {
	tok := p.bump()

	if tok.Literal == "not" {
		operand, err := p.parseBP(unaryBP)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Token: tok, Op: ast.OpWordNot, Expr: operand}, nil
	}

	if p.at(lexer.ARROW) {
		p.bump()
		body, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Token: tok, Param: tok.Literal, Body: body}, nil
	}

	if startsUpper(tok.Literal) {
		variant := &ast.EnumVariant{Token: tok, Name: tok.Literal}
		if p.at(lexer.LPAREN) {
			p.bump()
			payload, err := p.parseBP(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
				return nil, err
			}
			variant.Payload = payload
		}
		return variant, nil
	}

	return &ast.Ident{Token: tok, Name: tok.Literal}, nil
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func (p *Parser) parseListLiteral() (ast.Expr, error) {
	open := p.bump() // '['
	var items []ast.Expr
	if p.at(lexer.RBRACKET) {
		p.bump()
		return &ast.ListLiteral{Token: open, Items: items}, nil
	}
	for {
		item, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		t := p.bump()
		switch t.Type {
		case lexer.COMMA:
			if p.at(lexer.RBRACKET) {
				p.bump()
				return &ast.ListLiteral{Token: open, Items: items}, nil
			}
			continue
		case lexer.RBRACKET:
			return &ast.ListLiteral{Token: open, Items: items}, nil
		default:
			return nil, newError(t.Pos, "expected ',' or ']' in list literal, got %q", t.Literal)
		}
	}
}

func (p *Parser) parseStructLiteral() (ast.Expr, error) {
	open := p.bump() // '{'
	var fields []ast.StructField
	if p.at(lexer.RBRACE) {
		p.bump()
		return &ast.StructLiteral{Token: open, Fields: fields}, nil
	}
	for {
		nameTok, err := p.expect(lexer.IDENT, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON, "':'"); err != nil {
			return nil, err
		}
		val, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructField{Name: nameTok.Literal, Value: val})
		t := p.bump()
		switch t.Type {
		case lexer.COMMA:
			if p.at(lexer.RBRACE) {
				p.bump()
				return &ast.StructLiteral{Token: open, Fields: fields}, nil
			}
			continue
		case lexer.RBRACE:
			return &ast.StructLiteral{Token: open, Fields: fields}, nil
		default:
			return nil, newError(t.Pos, "expected ',' or '}' in struct literal, got %q", t.Literal)
		}
	}
}
