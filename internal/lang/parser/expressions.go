package parser

import (
	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/token"
)

// compoundAssignments maps `op=` to the binary operator it applies
var compoundAssignments = map[token.Kind]token.Kind{
	token.PlusAssign:   token.Plus,
	token.MinusAssign:  token.Minus,
	token.TimesAssign:  token.Times,
	token.DivideAssign: token.Divide,
	token.ModuloAssign: token.Modulo,
}

// Precedence, lowest first:
// assignment, ternary, or, and, equality, comparison, term, factor, unary,
// call, primary

func (p *Parser) expression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}

	if p.match(token.Assign) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return p.assignTo(expr, equals, value)
	}

	if op, ok := compoundAssignments[p.peek().Kind]; ok {
		opTok := p.advance()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		target, isVar := expr.(*ast.Variable)
		if !isVar {
			return nil, p.errorAt(opTok, gwerror.CodeParseInvalidTarget, "Invalid assignment target.")
		}
		// a += b is a = a + b
		binOp := token.New(op, opTok.Lexeme[:len(opTok.Lexeme)-1], nil, opTok.Line, opTok.Column)
		left := &ast.Variable{Name: target.Name}
		return &ast.Assignment{Name: target.Name, Value: &ast.Binary{Left: left, Operator: binOp, Right: value}}, nil
	}

	return expr, nil
}

func (p *Parser) assignTo(target ast.Expr, at token.Token, value ast.Expr) (ast.Expr, error) {
	switch t := target.(type) {
	case *ast.Variable:
		return &ast.Assignment{Name: t.Name, Value: value}, nil
	case *ast.ArrayAccess:
		return &ast.ArrayAssignment{Name: t.Name, Index: t.Index, Value: value}, nil
	}
	return nil, p.errorAt(at, gwerror.CodeParseInvalidTarget, "Invalid assignment target.")
}

func (p *Parser) ternary() (ast.Expr, error) {
	condition, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(token.Question) {
		return condition, nil
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Colon, "Expect ':' in conditional expression."); err != nil {
		return nil, err
	}
	otherwise, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Condition: condition, Then: then, Else: otherwise}, nil
}

func (p *Parser) or() (ast.Expr, error) {
	return p.logical(p.and, token.Or)
}

func (p *Parser) and() (ast.Expr, error) {
	return p.logical(p.equality, token.And)
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.Equal, token.NotEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, token.GreaterThan, token.GreaterEqual, token.LessThan, token.LessEqual)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, token.Plus, token.Minus)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, token.Times, token.Divide, token.Modulo)
}

// binary parses a left-associative level of Binary nodes
func (p *Parser) binary(next func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

// logical parses a left-associative level of Logical nodes
func (p *Parser) logical(next func() (ast.Expr, error), op token.Kind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(op) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.Not, token.Minus) {
		op := p.previous()
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(token.LParen) {
		if expr, err = p.finishCall(expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RParen) {
		for {
			if len(args) >= MaxParameters {
				p.report(p.errorAt(p.peek(), gwerror.CodeParseTooManyArgs, "Can't have more than 255 arguments."))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}

	paren, err := p.consume(token.RParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.False:
		p.advance()
		return &ast.Literal{Value: false, Token: tok}, nil
	case token.True:
		p.advance()
		return &ast.Literal{Value: true, Token: tok}, nil
	case token.Null:
		p.advance()
		return ast.NewNull(tok), nil
	case token.Number, token.HexNumber, token.BinNumber, token.Float, token.String, token.Character:
		p.advance()
		return &ast.Literal{Value: tok.Literal, Token: tok}, nil
	case token.ConsoleWriteLine:
		p.advance()
		return &ast.Variable{Name: tok}, nil
	case token.ID:
		p.advance()
		if p.match(token.LBracket) {
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RBracket, "Expect ']' after index."); err != nil {
				return nil, err
			}
			return &ast.ArrayAccess{Name: tok, Index: index}, nil
		}
		return &ast.Variable{Name: tok}, nil
	case token.LParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	case token.Fun:
		p.advance()
		return p.lambda(tok)
	}

	return nil, p.errorAt(tok, gwerror.CodeParseExpectedExpr, "Expect expression.")
}

// lambda parses `[type] (params) { body }` after `fun`
func (p *Parser) lambda(keyword token.Token) (ast.Expr, error) {
	var returnType *token.Token
	if p.match(token.Type) {
		t := p.previous()
		returnType = &t
	}
	if _, err := p.consume(token.LParen, "Expect '(' after 'fun'."); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBrace, "Expect '{' before lambda body."); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Keyword: keyword, ReturnType: returnType, Params: params, Body: body}, nil
}
