package parser

import (
	"errors"

	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/token"
)

// declaration is the recovery boundary: on error it records the failure,
// synchronizes and returns nil
func (p *Parser) declaration() ast.Stmt {
	stmt, err := p.parseDeclaration()
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			p.report(pe)
		} else {
			p.report(p.errorAt(p.peek(), gwerror.CodeParseExpectedToken, err.Error()))
		}
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) parseDeclaration() (ast.Stmt, error) {
	switch {
	case p.match(token.Type):
		return p.parseVarDeclaration(p.previous())
	case p.check(token.Fun) && p.isFunctionDeclaration():
		p.advance()
		return p.parseFunctionDeclaration()
	case p.match(token.Struct):
		return p.parseStructDeclaration()
	case p.match(token.Enum):
		return p.parseEnumDeclaration()
	default:
		return p.parseStatement()
	}
}

// isFunctionDeclaration tells `fun [type] name(` from a lambda `fun [type] (`
func (p *Parser) isFunctionDeclaration() bool {
	if p.checkAhead(1, token.ID) {
		return true
	}
	return p.checkAhead(1, token.Type) && p.checkAhead(2, token.ID)
}

// parseVarDeclaration parses `type name [= expr];` and
// `type name[size] [= { e, ... }];` after the type token
func (p *Parser) parseVarDeclaration(typ token.Token) (ast.Stmt, error) {
	name, err := p.consume(token.ID, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	if p.match(token.LBracket) {
		return p.parseArrayDeclaration(typ, name)
	}

	var initializer ast.Expr = ast.NewNull(name)
	if p.match(token.Assign) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Type: typ, Name: name, Initializer: initializer}, nil
}

func (p *Parser) parseArrayDeclaration(typ, name token.Token) (ast.Stmt, error) {
	decl := &ast.ArrayDecl{Type: typ, Name: name}

	if !p.check(token.RBracket) {
		size, err := p.expression()
		if err != nil {
			return nil, err
		}
		decl.Size = size
	}
	if _, err := p.consume(token.RBracket, "Expect ']' after array size."); err != nil {
		return nil, err
	}

	if p.match(token.Assign) {
		if _, err := p.consume(token.LBrace, "Expect '{' before array initializer."); err != nil {
			return nil, err
		}
		if !p.check(token.RBrace) {
			for {
				element, err := p.expression()
				if err != nil {
					return nil, err
				}
				decl.Elements = append(decl.Elements, element)
				if !p.match(token.Comma) {
					break
				}
			}
		}
		if _, err := p.consume(token.RBrace, "Expect '}' after array initializer."); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after array declaration."); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseFunctionDeclaration parses `[type] name(params) { body }` after `fun`
func (p *Parser) parseFunctionDeclaration() (ast.Stmt, error) {
	var returnType *token.Token
	if p.match(token.Type) {
		t := p.previous()
		returnType = &t
	}

	name, err := p.consume(token.ID, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LParen, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBrace, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{Name: name, ReturnType: returnType, Params: params, Body: body}, nil
}

// parseParameters parses `type name, ...)` after the opening parenthesis.
// More than MaxParameters is reported but does not stop parsing.
func (p *Parser) parseParameters() ([]ast.Param, error) {
	var params []ast.Param
	if !p.check(token.RParen) {
		for {
			if len(params) >= MaxParameters {
				p.report(p.errorAt(p.peek(), gwerror.CodeParseTooManyParams, "Can't have more than 255 parameters."))
			}
			typ, err := p.consume(token.Type, "Expect parameter type.")
			if err != nil {
				return nil, err
			}
			name, err := p.consume(token.ID, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Type: typ, Name: name})
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseStructDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.ID, "Expect struct name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBrace, "Expect '{' after struct name."); err != nil {
		return nil, err
	}

	decl := &ast.StructDecl{Name: name}
	for !p.check(token.RBrace) && !p.isAtEnd() {
		typ, err := p.consume(token.Type, "Expect field type.")
		if err != nil {
			return nil, err
		}
		field, err := p.consume(token.ID, "Expect field name.")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.Semicolon, "Expect ';' after field."); err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, ast.Param{Type: typ, Name: field})
	}

	if _, err := p.consume(token.RBrace, "Expect '}' after struct body."); err != nil {
		return nil, err
	}
	p.match(token.Semicolon)
	return decl, nil
}

func (p *Parser) parseEnumDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.ID, "Expect enum name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBrace, "Expect '{' after enum name."); err != nil {
		return nil, err
	}

	decl := &ast.EnumDecl{Name: name}
	if !p.check(token.RBrace) {
		for {
			value, err := p.consume(token.ID, "Expect enum value.")
			if err != nil {
				return nil, err
			}
			decl.Values = append(decl.Values, value)
			if !p.match(token.Comma) {
				break
			}
		}
	}

	if _, err := p.consume(token.RBrace, "Expect '}' after enum values."); err != nil {
		return nil, err
	}
	p.match(token.Semicolon)
	return decl, nil
}
