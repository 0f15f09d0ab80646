package parser

import (
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/token"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch {
	case p.match(token.If):
		return p.parseIf()
	case p.match(token.While):
		return p.parseWhile()
	case p.match(token.For):
		return p.parseFor()
	case p.match(token.Return):
		return p.parseReturn()
	case p.match(token.LBrace):
		return p.parseBlock()
	case p.match(token.Switch):
		return p.parseSwitch()
	case p.match(token.Break):
		keyword := p.previous()
		if _, err := p.consume(token.Semicolon, "Expect ';' after 'break'."); err != nil {
			return nil, err
		}
		return &ast.Break{Keyword: keyword}, nil
	case p.match(token.Continue):
		keyword := p.previous()
		if _, err := p.consume(token.Semicolon, "Expect ';' after 'continue'."); err != nil {
			return nil, err
		}
		return &ast.Continue{Keyword: keyword}, nil
	case p.match(token.Try):
		return p.parseTryCatch()
	case p.match(token.Throw):
		return p.parseThrow()
	case p.match(token.Import):
		return p.parseImport()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	keyword := p.previous()
	condition, err := p.parenthesized("if")
	if err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt = &ast.Block{Brace: keyword}
	if p.match(token.Else) {
		if elseBranch, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}

	return &ast.If{Keyword: keyword, Condition: condition, Then: then, Else: elseBranch}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	keyword := p.previous()
	condition, err := p.parenthesized("while")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Keyword: keyword, Condition: condition, Body: body}, nil
}

// parseFor parses the three clauses and returns the desugared while form
func (p *Parser) parseFor() (ast.Stmt, error) {
	loop := &ast.For{Keyword: p.previous()}

	if _, err := p.consume(token.LParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var err error
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Type):
		loop.Initializer, err = p.parseVarDeclaration(p.previous())
	default:
		loop.Initializer, err = p.parseExpressionStatement()
	}
	if err != nil {
		return nil, err
	}

	if !p.check(token.Semicolon) {
		if loop.Condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	if !p.check(token.RParen) {
		if loop.Increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	if loop.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}
	return ast.Desugar(loop), nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	keyword := p.previous()

	var value ast.Expr = ast.NewNull(keyword)
	if !p.check(token.Semicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.Return{Keyword: keyword, Value: value}, nil
}

// parseBlock parses declarations up to '}' after the opening brace
func (p *Parser) parseBlock() (*ast.Block, error) {
	block := &ast.Block{Brace: p.previous()}
	for !p.check(token.RBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	if _, err := p.consume(token.RBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseSwitch() (ast.Stmt, error) {
	sw := &ast.Switch{Keyword: p.previous()}

	subject, err := p.parenthesized("switch")
	if err != nil {
		return nil, err
	}
	sw.Subject = subject

	if _, err := p.consume(token.LBrace, "Expect '{' before switch body."); err != nil {
		return nil, err
	}

	for p.match(token.Case) {
		c := &ast.Case{Keyword: p.previous()}
		if c.Value, err = p.expression(); err != nil {
			return nil, err
		}
		if c.Body, err = p.parseCaseBody("Expect ':' after case value."); err != nil {
			return nil, err
		}
		sw.Cases = append(sw.Cases, c)
	}

	if p.match(token.Default) {
		if sw.Default, err = p.parseCaseBody("Expect ':' after 'default'."); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.RBrace, "Expect '}' after switch body."); err != nil {
		return nil, err
	}
	return sw, nil
}

// parseCaseBody collects the statements of one arm into a block
func (p *Parser) parseCaseBody(colonMessage string) (*ast.Block, error) {
	colon, err := p.consume(token.Colon, colonMessage)
	if err != nil {
		return nil, err
	}

	body := &ast.Block{Brace: colon}
	for !p.check(token.Case) && !p.check(token.Default) && !p.check(token.RBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			body.Statements = append(body.Statements, stmt)
		}
	}
	return body, nil
}

func (p *Parser) parseTryCatch() (ast.Stmt, error) {
	tc := &ast.TryCatch{Keyword: p.previous()}
	var err error

	if _, err = p.consume(token.LBrace, "Expect '{' after 'try'."); err != nil {
		return nil, err
	}
	if tc.Try, err = p.parseBlock(); err != nil {
		return nil, err
	}

	if _, err = p.consume(token.Catch, "Expect 'catch' after try block."); err != nil {
		return nil, err
	}
	if _, err = p.consume(token.LParen, "Expect '(' after 'catch'."); err != nil {
		return nil, err
	}
	if tc.CatchParam.Type, err = p.consume(token.Type, "Expect catch parameter type."); err != nil {
		return nil, err
	}
	if tc.CatchParam.Name, err = p.consume(token.ID, "Expect catch parameter name."); err != nil {
		return nil, err
	}
	if _, err = p.consume(token.RParen, "Expect ')' after catch parameter."); err != nil {
		return nil, err
	}
	if _, err = p.consume(token.LBrace, "Expect '{' before catch body."); err != nil {
		return nil, err
	}
	if tc.Catch, err = p.parseBlock(); err != nil {
		return nil, err
	}

	if p.match(token.Finally) {
		if _, err = p.consume(token.LBrace, "Expect '{' after 'finally'."); err != nil {
			return nil, err
		}
		if tc.Finally, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return tc, nil
}

func (p *Parser) parseThrow() (ast.Stmt, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after thrown value."); err != nil {
		return nil, err
	}
	return &ast.Throw{Keyword: keyword, Value: value}, nil
}

func (p *Parser) parseImport() (ast.Stmt, error) {
	keyword := p.previous()
	module, err := p.consume(token.ID, "Expect module name after 'import'.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after import."); err != nil {
		return nil, err
	}
	return &ast.Import{Keyword: keyword, Module: module}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expression: expr}, nil
}

// parenthesized parses `( expr )` following the named keyword
func (p *Parser) parenthesized(keyword string) (ast.Expr, error) {
	if _, err := p.consume(token.LParen, "Expect '(' after '"+keyword+"'."); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, "Expect ')' after "+keyword+" condition."); err != nil {
		return nil, err
	}
	return expr, nil
}
