// File: lexer.go
// Title: gwent Lexical Analyzer
// Description: Character-by-character state machine that turns source text
//              into tokens. Block comments are removed by a pre-pass; the
//              scanner itself handles identifiers, numbers, strings,
//              characters, line comments and the operator tables.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: State machine scanner for the gwent token table

package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/lang/token"
)

// keywords maps reserved words to their token kinds. Lookup is case-sensitive.
var keywords = map[string]token.Kind{
	"if":                token.If,
	"else":              token.Else,
	"while":             token.While,
	"for":               token.For,
	"return":            token.Return,
	"int":               token.Type,
	"float":             token.Type,
	"char":              token.Type,
	"bool":              token.Type,
	"empty":             token.Type,
	"string":            token.Type,
	"true":              token.True,
	"false":             token.False,
	"null":              token.Null,
	"break":             token.Break,
	"continue":          token.Continue,
	"switch":            token.Switch,
	"case":              token.Case,
	"default":           token.Default,
	"fun":               token.Fun,
	"struct":            token.Struct,
	"enum":              token.Enum,
	"import":            token.Import,
	"try":               token.Try,
	"catch":             token.Catch,
	"finally":           token.Finally,
	"throw":             token.Throw,
	"class":             token.Class,
	"extends":           token.Extends,
	"public":            token.Public,
	"private":           token.Private,
	"protected":         token.Protected,
	"static":            token.Static,
	"void":              token.Void,
	"console_writeline": token.ConsoleWriteLine,
}

var threeCharOperators = map[string]token.Kind{
	"<<=": token.ShiftLeftAssign,
	">>=": token.ShiftRightAssign,
}

var twoCharOperators = map[string]token.Kind{
	"==": token.Equal,
	"!=": token.NotEqual,
	"<=": token.LessEqual,
	">=": token.GreaterEqual,
	"&&": token.And,
	"||": token.Or,
	"+=": token.PlusAssign,
	"-=": token.MinusAssign,
	"*=": token.TimesAssign,
	"/=": token.DivideAssign,
	"%=": token.ModuloAssign,
	"&=": token.AndAssign,
	"|=": token.OrAssign,
	"^=": token.XorAssign,
	"++": token.Increment,
	"--": token.Decrement,
	"<<": token.ShiftLeft,
	">>": token.ShiftRight,
}

var singleCharOperators = map[rune]token.Kind{
	'+':  token.Plus,
	'-':  token.Minus,
	'*':  token.Times,
	'/':  token.Divide,
	'%':  token.Modulo,
	'=':  token.Assign,
	'<':  token.LessThan,
	'>':  token.GreaterThan,
	'!':  token.Not,
	'&':  token.BitAnd,
	'|':  token.BitOr,
	'^':  token.BitXor,
	'~':  token.BitNot,
	'.':  token.Dot,
	',':  token.Comma,
	';':  token.Semicolon,
	':':  token.Colon,
	'(':  token.LParen,
	')':  token.RParen,
	'{':  token.LBrace,
	'}':  token.RBrace,
	'[':  token.LBracket,
	']':  token.RBracket,
	'?':  token.Question,
	'#':  token.Hash,
	'$':  token.Dollar,
	'\\': token.Backslash,
	'`':  token.Backtick,
}

const consoleWriteLine = "Console.WriteLine"

type state int

const (
	stateStart state = iota
	stateIdentifier
	stateNumber
	stateString
	stateCharacter
	stateLineComment
	stateBlockComment
)

// Options configures a Lexer
type Options struct {
	Logger *gwlog.Logger
}

// Lexer tokenizes gwent source text
type Lexer struct {
	input  []rune
	pos    int
	line   int
	column int
	state  state

	// start of the token being accumulated
	start       int
	startLine   int
	startColumn int

	tokens []token.Token
	logger *gwlog.Logger
}

// New creates a lexer for input
func New(input string, opts Options) *Lexer {
	logger := opts.Logger
	if logger == nil {
		logger = gwlog.GetDefault()
	}
	return &Lexer{
		input:  []rune(input),
		line:   1,
		column: 1,
		logger: logger.WithField("component", "lexer"),
	}
}

// Tokenize scans input with default options
func Tokenize(input string) ([]token.Token, error) {
	return New(input, Options{}).Tokenize()
}

// Tokenize scans the whole input. The result always ends with exactly one EOF
// token. On failure no tokens are returned.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	input, err := stripBlockComments(l.input)
	if err != nil {
		return nil, err
	}
	l.input = input

	for l.pos < len(l.input) {
		c := l.input[l.pos]

		switch l.state {
		case stateStart:
			err = l.scanStart(c)

		case stateIdentifier:
			if isIdentifierPart(c) {
				l.advance()
				continue
			}
			l.emitIdentifier()

		case stateNumber:
			if l.isNumberPart(c) {
				l.advance()
				continue
			}
			err = l.emitNumber()

		case stateString, stateCharacter:
			l.advance()
			if c == l.input[l.start] && l.pos-1 > l.start && l.input[l.pos-2] != '\\' {
				err = l.emitQuoted()
			}

		case stateLineComment:
			l.advance()
			if c == '\n' {
				l.state = stateStart
			}

		case stateBlockComment:
			if c == '*' && l.peek(1) == '/' {
				l.advance()
				l.state = stateStart
			}
			l.advance()
		}

		if err != nil {
			return nil, err
		}
	}

	if err := l.finish(); err != nil {
		return nil, err
	}

	l.tokens = append(l.tokens, token.New(token.EOF, "", nil, l.line, l.column))
	l.logger.Debug("tokenized", gwlog.Fields{"tokens": len(l.tokens)})
	return l.tokens, nil
}

// finish resolves whatever construct is open at end of input
func (l *Lexer) finish() error {
	switch l.state {
	case stateIdentifier:
		l.emitIdentifier()
	case stateNumber:
		return l.emitNumber()
	case stateString:
		return l.errorAtStart(gwerror.CodeLexUnterminatedString, "unterminated string literal")
	case stateCharacter:
		return l.errorAtStart(gwerror.CodeLexUnterminatedChar, "unterminated character literal")
	case stateBlockComment:
		return l.errorAtStart(gwerror.CodeLexUnterminatedComment, "unterminated block comment")
	}
	return nil
}

func (l *Lexer) scanStart(c rune) error {
	switch {
	case unicode.IsSpace(c):
		l.advance()
		return nil
	case unicode.IsLetter(c) || c == '_':
		l.begin(stateIdentifier)
		return nil
	case unicode.IsDigit(c):
		l.begin(stateNumber)
		return nil
	case c == '"':
		l.begin(stateString)
		return nil
	case c == '\'':
		l.begin(stateCharacter)
		return nil
	case c == '/' && l.peek(1) == '/':
		l.begin(stateLineComment)
		l.advance()
		return nil
	case c == '/' && l.peek(1) == '*':
		l.begin(stateBlockComment)
		l.advance()
		return nil
	}

	if l.pos+3 <= len(l.input) {
		if kind, ok := threeCharOperators[string(l.input[l.pos:l.pos+3])]; ok {
			l.emitOperator(kind, 3)
			return nil
		}
	}
	if l.pos+2 <= len(l.input) {
		if kind, ok := twoCharOperators[string(l.input[l.pos:l.pos+2])]; ok {
			l.emitOperator(kind, 2)
			return nil
		}
	}
	if kind, ok := singleCharOperators[c]; ok {
		l.emitOperator(kind, 1)
		return nil
	}

	return gwerror.Newf("unexpected character '%c'", c).
		WithCode(gwerror.CodeLexIllegalCharacter).
		WithPosition(l.line, l.column).
		WithDetail("lexeme", string(c))
}

// begin marks the current character as the start of a token and consumes it
func (l *Lexer) begin(s state) {
	l.state = s
	l.start = l.pos
	l.startLine = l.line
	l.startColumn = l.column
	l.advance()
}

func (l *Lexer) emitOperator(kind token.Kind, width int) {
	line, column := l.line, l.column
	lexeme := string(l.input[l.pos : l.pos+width])
	for i := 0; i < width; i++ {
		l.advance()
	}
	l.emit(token.New(kind, lexeme, nil, line, column))
}

func (l *Lexer) emitIdentifier() {
	text := string(l.input[l.start:l.pos])
	l.state = stateStart

	if text == "Console" && l.hasPrefixAt(l.pos, consoleWriteLine[len("Console"):]) {
		end := l.pos + len(consoleWriteLine) - len("Console")
		if end >= len(l.input) || !isIdentifierPart(l.input[end]) {
			for l.pos < end {
				l.advance()
			}
			l.emit(token.New(token.ConsoleWriteLine, consoleWriteLine, nil, l.startLine, l.startColumn))
			return
		}
	}

	kind, ok := keywords[text]
	if !ok {
		kind = token.ID
	}
	l.emit(token.New(kind, text, nil, l.startLine, l.startColumn))
}

func (l *Lexer) emitNumber() error {
	text := string(l.input[l.start:l.pos])
	l.state = stateStart

	kind, literal, err := classifyNumber(text)
	if err != nil {
		return gwerror.Wrap(err, fmt.Sprintf("invalid number literal '%s'", text)).
			WithCode(gwerror.CodeLexInvalidNumber).
			WithPosition(l.startLine, l.startColumn).
			WithDetail("lexeme", text)
	}
	l.emit(token.New(kind, text, literal, l.startLine, l.startColumn))
	return nil
}

// classifyNumber decides the literal kind in order: '.', 0x, 0b, decimal
func classifyNumber(text string) (token.Kind, interface{}, error) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "."):
		v, err := strconv.ParseFloat(text, 64)
		return token.Float, v, err
	case strings.HasPrefix(lower, "0x"):
		v, err := strconv.ParseInt(text[2:], 16, 64)
		return token.HexNumber, v, err
	case strings.HasPrefix(lower, "0b"):
		v, err := strconv.ParseInt(text[2:], 2, 64)
		return token.BinNumber, v, err
	default:
		v, err := strconv.ParseInt(text, 10, 64)
		return token.Number, v, err
	}
}

func (l *Lexer) emitQuoted() error {
	text := string(l.input[l.start:l.pos])
	body := []rune(text[1 : len(text)-1])
	l.state = stateStart

	if l.input[l.start] == '"' {
		l.emit(token.New(token.String, text, string(body), l.startLine, l.startColumn))
		return nil
	}

	if len(body) == 0 {
		return l.errorAtStart(gwerror.CodeLexInvalidCharacter, "empty character literal")
	}
	l.emit(token.New(token.Character, text, body[0], l.startLine, l.startColumn))
	return nil
}

func (l *Lexer) emit(tok token.Token) {
	l.tokens = append(l.tokens, tok)
	if l.logger.IsLevelEnabled(gwlog.LevelTrace) {
		l.logger.Trace("token", gwlog.Fields{"token": tok.String()})
	}
}

func (l *Lexer) errorAtStart(code gwerror.Code, message string) error {
	return gwerror.New(message).
		WithCode(code).
		WithPosition(l.startLine, l.startColumn).
		WithDetail("lexeme", string(l.input[l.start:l.pos]))
}

// advance consumes one character and updates line and column
func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// peek returns the character offset positions ahead, or 0 past the end
func (l *Lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) hasPrefixAt(pos int, prefix string) bool {
	p := []rune(prefix)
	if pos+len(p) > len(l.input) {
		return false
	}
	for i, r := range p {
		if l.input[pos+i] != r {
			return false
		}
	}
	return true
}

func (l *Lexer) isNumberPart(c rune) bool {
	switch {
	case unicode.IsDigit(c), c == '.', c == 'x', c == 'X', c == 'b', c == 'B':
		return true
	case (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'):
		return l.pos-l.start >= 2 && l.input[l.start] == '0' &&
			(l.input[l.start+1] == 'x' || l.input[l.start+1] == 'X')
	}
	return false
}

func isIdentifierPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
