package parser

import (
	"strings"
	"unicode"

	"github.com/leapstack-labs/leapddl/pkg/token"
)

// LexerOptions control dialect-dependent lexing.
type LexerOptions struct {
	// AnsiQuotes makes "double quoted" text an identifier instead of a string.
	AnsiQuotes bool
	// ServerVersion is the numeric server version (e.g. 80032) used to decide whether
	// the content of a versioned comment (/*!50100 ... */) is part of the input.
	// Zero accepts every versioned comment.
	ServerVersion int
}

// Lexer tokenizes MySQL DDL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	opts        LexerOptions
	delimiter   string
	lineStart   bool // only whitespace seen since the last newline
	inVersioned bool // inside an accepted /*!NNNNN ... */ comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string, opts LexerOptions) *Lexer {
	l := &Lexer{
		input:     input,
		line:      1,
		col:       0,
		opts:      opts,
		delimiter: ";",
		lineStart: true,
	}
	l.readChar()
	return l
}

// Delimiter returns the active statement delimiter.
func (l *Lexer) Delimiter() string {
	return l.delimiter
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekAt returns the character n bytes after the current one.
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	tok := token.Token{Pos: pos}

	if l.lineStart && l.atDelimiterDirective() {
		tok.Type = token.DELIMITER
		tok.Literal = l.readDelimiterDirective()
		tok.End = l.pos
		return tok
	}
	l.lineStart = false

	if l.atDelimiter() {
		for range len(l.delimiter) {
			l.readChar()
		}
		tok.Type = token.END_STMT
		tok.Literal = l.delimiter
		tok.End = l.pos
		return tok
	}

	switch l.ch {
	case 0:
		tok.Type = token.EOF
		tok.End = l.pos
		return tok
	case '+':
		tok.Type, tok.Literal = token.PLUS, "+"
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				tok.Type, tok.Literal = token.OPERATOR, "->>"
			} else {
				tok.Type, tok.Literal = token.OPERATOR, "->"
			}
		} else {
			tok.Type, tok.Literal = token.MINUS, "-"
		}
	case '*':
		tok.Type, tok.Literal = token.STAR, "*"
	case '/':
		tok.Type, tok.Literal = token.SLASH, "/"
	case '%':
		tok.Type, tok.Literal = token.PERCENT, "%"
	case '=':
		tok.Type, tok.Literal = token.EQ, "="
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				tok.Type, tok.Literal = token.OPERATOR, "<=>"
			} else {
				tok.Type, tok.Literal = token.LE, "<="
			}
		case '>':
			l.readChar()
			tok.Type, tok.Literal = token.NE, "<>"
		case '<':
			l.readChar()
			tok.Type, tok.Literal = token.OPERATOR, "<<"
		default:
			tok.Type, tok.Literal = token.LT, "<"
		}
	case '>':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok.Type, tok.Literal = token.GE, ">="
		case '>':
			l.readChar()
			tok.Type, tok.Literal = token.OPERATOR, ">>"
		default:
			tok.Type, tok.Literal = token.GT, ">"
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = token.NE, "!="
		} else {
			tok.Type, tok.Literal = token.OPERATOR, "!"
		}
	case '|', '&':
		ch := l.ch
		if l.peekChar() == ch {
			l.readChar()
			tok.Type, tok.Literal = token.OPERATOR, string([]byte{ch, ch})
		} else {
			tok.Type, tok.Literal = token.OPERATOR, string(ch)
		}
	case '^', '~', '?':
		tok.Type, tok.Literal = token.OPERATOR, string(l.ch)
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = token.OPERATOR, ":="
		} else {
			tok.Type, tok.Literal = token.COLON, ":"
		}
	case '.':
		if isDigit(l.peekChar()) {
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			tok.End = l.pos
			return tok
		}
		tok.Type, tok.Literal = token.DOT, "."
	case ',':
		tok.Type, tok.Literal = token.COMMA, ","
	case '(':
		tok.Type, tok.Literal = token.LPAREN, "("
	case ')':
		tok.Type, tok.Literal = token.RPAREN, ")"
	case '@':
		tok.Type, tok.Literal = token.AT, "@"
	case ';':
		tok.Type, tok.Literal = token.SEMICOLON, ";"
	case '\'':
		tok.Type = token.STRING
		tok.Literal = l.readQuoted('\'', true)
		tok.End = l.pos
		return tok
	case '"':
		if l.opts.AnsiQuotes {
			tok.Type = token.QUOTED_IDENT
			tok.Literal = l.readQuoted('"', false)
		} else {
			tok.Type = token.STRING
			tok.Literal = l.readQuoted('"', true)
		}
		tok.End = l.pos
		return tok
	case '`':
		tok.Type = token.QUOTED_IDENT
		tok.Literal = l.readQuoted('`', false)
		tok.End = l.pos
		return tok
	default:
		if (l.ch == 'x' || l.ch == 'X' || l.ch == 'b' || l.ch == 'B' || l.ch == 'n' || l.ch == 'N') && l.peekChar() == '\'' {
			prefix := strings.ToLower(string(l.ch))
			l.readChar()
			body := l.readQuoted('\'', prefix == "n")
			tok.Type = token.STRING
			if prefix == "n" {
				tok.Literal = body
			} else {
				tok.Literal = prefix + "'" + body + "'"
			}
			tok.End = l.pos
			return tok
		}
		if isDigit(l.ch) {
			lit, isWord := l.readNumberOrWord()
			tok.Literal = lit
			tok.Type = token.NUMBER
			if isWord {
				tok.Type = token.IDENT
			}
			tok.End = l.pos
			return tok
		}
		if isIdentStart(l.ch) {
			tok.Type = token.IDENT
			tok.Literal = l.readIdentifier()
			tok.End = l.pos
			return tok
		}
		tok.Type, tok.Literal = token.ILLEGAL, string(l.ch)
	}

	l.readChar()
	tok.End = l.pos
	return tok
}

// skipWhitespaceAndComments skips whitespace and comments, and unwraps versioned
// comments whose version is accepted.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			if l.ch == '\n' {
				l.lineStart = true
			}
			l.readChar()
		}

		switch {
		case l.ch == '-' && l.peekChar() == '-' && isSpaceOrEnd(l.peekAt(2)):
			l.skipLineComment()
			continue
		case l.ch == '#':
			l.skipLineComment()
			continue
		case l.ch == '/' && l.peekChar() == '*':
			if l.peekAt(2) == '!' && !l.inVersioned {
				if l.enterVersionedComment() {
					continue
				}
			}
			l.skipBlockComment()
			continue
		case l.inVersioned && l.ch == '*' && l.peekChar() == '/':
			l.readChar()
			l.readChar()
			l.inVersioned = false
			continue
		}
		return
	}
}

// enterVersionedComment handles "/*!NNNNN". When the version is accepted, the
// comment opener is consumed and lexing continues inside the comment. Otherwise
// it returns false and the caller skips the whole comment.
func (l *Lexer) enterVersionedComment() bool {
	i := l.pos + 3
	start := i
	for i < len(l.input) && isDigit(l.input[i]) && i-start < 6 {
		i++
	}
	version := 0
	for _, c := range l.input[start:i] {
		version = version*10 + int(c-'0')
	}
	if version != 0 && l.opts.ServerVersion != 0 && version > l.opts.ServerVersion {
		return false
	}
	for l.pos < i {
		l.readChar()
	}
	l.inVersioned = true
	return true
}

// skipLineComment skips a line comment.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment skips a block comment.
func (l *Lexer) skipBlockComment() {
	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for {
		if l.ch == 0 {
			return // Unterminated block comment
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			return
		}
		l.readChar()
	}
}

// atDelimiterDirective reports whether the input at the current position is a
// client "DELIMITER" command.
func (l *Lexer) atDelimiterDirective() bool {
	const kw = "delimiter"
	rest := l.input[l.pos:]
	if len(rest) <= len(kw) || !strings.EqualFold(rest[:len(kw)], kw) {
		return false
	}
	c := rest[len(kw)]
	return c == ' ' || c == '\t'
}

// readDelimiterDirective consumes "DELIMITER xx" up to the end of the line and
// installs the new delimiter.
func (l *Lexer) readDelimiterDirective() string {
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	line := strings.TrimSpace(l.input[start:l.pos])
	fields := strings.Fields(line)
	if len(fields) >= 2 {
		l.delimiter = fields[1]
	}
	return l.delimiter
}

// readQuoted reads text enclosed in quote characters. Doubled quotes are an
// escaped quote; when backslash is true, backslash escapes are processed too.
func (l *Lexer) readQuoted(quote byte, backslash bool) string {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		if l.ch == 0 {
			break // unterminated
		}
		if backslash && l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				break
			}
			result.WriteString(unescape(l.ch))
			l.readChar()
			continue
		}
		if l.ch == quote {
			if l.peekChar() == quote {
				result.WriteByte(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			break
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
	return result.String()
}

func unescape(ch byte) string {
	switch ch {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	case 'b':
		return "\b"
	case 'Z':
		return "\x1a"
	case '%', '_':
		// kept escaped for LIKE patterns
		return "\\" + string(ch)
	default:
		return string(ch)
	}
}

// atDelimiter reports whether the active delimiter starts at the current position.
func (l *Lexer) atDelimiter() bool {
	return l.ch != 0 && strings.HasPrefix(l.input[l.pos:], l.delimiter)
}

// readIdentifier reads an unquoted identifier. A custom delimiter such as $$ ends
// the identifier even though '$' is an identifier character.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentPart(l.ch) && !l.atDelimiter() {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumberOrWord reads a token starting with a digit. MySQL allows unquoted
// identifiers that begin with digits (and size values like 16M), so a digit run
// directly followed by identifier characters is returned as a word.
func (l *Lexer) readNumberOrWord() (string, bool) {
	start := l.pos
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return l.input[start:l.pos], false
	}
	lit := l.readNumber()
	if isIdentStart(l.ch) && !l.atDelimiter() {
		for isIdentPart(l.ch) && !l.atDelimiter() {
			l.readChar()
		}
		return l.input[start:l.pos], true
	}
	return lit, false
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part only when digits follow, otherwise 1e is a word.
	if (l.ch == 'e' || l.ch == 'E') &&
		(isDigit(l.peekChar()) || ((l.peekChar() == '+' || l.peekChar() == '-') && isDigit(l.peekAt(2)))) {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || ch >= 0x80 || unicode.IsLetter(rune(ch))
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isSpaceOrEnd(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == 0
}

// Tokenize returns all tokens from the input.
func Tokenize(input string, opts LexerOptions) []token.Token {
	l := NewLexer(input, opts)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}
