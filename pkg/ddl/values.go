package ddl

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

var errEmptySize = errors.New("empty size value")

// ParseSize converts a tablespace or logfile group size (4096, 16M, 1G) to
// bytes. Suffixes are binary multiples, as in MySQL.
func ParseSize(lit string) (uint64, error) {
	lit = strings.TrimSpace(lit)
	if lit == "" {
		return 0, errEmptySize
	}
	switch lit[len(lit)-1] {
	case 'k', 'K', 'm', 'M', 'g', 'G', 't', 'T':
		return humanize.ParseBytes(lit + "iB")
	}
	return humanize.ParseBytes(lit)
}

// sizeValue reads the SizeNumber child of an option node, recording a
// diagnostic when the value does not parse or overflows.
func (c *Context) sizeValue(opt *ast.Node, object string) (uint64, bool) {
	n := opt.Child(ast.SizeNumber)
	if n == nil {
		return 0, false
	}
	lit := n.Value()
	v, err := ParseSize(lit)
	if err != nil {
		c.reportf(SeverityError, CodeValueOutOfRange, object, n, "size %s is out of range: %v", lit, err)
		return 0, false
	}
	return v, true
}

// intValue reads the first number of n as an int32, recording a diagnostic
// when it overflows.
func (c *Context) intValue(n *ast.Node, object string) (int, bool) {
	tok, ok := numberOf(n)
	if !ok {
		return 0, false
	}
	v, ok := parseInt32(tok.Literal)
	if !ok {
		c.reportf(SeverityError, CodeValueOutOfRange, object, n, "value %s is out of range", tok.Literal)
		return 0, false
	}
	return v, true
}

// definer registers the account of a DEFINER clause and returns it as
// name@host. CURRENT_USER is kept as is.
func (c *Context) definer(stmt *ast.Node) string {
	user := stmt.Child(ast.DefinerClause).Child(ast.UserName)
	if user == nil {
		return ""
	}
	terms := user.Terminals()
	if len(terms) > 0 && terms[0].Is("CURRENT_USER") {
		return "CURRENT_USER"
	}
	var name, host string
	afterAt := false
	for _, t := range terms {
		switch t.Type {
		case token.AT:
			afterAt = true
		case token.PERCENT:
			if afterAt {
				host = "%"
			}
		case token.IDENT, token.QUOTED_IDENT, token.STRING:
			switch {
			case afterAt:
				host = t.Literal
			case name == "":
				name = t.Literal
			}
		}
	}
	return c.catalog.EnsureUser(name, host).Account()
}

// hasWord reports whether n has any of the words as a direct terminal. The
// prefix keywords of a statement (TEMPORARY, UNIQUE, ...) are read this way.
func hasWord(n *ast.Node, words ...string) bool {
	for _, w := range n.Words() {
		for _, want := range words {
			if w == want {
				return true
			}
		}
	}
	return false
}

// wordAfter returns the direct word following kw in n, or "".
func wordAfter(n *ast.Node, kw string) string {
	terms := n.Terminals()
	for i, t := range terms {
		if t.Is(kw) && i+1 < len(terms) && terms[i+1].Type == token.IDENT {
			return strings.ToUpper(terms[i+1].Literal)
		}
	}
	return ""
}

// bodyText returns the source text of the Body child of n.
func bodyText(n *ast.Node) string {
	if b := n.Child(ast.Body); b != nil {
		return b.Text
	}
	return ""
}
