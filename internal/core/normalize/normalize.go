// Package normalize cleans user supplied text before it is validated or stored.
// Every helper first drops control characters and invalid UTF-8, free text is
// then NFC composed, identifiers are NFKC and width folded.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformers keep state, pooled so concurrent requests never share one
type pool struct{ sync.Pool }

func newPool(mk func() transform.Transformer) *pool {
	return &pool{sync.Pool{New: func() any { return mk() }}}
}

func (p *pool) apply(s string) string {
	t := p.Get().(transform.Transformer)
	defer p.Put(t)
	t.Reset()
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

var (
	// fullwidth digits and letters fold, zero width and other format runes go
	ident = newPool(func() transform.Transformer {
		return transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.Cf)), width.Fold)
	})
	fold = newPool(func() transform.Transformer { return cases.Fold() })
)

// Sanitize drops invalid UTF-8, NUL, DEL and C0/C1 controls other than tab and line breaks
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\r', r == '\t':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

// Text is for multi line free text such as an announcement body. Line
// breaks survive, one per run, every other whitespace run is one space.
func Text(s string) string {
	lines := strings.FieldsFunc(norm.NFC.String(Sanitize(s)), func(r rune) bool { return r == '\n' || r == '\r' })
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// Name is a single line person or place name
func Name(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(Sanitize(s))), " ")
}

// Email is trimmed and case folded so uniqueness checks ignore case
func Email(s string) string {
	return fold.apply(strings.TrimSpace(ident.apply(Sanitize(s))))
}

// Phone drops spaces, dashes, dots and brackets. Anything else stays for
// the validator to reject.
func Phone(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(" -.()", r) {
			return -1
		}
		return r
	}, strings.TrimSpace(ident.apply(Sanitize(s))))
}

// NID drops spaces and dashes
func NID(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, ident.apply(Sanitize(s)))
}
