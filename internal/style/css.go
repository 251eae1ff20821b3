// Package style reads the page stylesheet and resolves the look of each section.
// Only class and id selectors are understood; later rules override earlier ones.
package style

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is one selector and its declarations (raw values).
type Rule struct {
	Selector string
	Props    map[string]string
}

// Stylesheet is a list of rules in source order.
type Stylesheet struct {
	Rules []Rule
}

// LoadCSS reads and parses the stylesheet at path.
func LoadCSS(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("style: %w", err)
	}
	return ParseCSS(bytes.NewReader(data))
}

// ParseCSS parses a stylesheet. Rules whose selectors are neither .class nor #id,
// and all at-rules, are skipped.
func ParseCSS(r io.Reader) (*Stylesheet, error) {
	p := css.NewParser(parse.NewInput(r), false)
	sheet := &Stylesheet{}
	var current []int // indices into sheet.Rules for the open ruleset
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if err == nil {
				// Recoverable syntax error; the parser skips the bad part.
				continue
			}
			if errors.Is(err, io.EOF) {
				return sheet, nil
			}
			return nil, fmt.Errorf("style: %w", err)
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			current = current[:0]
			if atDepth > 0 {
				continue
			}
			for _, sel := range selectors(p.Values()) {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: map[string]string{}})
				current = append(current, len(sheet.Rules)-1)
			}
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if atDepth > 0 {
				continue
			}
			name := strings.ToLower(string(data))
			value := joinTokens(p.Values())
			for _, i := range current {
				sheet.Rules[i].Props[name] = value
			}
		case css.EndRulesetGrammar:
			current = current[:0]
		}
	}
}

// selectors splits a selector list on commas and keeps simple .class / #id selectors.
func selectors(tokens []css.Token) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if len(s) >= 2 && (s[0] == '.' || s[0] == '#') && !strings.ContainsAny(s, " >+~:[") {
			out = append(out, s)
		}
	}
	for _, t := range tokens {
		if t.TokenType == css.CommaToken {
			flush()
			continue
		}
		b.Write(t.Data)
	}
	flush()
	return out
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

// Props merges the declarations of every rule matching class or id, in order.
func (s *Stylesheet) Props(class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		sel := rule.Selector
		if (sel[0] == '.' && sel[1:] == class) || (sel[0] == '#' && sel[1:] == id) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}
