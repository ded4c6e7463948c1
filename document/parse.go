package document

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/etfup"
)

// begin and end return the placeholders that delimit a block in the page.
func begin(name string) string { return "/* etfup:begin " + name + " */" }
func end(name string) string   { return "/* etfup:end " + name + " */" }

// legacy matches a block not yet wrapped in placeholders: from the constant
// declaration to the first "};". A value containing "};" would truncate the
// match, so it is only used once, to migrate a page to placeholders.
func legacy(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)const ` + regexp.QuoteMeta(name) + ` = \{.*?\};`)
}

// region is the location of a block in a page.
type region struct {
	start, end int    // span to replace, placeholders included
	body       string // the constant statement
	wrapped    bool   // false for a legacy region
}

// locate finds the block name in doc.
func locate(doc string, name string) (region, bool) {
	if i := strings.Index(doc, begin(name)); i >= 0 {
		inner := i + len(begin(name))
		j := strings.Index(doc[inner:], end(name))
		if j < 0 {
			return region{}, false
		}
		return region{
			start:   i,
			end:     inner + j + len(end(name)),
			body:    strings.TrimSpace(doc[inner : inner+j]),
			wrapped: true,
		}, true
	}
	if loc := legacy(name).FindStringIndex(doc); loc != nil {
		return region{start: loc[0], end: loc[1], body: doc[loc[0]:loc[1]]}, true
	}
	return region{}, false
}

// Extract returns the current statement of block name in doc.
func Extract(doc []byte, name string) (string, bool) {
	r, ok := locate(string(doc), name)
	return r.body, ok
}

// literal returns the JSON value assigned by a "const NAME = {...};" statement.
func literal(body string) (string, error) {
	_, value, ok := strings.Cut(body, "=")
	if !ok {
		return "", fmt.Errorf("not a constant declaration: %.40q", body)
	}
	return strings.TrimSuffix(strings.TrimSpace(value), ";"), nil
}

// ParseHoldings decodes a holdings block.
func ParseHoldings(body string) (map[string][]etfup.Holding, error) {
	value, err := literal(body)
	if err != nil {
		return nil, err
	}
	var holdings map[string][]etfup.Holding
	if err := json.Unmarshal([]byte(value), &holdings); err != nil {
		return nil, fmt.Errorf("cannot decode holdings block: %w", err)
	}
	return holdings, nil
}

// ParseReturns decodes a returns block (fund or stock returns).
func ParseReturns(body string) (map[string]etfup.Returns, error) {
	value, err := literal(body)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]*float64
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("cannot decode returns block: %w", err)
	}
	returns := make(map[string]etfup.Returns, len(raw))
	for key, periods := range raw {
		var r etfup.Returns
		for label, v := range periods {
			p, err := etfup.ParsePeriod(label)
			if err != nil {
				return nil, fmt.Errorf("returns of %s: %w", key, err)
			}
			if v != nil {
				r.Set(p, etfup.Return{Value: *v, Valid: true})
			}
		}
		returns[key] = r
	}
	return returns, nil
}
