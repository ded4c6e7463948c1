package document

import (
	"regexp"
	"strings"

	"github.com/etnz/etfup/date"
)

// DateLayout is how dates are written in the page annotations.
const DateLayout = "Jan 02, 2006"

var (
	compiledAnnotation = regexp.MustCompile(`EMBEDDED DATA — compiled \w+ \d+, \d{4}`)
	asOfAnnotation     = regexp.MustCompile(`Data as of \w+ \d+, \d{4}\.`)
)

// Result tells what a Patch did.
type Result struct {
	Replaced []string // blocks written
	Migrated []string // blocks found without placeholders, now wrapped
	Missing  []string // blocks whose region was not found; left out
}

// Patch replaces the blocks of doc with fresh ones and stamps the date annotations.
//
// Every block is written between its placeholders. A block found without
// placeholders (a page never patched before) is located once by its constant
// declaration and gets wrapped. Blocks with an empty body are ignored, and
// regions without a fresh block are left byte for byte unchanged.
//
// The two "as of" annotations are always rewritten with asOf.
func Patch(doc []byte, asOf date.Date, blocks ...Block) ([]byte, Result) {
	var res Result
	s := string(doc)
	for _, b := range blocks {
		if b.IsZero() {
			continue
		}
		r, ok := locate(s, b.Name)
		if !ok {
			res.Missing = append(res.Missing, b.Name)
			continue
		}
		s = s[:r.start] + wrap(b) + s[r.end:]
		res.Replaced = append(res.Replaced, b.Name)
		if !r.wrapped {
			res.Migrated = append(res.Migrated, b.Name)
		}
	}
	day := asOf.Format(DateLayout)
	s = compiledAnnotation.ReplaceAllLiteralString(s, "EMBEDDED DATA — compiled "+day)
	s = asOfAnnotation.ReplaceAllLiteralString(s, "Data as of "+day+".")
	return []byte(s), res
}

func wrap(b Block) string {
	return strings.Join([]string{begin(b.Name), b.Body, end(b.Name)}, "\n")
}
