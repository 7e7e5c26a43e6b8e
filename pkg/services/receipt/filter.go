package receipt

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"splitscan/pkg/models"
)

// DefaultDenylist holds lowercased substrings that mark a line as receipt
// boilerplate rather than a product: payment vocabulary, receipt metadata,
// promotional wording and storefront/operational terms. It is a heuristic
// tuned against observed receipts; deployments add storefront-specific terms
// through NewFilter.
var DefaultDenylist = []string{
	"total", "subtotal", "tax", "change", "cash", "card", "debit", "credit",
	"receipt", "store", "date", "time", "register", "transaction", "thank",
	"welcome", "please", "return", "exchange", "refund", "discount", "sale",
	"coupon", "loyalty", "points", "balance", "amount", "due", "paid",
	"invoice", "bill", "statement", "account", "customer", "order",
	"shipping", "handling", "delivery", "service", "charge", "fee",
	"walmart", "grocery", "pickup", "number", "phone", "email", "address",
	"website",
}

var (
	reLeadingQty = regexp.MustCompile(`^\d+\s+`)
	reEASuffix   = regexp.MustCompile(`\s+@\s+\$?\d+\.\d{2}\s+EA.*$`)
	reSpaces     = regexp.MustCompile(`\s+`)
	reNonAlnum   = regexp.MustCompile(`[^A-Za-z0-9\s]`)
)

// Filter accepts or rejects parsed (name, price) candidates and cleans
// accepted names.
type Filter struct {
	denylist []string
}

// NewFilter builds a filter from the default denylist plus any extra
// storefront keywords.
func NewFilter(extra ...string) *Filter {
	denylist := make([]string, 0, len(DefaultDenylist)+len(extra))
	denylist = append(denylist, DefaultDenylist...)
	for _, kw := range extra {
		if kw = strings.TrimSpace(strings.ToLower(kw)); kw != "" {
			denylist = append(denylist, kw)
		}
	}
	return &Filter{denylist: denylist}
}

// NewFilterWithDenylist builds a filter from exactly the given denylist,
// replacing the default. Used by tests and non-default storefronts.
func NewFilterWithDenylist(denylist []string) *Filter {
	return &Filter{denylist: denylist}
}

// Valid reports whether a candidate is a real product: positive price,
// non-empty name, and no boilerplate keyword in the name.
func (f *Filter) Valid(name string, price decimal.Decimal) bool {
	name = strings.TrimSpace(name)
	if name == "" || !price.IsPositive() {
		return false
	}
	lower := strings.ToLower(name)
	for _, kw := range f.denylist {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// CleanName normalizes a raw parsed product name: strips stray leading
// quantity digits, strips "@ price EA..." suffixes, collapses whitespace and
// trims trailing punctuation left behind by delimiter patterns.
func CleanName(name string) string {
	name = reLeadingQty.ReplaceAllString(name, "")
	name = reEASuffix.ReplaceAllString(name, "")
	name = reSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	return strings.TrimSpace(strings.TrimRight(name, ".,;:-*_"))
}

// TitleCaseName is the lossier second-pass normalizer: it drops every
// non-alphanumeric character and uppercases the first letter of each word.
// It destroys meaningful punctuation ("2% Milk" becomes "2 Milk"), so it
// only runs on demand, never on the default path. Applying it twice gives
// the same result as applying it once.
func TitleCaseName(name string) string {
	name = reNonAlnum.ReplaceAllString(name, " ")
	name = reSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Improve re-runs the lossy normalizer over an already-extracted product
// list, dropping products whose names come out empty. Prices and participant
// assignments are untouched.
func (f *Filter) Improve(products []models.ExtractedProduct) []models.ExtractedProduct {
	out := make([]models.ExtractedProduct, 0, len(products))
	for _, p := range products {
		name := TitleCaseName(p.Name)
		if name == "" {
			continue
		}
		p.Name = name
		out = append(out, p)
	}
	return out
}
