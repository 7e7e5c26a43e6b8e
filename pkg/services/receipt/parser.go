// Package receipt turns raw receipt text into validated product line items
// and orchestrates the acquisition pipeline around that parsing.
package receipt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"splitscan/pkg/models"
)

// pattern is one line-item shape. name and price are submatch indexes; when
// altPrice is set and its group matched, it wins over price (a line carrying
// both a unit price and a total keeps the total). Quantity groups are matched
// but deliberately discarded; only the line's price ends up on the product.
type pattern struct {
	re       *regexp.Regexp
	name     int
	price    int
	altPrice int
}

// linePatterns is tried in order; the first pattern whose candidate survives
// the filter wins. Earlier patterns are the more reliable shapes. Price
// tokens require exactly two decimal digits, so "2.999" never reads as a
// price. The trailing-price pattern is end-anchored; the quantity shapes are
// not, so they catch lines with trailing flags ("MILK 2 x 1.99 F") that the
// plain shape rejects.
var linePatterns = []pattern{
	// NAME 2.99  /  NAME $2.99 (price at end of line)
	{re: regexp.MustCompile(`^(.+?)\s+\$?(\d+\.\d{2})\s*$`), name: 1, price: 2},
	// 2 NAME @ 1.99 EA 3.98 (keep the total, not the unit price)
	{re: regexp.MustCompile(`^(\d+)\s+(.+?)\s+@\s+\$?(\d+\.\d{2})\s+EA\s+\$?(\d+\.\d{2})`), name: 2, price: 4},
	// NAME 2 x 1.99
	{re: regexp.MustCompile(`^(.+?)\s+\d+\s+[xX]\s+\$?(\d+\.\d{2})`), name: 1, price: 2},
	// NAME @ 1.99 EA [3.98]
	{re: regexp.MustCompile(`^(.+?)\s+@\s+\$?(\d+\.\d{2})\s+EA(?:\s+\$?(\d+\.\d{2}))?`), name: 1, price: 2, altPrice: 3},
	// NAME (2) 3.98
	{re: regexp.MustCompile(`^(.+?)\s*\(\d+\)\s+\$?(\d+\.\d{2})`), name: 1, price: 2},
	// NAME - 2.99
	{re: regexp.MustCompile(`^(.+?)\s+-\s+\$?(\d+\.\d{2})`), name: 1, price: 2},
	// NAME * 2.99
	{re: regexp.MustCompile(`^(.+?)\s+\*\s+\$?(\d+\.\d{2})`), name: 1, price: 2},
}

// reTrailingPrice backs the manual fallback: any two-decimal token at the
// end of a line that no pattern claimed.
var reTrailingPrice = regexp.MustCompile(`(\d+\.\d{2})\s*$`)

// Parser extracts product candidates from receipt lines and validates them
// through its filter.
type Parser struct {
	filter *Filter
}

// NewParser builds a parser. A nil filter gets the default denylist.
func NewParser(filter *Filter) *Parser {
	if filter == nil {
		filter = NewFilter()
	}
	return &Parser{filter: filter}
}

// ParseLine extracts one product from a single receipt line. A pattern match
// whose candidate the filter rejects does not stop the chain; later patterns
// still get a try, and the trailing-price fallback runs last. Lines with no
// usable candidate are dropped silently.
func (p *Parser) ParseLine(line string) (models.ExtractedProduct, bool) {
	for _, pat := range linePatterns {
		m := pat.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		priceTok := m[pat.price]
		if pat.altPrice > 0 && m[pat.altPrice] != "" {
			priceTok = m[pat.altPrice]
		}
		if prod, ok := p.candidate(m[pat.name], priceTok); ok {
			return prod, true
		}
	}

	// Manual fallback: trailing price token, everything before it is the name.
	if m := reTrailingPrice.FindStringSubmatch(line); m != nil {
		name := line[:len(line)-len(m[0])]
		if prod, ok := p.candidate(name, m[1]); ok {
			return prod, true
		}
	}

	return models.ExtractedProduct{}, false
}

func (p *Parser) candidate(rawName, priceTok string) (models.ExtractedProduct, bool) {
	price, err := decimal.NewFromString(priceTok)
	if err != nil {
		return models.ExtractedProduct{}, false
	}
	name := CleanName(rawName)
	if !p.filter.Valid(name, price) {
		return models.ExtractedProduct{}, false
	}
	return models.ExtractedProduct{
		Name:         name,
		Price:        price,
		Participants: []string{},
	}, true
}

// ParseText parses every non-blank line of the text, preserving line order
// in the returned products.
func (p *Parser) ParseText(text string) []models.ExtractedProduct {
	return p.ParseLines(strings.Split(text, "\n"))
}

// ParseLines parses the given lines in order.
func (p *Parser) ParseLines(lines []string) []models.ExtractedProduct {
	var products []models.ExtractedProduct
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if prod, ok := p.ParseLine(line); ok {
			products = append(products, prod)
		}
	}
	return products
}
