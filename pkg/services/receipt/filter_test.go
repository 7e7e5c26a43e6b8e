package receipt

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitscan/pkg/models"
)

func TestParseTextSkipsBoilerplate(t *testing.T) {
	p := NewParser(NewFilter())

	products := p.ParseText("SUBTOTAL 10.49\nTAX 0.84\nTOTAL 11.33")
	assert.Empty(t, products)
}

func TestFilterValid(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		name  string
		price string
		want  bool
	}{
		{"MILK", "2.99", true},
		{"", "2.99", false},
		{"   ", "2.99", false},
		{"MILK", "0.00", false},
		{"MILK", "-1.50", false},
		{"THANK YOU", "2.99", false},
		{"STORE CREDIT", "5.00", false},
		{"Visa Card Payment", "20.00", false},
	}
	for _, tt := range tests {
		price := decimal.RequireFromString(tt.price)
		assert.Equal(t, tt.want, f.Valid(tt.name, price), "Valid(%q, %s)", tt.name, tt.price)
	}
}

func TestAcceptedNamesContainNoDenylistKeyword(t *testing.T) {
	p := NewParser(NewFilter())

	text := strings.Join([]string{
		"MILK 2.99",
		"SUBTOTAL 10.49",
		"ORANGE JUICE 4.49",
		"LOYALTY POINTS 0.50",
		"BREAD 3.50",
		"DELIVERY FEE 5.99",
	}, "\n")

	products := p.ParseText(text)
	require.Len(t, products, 3)
	for _, prod := range products {
		lower := strings.ToLower(prod.Name)
		for _, kw := range DefaultDenylist {
			assert.NotContains(t, lower, kw, "product %q", prod.Name)
		}
	}
}

func TestFilterCustomDenylist(t *testing.T) {
	p := NewParser(NewFilterWithDenylist([]string{"pizza"}))

	products := p.ParseText("PIZZA 9.99\nTOTAL 9.99")
	require.Len(t, products, 1)
	// with a replaced denylist only the configured keyword is rejected
	assert.Equal(t, "TOTAL", products[0].Name)
}

func TestFilterExtraKeywords(t *testing.T) {
	p := NewParser(NewFilter("bodega"))

	products := p.ParseText("BODEGA SPECIAL 3.99\nMILK 2.99")
	require.Len(t, products, 1)
	assert.Equal(t, "MILK", products[0].Name)
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2 MILK @ 1.99 EA", "MILK"},
		{"  Orange   Juice  -", "Orange Juice"},
		{"42  EGGS", "EGGS"},
		{"PASTA *", "PASTA"},
		{"2% Milk 1L", "2% Milk 1L"}, // default pass keeps meaningful punctuation
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanName(tt.in), "CleanName(%q)", tt.in)
	}
}

func TestTitleCaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"orange juice", "Orange Juice"},
		{"2% milk", "2 Milk"},
		{"GREEK-YOGURT (plain)", "GREEK YOGURT Plain"},
		{"$$$", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCaseName(tt.in), "TitleCaseName(%q)", tt.in)
	}
}

func TestImproveIsIdempotent(t *testing.T) {
	f := NewFilter()
	products := []models.ExtractedProduct{
		{Name: "orange juice!", Price: decimal.RequireFromString("4.49"), Participants: []string{}},
		{Name: "2% milk", Price: decimal.RequireFromString("2.99"), Participants: []string{}},
		{Name: "$$$", Price: decimal.RequireFromString("1.00"), Participants: []string{}},
	}

	once := f.Improve(products)
	twice := f.Improve(once)

	require.Len(t, once, 2)
	assert.Equal(t, "Orange Juice", once[0].Name)
	assert.Equal(t, "2 Milk", once[1].Name)
	assert.Equal(t, once, twice)
}

func TestImproveKeepsPricesAndParticipants(t *testing.T) {
	f := NewFilter()
	products := []models.ExtractedProduct{
		{Name: "milk", Price: decimal.RequireFromString("2.99"), Participants: []string{"ana", "bo"}},
	}

	improved := f.Improve(products)
	require.Len(t, improved, 1)
	assert.Equal(t, "2.99", improved[0].Price.StringFixed(2))
	assert.Equal(t, []string{"ana", "bo"}, improved[0].Participants)
}
