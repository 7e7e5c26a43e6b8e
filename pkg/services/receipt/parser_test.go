package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextSimpleItems(t *testing.T) {
	p := NewParser(nil)

	products := p.ParseText("MILK 2.99\nBREAD 3.50\nAPPLES 4.99")
	require.Len(t, products, 3)

	want := []struct {
		name  string
		price string
	}{
		{"MILK", "2.99"},
		{"BREAD", "3.50"},
		{"APPLES", "4.99"},
	}
	for i, w := range want {
		assert.Equal(t, w.name, products[i].Name)
		assert.Equal(t, w.price, products[i].Price.StringFixed(2))
		assert.NotNil(t, products[i].Participants)
		assert.Empty(t, products[i].Participants)
	}
}

func TestParseLinePatterns(t *testing.T) {
	p := NewParser(nil)

	tests := []struct {
		line      string
		wantName  string
		wantPrice string
	}{
		{"MILK 2.99", "MILK", "2.99"},
		{"Orange Juice  -  4.49", "Orange Juice", "4.49"},
		{"Milk - 2.99", "Milk", "2.99"},
		{"PASTA * 1.89", "PASTA", "1.89"},
		{"Greek Yogurt $5.49", "Greek Yogurt", "5.49"},
		// quantity shapes keep the line total, not the unit price
		{"2 MILK @ 1.99 EA 3.98", "MILK", "3.98"},
		{"CHEESE 2 x 3.49 T", "CHEESE", "3.49"},
		{"EGGS (2) 5.98 F", "EGGS", "5.98"},
		// manual fallback: trailing price with no separating whitespace
		{"BANANAS:0.59", "BANANAS", "0.59"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			prod, ok := p.ParseLine(tt.line)
			require.True(t, ok, "expected a product from %q", tt.line)
			assert.Equal(t, tt.wantName, prod.Name)
			assert.Equal(t, tt.wantPrice, prod.Price.StringFixed(2))
		})
	}
}

func TestParseLineRejects(t *testing.T) {
	p := NewParser(nil)

	lines := []string{
		"",
		"JUST A HEADER",
		// a token with other than two decimal digits is not a price
		"WIDGET 2.999",
		"WIDGET 2.9",
		// price must be positive
		"FREEBIE 0.00",
		// price with no name
		"4.99",
		// boilerplate
		"SUBTOTAL 10.49",
	}
	for _, line := range lines {
		_, ok := p.ParseLine(line)
		assert.False(t, ok, "expected no product from %q", line)
	}
}

func TestParseTextPreservesLineOrder(t *testing.T) {
	p := NewParser(nil)

	products := p.ParseText("FIRST ITEM 1.01\nSECOND ITEM 2.02\nTHIRD ITEM 3.03")
	require.Len(t, products, 3)
	assert.Equal(t, "1.01", products[0].Price.StringFixed(2))
	assert.Equal(t, "2.02", products[1].Price.StringFixed(2))
	assert.Equal(t, "3.03", products[2].Price.StringFixed(2))
}

func TestParseTextDropsUnmatchedLinesSilently(t *testing.T) {
	p := NewParser(nil)

	products := p.ParseText("WELCOME TO THE SHOP\nMILK 2.99\n-----\nBREAD 3.50")
	require.Len(t, products, 2)
	assert.Equal(t, "MILK", products[0].Name)
	assert.Equal(t, "BREAD", products[1].Name)
}
