package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill represents one shared grocery bill being split among participants.
type Bill struct {
	gorm.Model
	Title        string
	Store        string
	Participants string // comma-separated participant names
	Items        []BillItem
}

// BillItem is one line item on a bill. Participants holds the subset of the
// bill's participants this item is split between, comma-separated; empty
// means unassigned.
type BillItem struct {
	gorm.Model
	BillID       uint
	Name         string
	Price        decimal.Decimal `gorm:"type:numeric(10,2)"`
	Participants string
}

// SplitParticipants returns the assigned participant names, or nil when the
// item is unassigned.
func (i BillItem) SplitParticipants() []string {
	return splitList(i.Participants)
}

// AllParticipants returns the bill's participant names.
func (b Bill) AllParticipants() []string {
	return splitList(b.Participants)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
