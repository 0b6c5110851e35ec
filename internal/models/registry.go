package models

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is a single named pledge toward an item. It is owned by its
// RegistryItem and never exists as a standalone document.
type Contribution struct {
	ContributorName string          `json:"contributor_name" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Timestamp       time.Time       `json:"timestamp"`
}

// RegistryItem is a gift target with a funding goal. Contributed must equal the
// sum of the contribution amounts after every successful write; the only code
// path allowed to change it is RegistryRepo.AppendContribution.
type RegistryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" validate:"required"`
	Link          string          `json:"link"`
	Total         decimal.Decimal `json:"total"`
	Contributed   decimal.Decimal `json:"contributed"`
	Contributions []Contribution  `json:"contributions"`
}

// ContributionSum recomputes the running total from the embedded contributions.
func (it *RegistryItem) ContributionSum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range it.Contributions {
		sum = sum.Add(c.Amount)
	}
	return sum
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// SlugID derives the stable item id from its display name, e.g.
// "Electric Grinder" -> "electric-grinder". CSV import keys items by this id.
func SlugID(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(s, "-")
}

type RegistryRepo interface {
	ListItems(ctx context.Context) ([]RegistryItem, error)
	GetItem(ctx context.Context, id string) (*RegistryItem, error)
	// UpsertItem creates the item if absent, otherwise replaces name/link/total.
	// Existing contributions and the running total are left untouched.
	UpsertItem(ctx context.Context, item *RegistryItem) error
	// AppendContribution atomically appends and bumps the running total in a
	// single document update, then returns the updated item.
	AppendContribution(ctx context.Context, itemID string, c Contribution) (*RegistryItem, error)
}
