package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anafaris/wedding-api/internal/csvio"
	"github.com/anafaris/wedding-api/internal/models"
)

type RegistryService struct {
	registryRepo models.RegistryRepo
}

func NewRegistryService(registryRepo models.RegistryRepo) *RegistryService {
	return &RegistryService{
		registryRepo: registryRepo,
	}
}

type ImportSummary struct {
	ItemsCount         int `json:"items_count"`
	TotalContributions int `json:"total_contributions"`
}

func (gs *RegistryService) ListItems(ctx context.Context) ([]models.RegistryItem, error) {
	return gs.registryRepo.ListItems(ctx)
}

// SubmitContribution appends a pledge to an item. Overfunding is allowed:
// guests may keep contributing past the item's funding goal.
func (gs *RegistryService) SubmitContribution(ctx context.Context, itemID, contributorName string, amount decimal.Decimal) (*models.RegistryItem, error) {
	itemID = strings.TrimSpace(itemID)
	contributorName = strings.TrimSpace(contributorName)

	if itemID == "" {
		return nil, &models.ValidationError{Field: "item_id", Reason: "must not be empty"}
	}
	if contributorName == "" {
		return nil, &models.ValidationError{Field: "contributor_name", Reason: "must not be empty"}
	}
	if amount.Sign() <= 0 {
		return nil, &models.ValidationError{Field: "amount", Reason: "must be greater than 0"}
	}

	contribution := models.Contribution{
		ContributorName: contributorName,
		Amount:          amount,
		Timestamp:       time.Now().UTC(),
	}

	return gs.registryRepo.AppendContribution(ctx, itemID, contribution)
}

// pendingItem accumulates every CSV row for one item name before anything is
// written, so a bad row later in the file can abort the whole upload.
type pendingItem struct {
	item          models.RegistryItem
	contributions []models.Contribution
}

// ImportCSV upserts registry items and appends contributions from an uploaded
// file. Validation is all-or-nothing: the file is fully parsed before the
// first write, and any ParseError leaves the store untouched. The first row
// carrying an item name fixes that item's link and total, whether it is a
// declaration row or a contribution row. Items in the store that the file
// never mentions are left as they are.
func (gs *RegistryService) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	rows, err := csvio.Parse(r)
	if err != nil {
		return nil, err
	}

	pending := map[string]*pendingItem{}
	var order []string

	for _, row := range rows {
		var name, link string
		var total decimal.Decimal
		if row.Declaration != nil {
			name, link, total = row.Declaration.Name, row.Declaration.Link, row.Declaration.Total
		} else {
			name, link, total = row.Contribution.ItemName, row.Contribution.Link, row.Contribution.Total
		}

		id := models.SlugID(name)
		p, seen := pending[id]
		if !seen {
			// The first row for a distinct name wins for link and total,
			// whether it is a declaration or a contribution row.
			p = &pendingItem{item: models.RegistryItem{ID: id, Name: name, Link: link, Total: total}}
			pending[id] = p
			order = append(order, id)
		}

		if row.Contribution != nil {
			c := models.Contribution{
				ContributorName: row.Contribution.Contributor,
				Amount:          row.Contribution.Amount,
				Timestamp:       row.Contribution.Timestamp,
			}
			if c.Timestamp.IsZero() {
				c.Timestamp = time.Now().UTC()
			}
			p.contributions = append(p.contributions, c)
		}
	}

	summary := &ImportSummary{}
	for _, id := range order {
		p := pending[id]
		if err := gs.registryRepo.UpsertItem(ctx, &p.item); err != nil {
			return nil, err
		}
		summary.ItemsCount++
		for _, c := range p.contributions {
			if _, err := gs.registryRepo.AppendContribution(ctx, id, c); err != nil {
				return nil, err
			}
			summary.TotalContributions++
		}
	}
	return summary, nil
}

// ExportCSV is the inverse of ImportCSV over current store state.
func (gs *RegistryService) ExportCSV(ctx context.Context) ([]byte, error) {
	items, err := gs.registryRepo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	out, err := csvio.Serialize(items)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize registry: %v", err)
	}
	return out, nil
}

// SeedDefaults installs the initial gift items. Safe to run repeatedly: items
// are upserted by id and existing contributions survive.
func (gs *RegistryService) SeedDefaults(ctx context.Context) error {
	defaults := []models.RegistryItem{
		{Name: "Plates", Link: "https://shopee.com.my", Total: decimal.NewFromInt(100)},
		{Name: "Carpet", Link: "https://shopee.com.my", Total: decimal.NewFromInt(200)},
		{Name: "Electric Grinder", Link: "https://shopee.com.my", Total: decimal.NewFromInt(2000)},
		{Name: "Bicycle", Link: "https://shopee.com.my", Total: decimal.NewFromInt(1000)},
	}

	for i := range defaults {
		defaults[i].ID = models.SlugID(defaults[i].Name)
		if err := gs.registryRepo.UpsertItem(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
