package services

import (
	"context"
	"sync"

	"github.com/anafaris/wedding-api/internal/models"
)

// In-memory stand-ins for the Mongo repos. The registry fake serializes
// append-and-recompute behind a mutex, mirroring the single-document atomic
// update the real store relies on.

type fakeRegistryRepo struct {
	mu      sync.Mutex
	items   map[string]*models.RegistryItem
	order   []string
	upserts int
	fail    error
}

func newFakeRegistryRepo() *fakeRegistryRepo {
	return &fakeRegistryRepo{items: map[string]*models.RegistryItem{}}
}

func copyItem(item *models.RegistryItem) *models.RegistryItem {
	cp := *item
	cp.Contributions = append([]models.Contribution(nil), item.Contributions...)
	return &cp
}

func (f *fakeRegistryRepo) ListItems(ctx context.Context) ([]models.RegistryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	items := make([]models.RegistryItem, 0, len(f.order))
	for _, id := range f.order {
		items = append(items, *copyItem(f.items[id]))
	}
	return items, nil
}

func (f *fakeRegistryRepo) GetItem(ctx context.Context, id string) (*models.RegistryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	item, ok := f.items[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "registry item", ID: id}
	}
	return copyItem(item), nil
}

func (f *fakeRegistryRepo) UpsertItem(ctx context.Context, item *models.RegistryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.upserts++
	if existing, ok := f.items[item.ID]; ok {
		existing.Name = item.Name
		existing.Link = item.Link
		existing.Total = item.Total
		return nil
	}
	cp := copyItem(item)
	f.items[item.ID] = cp
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeRegistryRepo) AppendContribution(ctx context.Context, itemID string, c models.Contribution) (*models.RegistryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, &models.NotFoundError{Resource: "registry item", ID: itemID}
	}
	item.Contributions = append(item.Contributions, c)
	item.Contributed = item.Contributed.Add(c.Amount)
	return copyItem(item), nil
}

type fakeRSVPRepo struct {
	mu    sync.Mutex
	rsvps []models.RSVP
	fail  error
}

func (f *fakeRSVPRepo) InsertRSVP(ctx context.Context, rsvp *models.RSVP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.rsvps = append(f.rsvps, *rsvp)
	return nil
}

func (f *fakeRSVPRepo) ListRSVPs(ctx context.Context) ([]models.RSVP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]models.RSVP, len(f.rsvps))
	copy(out, f.rsvps)
	return out, nil
}
