package authz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"tally/internal/domain"
	"tally/internal/domain/models"
)

// In-memory fakes shared by the resolver and router tests.

type fakeChecklistStore struct {
	checklists map[string]*models.Checklist
	err        error
	panicOn    string
}

func (f *fakeChecklistStore) Create(ctx context.Context, checklist *models.Checklist) error {
	if f.checklists == nil {
		f.checklists = make(map[string]*models.Checklist)
	}
	f.checklists[checklist.ID] = checklist
	return nil
}

func (f *fakeChecklistStore) GetByID(ctx context.Context, id string) (*models.Checklist, error) {
	if f.panicOn == id {
		panic("checklist store exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	checklist, ok := f.checklists[id]
	if !ok {
		return nil, fmt.Errorf("checklist %s: %w", id, domain.ErrNotFound)
	}
	return checklist, nil
}

type fakeSectionStore struct {
	sections map[string]*models.Section
}

func (f *fakeSectionStore) Create(ctx context.Context, section *models.Section) error {
	if f.sections == nil {
		f.sections = make(map[string]*models.Section)
	}
	f.sections[section.ID] = section
	return nil
}

func (f *fakeSectionStore) GetByID(ctx context.Context, id string) (*models.Section, error) {
	section, ok := f.sections[id]
	if !ok {
		return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
	}
	return section, nil
}

type fakeItemStore struct {
	items map[string]*models.Item
}

func (f *fakeItemStore) Create(ctx context.Context, item *models.Item) error {
	if f.items == nil {
		f.items = make(map[string]*models.Item)
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemStore) GetByID(ctx context.Context, id string) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return item, nil
}

type fakeShareStore struct {
	shares map[string]*models.Share // keyed checklistID + "/" + userID
	err    error
}

func shareKey(checklistID, userID string) string {
	return checklistID + "/" + userID
}

func (f *fakeShareStore) Put(ctx context.Context, share *models.Share) error {
	if f.shares == nil {
		f.shares = make(map[string]*models.Share)
	}
	f.shares[shareKey(share.ChecklistID, share.UserID)] = share
	return nil
}

func (f *fakeShareStore) Get(ctx context.Context, checklistID, userID string) (*models.Share, error) {
	if f.err != nil {
		return nil, f.err
	}
	share, ok := f.shares[shareKey(checklistID, userID)]
	if !ok {
		return nil, fmt.Errorf("share %s/%s: %w", checklistID, userID, domain.ErrNotFound)
	}
	return share, nil
}

func (f *fakeShareStore) ListByChecklist(ctx context.Context, checklistID string) ([]models.Share, error) {
	var out []models.Share
	for _, share := range f.shares {
		if share.ChecklistID == checklistID && !share.IsPending() {
			out = append(out, *share)
		}
	}
	return out, nil
}

// stubExtractor returns a fixed identity, or an error when id is empty and
// err is set.
type stubExtractor struct {
	id  string
	err error
}

func (s stubExtractor) ExtractIdentity(credential string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.id, nil
}

// captureRecorder collects audit entries for assertions.
type captureRecorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *captureRecorder) Record(ctx context.Context, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

func (c *captureRecorder) all() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
