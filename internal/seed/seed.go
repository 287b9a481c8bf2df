package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/domain/models"
	"tally/internal/domain/repositories"

	"github.com/google/uuid"
)

// Stores bundles the repositories the seeder writes through. Working against
// the interfaces keeps the seeder backend-agnostic.
type Stores struct {
	Checklists repositories.ChecklistRepository
	Sections   repositories.SectionRepository
	Items      repositories.ItemRepository
	Shares     repositories.ShareRepository
}

// Run populates a dev environment with a private checklist shared with an
// editor and a viewer, a public checklist, and one unclaimed link invite.
func Run(ctx context.Context, stores Stores, logger *slog.Logger) error {
	now := time.Now().UTC()

	private := &models.Checklist{
		ID:        uuid.NewString(),
		Title:     "Release runbook",
		Author:    "alice",
		IsPublic:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	public := &models.Checklist{
		ID:        uuid.NewString(),
		Title:     "Weekend packing list",
		Author:    "alice",
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, checklist := range []*models.Checklist{private, public} {
		if err := stores.Checklists.Create(ctx, checklist); err != nil {
			return fmt.Errorf("seed checklist %q: %w", checklist.Title, err)
		}
	}

	prep := &models.Section{
		ID:          uuid.NewString(),
		ChecklistID: private.ID,
		Title:       "Before the release",
		Position:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ship := &models.Section{
		ID:          uuid.NewString(),
		ChecklistID: private.ID,
		Title:       "Ship it",
		Position:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, section := range []*models.Section{prep, ship} {
		if err := stores.Sections.Create(ctx, section); err != nil {
			return fmt.Errorf("seed section %q: %w", section.Title, err)
		}
	}

	items := []*models.Item{
		{ID: uuid.NewString(), SectionID: prep.ID, Title: "Freeze main branch", Position: 0, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), SectionID: prep.ID, Title: "Run smoke tests", Position: 1, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), SectionID: ship.ID, Title: "Tag the release", Position: 0, CreatedAt: now, UpdatedAt: now},
	}
	for _, item := range items {
		if err := stores.Items.Create(ctx, item); err != nil {
			return fmt.Errorf("seed item %q: %w", item.Title, err)
		}
	}

	inviteToken := uuid.NewString()
	shares := []*models.Share{
		{ChecklistID: private.ID, UserID: "bob", Role: string(models.RoleEditor), SharedBy: "alice", CreatedAt: now},
		{ChecklistID: private.ID, UserID: "carol", Role: string(models.RoleViewer), SharedBy: "alice", CreatedAt: now},
		// Unclaimed link invite: placeholder userID, excluded from listings.
		{ChecklistID: private.ID, UserID: models.PendingUserPrefix + inviteToken, Role: string(models.RoleViewer), SharedBy: "alice", CreatedAt: now, ShareToken: inviteToken},
	}
	for _, share := range shares {
		if err := stores.Shares.Put(ctx, share); err != nil {
			return fmt.Errorf("seed share for %q: %w", share.UserID, err)
		}
	}

	logger.Info("seed complete",
		"private_checklist", private.ID,
		"public_checklist", public.ID,
		"shares", len(shares),
	)
	return nil
}
