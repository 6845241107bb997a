package repository_test

import (
	"context"
	"errors"
	"testing"

	"package_features/internal/models"
	"package_features/internal/repository"
)

func createUser(t *testing.T, repo *repository.UserRepository, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Username: "u-" + email, PasswordHash: "hash", Status: models.StatusActive}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create(%s): %v", email, err)
	}
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := createUser(t, repo, "a@x.com")
	if u.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil || byID == nil {
		t.Fatalf("GetByID: user=%v err=%v", byID, err)
	}
	if byID.Email != "a@x.com" || byID.PasswordHash != "hash" || byID.Status != models.StatusActive {
		t.Fatalf("unexpected user: %+v", byID)
	}

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil || byEmail == nil || byEmail.ID != u.ID {
		t.Fatalf("GetByEmail: user=%v err=%v", byEmail, err)
	}
}

func TestUserRepository_GetMissingReturnsNil(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	u, err := repo.GetByID(context.Background(), 404)
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", u, err)
	}
	u, err = repo.GetByEmail(context.Background(), "ghost@x.com")
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", u, err)
	}
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	createUser(t, repo, "dup@x.com")

	err := repo.Create(context.Background(), &models.User{Email: "dup@x.com", Username: "other", PasswordHash: "h", Status: models.StatusActive})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_ListFiltersByStatus(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()
	a := createUser(t, repo, "a@x.com")
	createUser(t, repo, "b@x.com")
	if _, err := repo.SetStatus(ctx, a.ID, models.StatusInactive); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	all, err := repo.List(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("List all: len=%d err=%v", len(all), err)
	}
	active, err := repo.List(ctx, models.StatusActive)
	if err != nil || len(active) != 1 || active[0].Email != "b@x.com" {
		t.Fatalf("List active: %+v err=%v", active, err)
	}
	inactive, err := repo.List(ctx, models.StatusInactive)
	if err != nil || len(inactive) != 1 || inactive[0].ID != a.ID {
		t.Fatalf("List inactive: %+v err=%v", inactive, err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()
	u := createUser(t, repo, "a@x.com")
	other := createUser(t, repo, "b@x.com")

	u.Username = "renamed"
	u.PasswordHash = "new-hash"
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.GetByID(ctx, u.ID)
	if got.Username != "renamed" || got.PasswordHash != "new-hash" {
		t.Fatalf("update not persisted: %+v", got)
	}

	// taking another user's email violates the unique index
	u.Email = other.Email
	if err := repo.Update(ctx, u); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	missing := &models.User{ID: 999, Email: "z@x.com", Username: "z", PasswordHash: "h", Status: models.StatusActive}
	if err := repo.Update(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_SetStatusKeepsRecord(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()
	u := createUser(t, repo, "a@x.com")

	got, err := repo.SetStatus(ctx, u.ID, models.StatusInactive)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != models.StatusInactive || got.Email != "a@x.com" {
		t.Fatalf("unexpected user after soft delete: %+v", got)
	}
	again, err := repo.GetByID(ctx, u.ID)
	if err != nil || again == nil || again.Status != models.StatusInactive {
		t.Fatalf("record should persist as inactive: %+v err=%v", again, err)
	}

	if _, err := repo.SetStatus(ctx, 999, models.StatusInactive); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
