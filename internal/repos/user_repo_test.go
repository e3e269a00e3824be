package repos_test

import (
	"context"
	"errors"
	"testing"

	"dreamhome/internal/domain"
	"dreamhome/internal/repos"
)

func TestUserRepoLifecycle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	users := repos.NewUserRepo(db)
	ctx := context.Background()

	u := &domain.User{Email: "asha@example.com", Name: "Asha", Hash: "$2a$hash"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	if u.ID == "" {
		t.Fatal("id not assigned")
	}
	dup := &domain.User{Email: "ASHA@example.com", Name: "Other", Hash: "x"}
	if err := users.Create(ctx, dup); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("duplicate email: err = %v", err)
	}

	got, err := users.ByEmail(ctx, "Asha@Example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("by email: %v %+v", err, got)
	}
	if err := users.UpdateProfile(ctx, u.ID, "Asha K", "asha.k@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := users.UpdatePassword(ctx, u.ID, "$2a$new"); err != nil {
		t.Fatal(err)
	}
	got, err = users.ByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Asha K" || got.Email != "asha.k@example.com" || got.Hash != "$2a$new" {
		t.Fatalf("after update: %+v", got)
	}
	if _, err := users.ByID(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing user: err = %v", err)
	}
	if err := users.UpdatePassword(ctx, "nope", "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("update missing: err = %v", err)
	}
}
