package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"dreamhome/internal/auth"
	"dreamhome/internal/domain"
	"dreamhome/internal/repos"
	"dreamhome/internal/services"
	"dreamhome/internal/storage"
)

type fixture struct {
	users    *repos.UserRepo
	props    *repos.PropertyRepo
	inq      *repos.InquiryRepo
	auth     *services.AuthService
	media    *storage.Local
	mediaDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	media, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	users := repos.NewUserRepo(db)
	return &fixture{
		users:    users,
		props:    repos.NewPropertyRepo(db),
		inq:      repos.NewInquiryRepo(db),
		auth:     services.NewAuthService(users, tokens),
		media:    media,
		mediaDir: dir,
	}
}

func (f *fixture) register(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), "Owner", email, "Passw0rd!")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func upload(field, name, body string) services.Upload {
	return services.Upload{
		Field:    field,
		Filename: name,
		Size:     int64(len(body)),
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
	}
}
