package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"dreamhome/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

type userRow struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	Name      string `db:"name"`
	Hash      string `db:"password_hash"`
	CreatedAt string `db:"created_at"`
}

func (r userRow) user() *domain.User {
	return &domain.User{ID: r.ID, Email: r.Email, Name: r.Name, Hash: r.Hash, CreatedAt: parseTime(r.CreatedAt)}
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	var row userRow
	err := r.DB.GetContext(ctx, &row, `SELECT id,email,name,password_hash,created_at FROM users WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.user(), nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `LOWER(email)=LOWER(?)`, email)
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `id=?`, id)
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := r.DB.ExecContext(ctx, `INSERT INTO users(id,email,name,password_hash,created_at) VALUES(?,?,?,?,?)`,
		u.ID, u.Email, u.Name, u.Hash, formatTime(u.CreatedAt))
	return uniqueEmail(err)
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id, name, email string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET name=?, email=? WHERE id=?`, name, email, id)
	if err != nil {
		return uniqueEmail(err)
	}
	return affected(res, domain.ErrUserNotFound)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash=? WHERE id=?`, hash, id)
	if err != nil {
		return err
	}
	return affected(res, domain.ErrUserNotFound)
}

func uniqueEmail(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrEmailInUse
	}
	return err
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
