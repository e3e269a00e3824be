package repos

import (
	"context"
	"time"

	"dreamhome/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type InquiryRepo struct{ db *sqlx.DB }

func NewInquiryRepo(db *sqlx.DB) *InquiryRepo { return &InquiryRepo{db: db} }

func (r *InquiryRepo) Create(ctx context.Context, q *domain.Inquiry) (string, error) {
	q.ID = uuid.NewString()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inquiries(id,name,contact_no,message,property_id,created_at)
		VALUES(?,?,?,?,?,?)`,
		q.ID, q.Name, q.ContactNo, q.Message, q.PropertyID, formatTime(q.CreatedAt))
	if err != nil {
		return "", err
	}
	return q.ID, nil
}

func (r *InquiryRepo) ByProperty(ctx context.Context, propertyID string) ([]domain.Inquiry, error) {
	var rows []struct {
		ID         string `db:"id"`
		Name       string `db:"name"`
		ContactNo  string `db:"contact_no"`
		Message    string `db:"message"`
		PropertyID string `db:"property_id"`
		CreatedAt  string `db:"created_at"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id,name,contact_no,message,property_id,created_at
		FROM inquiries WHERE property_id=? ORDER BY created_at, rowid`, propertyID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Inquiry, len(rows))
	for i, row := range rows {
		out[i] = domain.Inquiry{
			ID: row.ID, Name: row.Name, ContactNo: row.ContactNo, Message: row.Message,
			PropertyID: row.PropertyID, CreatedAt: parseTime(row.CreatedAt),
		}
	}
	return out, nil
}
