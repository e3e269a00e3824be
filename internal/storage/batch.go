package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"dreamhome/internal/domain"
	applog "dreamhome/internal/log"
)

// ErrTooLarge is returned when an upload exceeds its cap.
var ErrTooLarge = errors.New("file exceeds size limit")

// Batch tracks everything written for one request so a failed request can
// take its files back.
type Batch struct {
	store Store
	refs  []string
}

func NewBatch(s Store) *Batch { return &Batch{store: s} }

// Put checks the declared size against limit before anything is written.
func (b *Batch) Put(ctx context.Context, kind Kind, filename string, r io.Reader, size, limit int64, contentType string) (string, error) {
	key := Key(kind, filename)
	if limit > 0 && size > limit {
		return "", &domain.StorageError{Key: filename, Err: fmt.Errorf("%w (%d > %d bytes)", ErrTooLarge, size, limit)}
	}
	ref, err := b.store.Put(ctx, key, r, size, contentType)
	if err != nil {
		return "", &domain.StorageError{Key: key, Err: err}
	}
	b.refs = append(b.refs, ref)
	return ref, nil
}

// Refs returns the references written so far, in order.
func (b *Batch) Refs() []string { return append([]string(nil), b.refs...) }

// Rollback deletes every file in the batch. Failures are logged and skipped.
func (b *Batch) Rollback(ctx context.Context) {
	for _, ref := range b.refs {
		if err := b.store.Delete(ctx, ref); err != nil {
			applog.Error(nil, "media.rollback.fail", err, map[string]any{"ref": ref})
		}
	}
	b.refs = nil
}
