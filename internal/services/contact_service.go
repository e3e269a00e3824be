package services

import (
	"context"

	"dreamhome/internal/domain"
	applog "dreamhome/internal/log"
	"dreamhome/internal/validate"
)

type ContactInput struct {
	Name       string
	ContactNo  string
	Message    string
	PropertyID string
}

type ContactService struct {
	Properties PropertyStore
	Inquiries  InquiryStore
}

func NewContactService(props PropertyStore, inq InquiryStore) *ContactService {
	return &ContactService{Properties: props, Inquiries: inq}
}

// Submit records an inquiry for an existing listing and returns its id.
// Nothing is stored when validation fails or the listing is unknown.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (string, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return "", domain.Invalid("name", "Name is required")
	}
	msg, ok := validate.Text(in.Message, 2000)
	if !ok {
		return "", domain.Invalid("message", "Message is required")
	}
	phone, ok := validate.ContactNo(in.ContactNo)
	if !ok {
		return "", domain.Invalid("contact_no", "Contact number must contain only digits")
	}
	pid, ok := validate.ID(in.PropertyID)
	if !ok {
		return "", domain.ErrPropertyNotFound
	}
	exists, err := s.Properties.Exists(ctx, pid)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.ErrPropertyNotFound
	}

	id, err := s.Inquiries.Create(ctx, &domain.Inquiry{Name: name, ContactNo: phone, Message: msg, PropertyID: pid})
	if err != nil {
		return "", err
	}
	applog.L().Info("inquiry.created", "inquiry_id", id, "property_id", pid)
	return id, nil
}

// ForOwner lists inquiries left on one of the caller's listings, oldest
// first. Listings owned by someone else look the same as missing ones.
func (s *ContactService) ForOwner(ctx context.Context, userID, propertyID string) ([]domain.Inquiry, error) {
	pid, ok := validate.ID(propertyID)
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	rec, err := s.Properties.Get(ctx, pid)
	if err != nil {
		return nil, err
	}
	if rec.ListedBy == "" || rec.ListedBy != userID {
		return nil, domain.ErrPropertyNotFound
	}
	return s.Inquiries.ByProperty(ctx, pid)
}
