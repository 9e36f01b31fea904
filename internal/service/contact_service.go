package service

import (
	"context"
	"errors"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
	"github.com/Agungajipradana/contact-management-api/internal/repository"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ContactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// ContactInput is shared by create and update; an update replaces the
// whole record, so the same rules apply.
type ContactInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (i ContactInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&i.LastName, validation.Length(1, 100)),
		validation.Field(&i.Email, validation.Length(1, 100), is.Email),
		validation.Field(&i.Phone, validation.Length(1, 20)),
	)
}

type ContactResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

func toContactResponse(contact *domain.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
	}
}

func (s *ContactService) Create(ctx context.Context, user *domain.User, input ContactInput) (*ContactResponse, error) {
	logrus.WithField("username", user.Username).Debug("creating contact")

	if err := input.Validate(); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		Username:  user.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	return toContactResponse(contact), nil
}

func (s *ContactService) Get(ctx context.Context, user *domain.User, id uint) (*ContactResponse, error) {
	contact, err := s.findOwned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

func (s *ContactService) List(ctx context.Context, user *domain.User) ([]*ContactResponse, error) {
	contacts, err := s.contactRepo.ListByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	responses := make([]*ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, toContactResponse(contact))
	}
	return responses, nil
}

func (s *ContactService) Update(ctx context.Context, user *domain.User, id uint, input ContactInput) (*ContactResponse, error) {
	logrus.WithFields(logrus.Fields{
		"username":  user.Username,
		"contactId": id,
	}).Debug("updating contact")

	if err := input.Validate(); err != nil {
		return nil, err
	}

	contact, err := s.findOwned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = input.FirstName
	contact.LastName = input.LastName
	contact.Email = input.Email
	contact.Phone = input.Phone

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return toContactResponse(contact), nil
}

func (s *ContactService) Delete(ctx context.Context, user *domain.User, id uint) error {
	logrus.WithFields(logrus.Fields{
		"username":  user.Username,
		"contactId": id,
	}).Debug("deleting contact")

	if _, err := s.findOwned(ctx, user, id); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, user.Username, id)
}

// findOwned scopes every lookup to the caller's username, so a foreign
// contact id behaves exactly like a missing one.
func (s *ContactService) findOwned(ctx context.Context, user *domain.User, id uint) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, user.Username, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}
