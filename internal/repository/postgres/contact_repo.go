package postgres

import (
	"context"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *contactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, username string, id uint) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		First(&contact, "id = ? AND username = ?", id, username).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("id ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, username string, id uint) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Contact{}, "id = ? AND username = ?", id, username).Error
}
