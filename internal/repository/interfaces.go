package repository

import (
	"context"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByToken(ctx context.Context, token string) (*domain.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	Update(ctx context.Context, user *domain.User) error
}

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	FindByID(ctx context.Context, username string, id uint) (*domain.Contact, error)
	ListByUsername(ctx context.Context, username string) ([]*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, username string, id uint) error
}

type Repositories struct {
	User    UserRepository
	Contact ContactRepository
}
