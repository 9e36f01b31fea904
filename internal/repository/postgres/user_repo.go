package postgres

import (
	"context"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	// Save writes every column, including a nil token, which is what
	// logout relies on.
	return r.db.WithContext(ctx).Save(user).Error
}
