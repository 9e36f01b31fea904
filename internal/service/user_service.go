package service

import (
	"context"
	"errors"

	"github.com/Agungajipradana/contact-management-api/internal/domain"
	"github.com/Agungajipradana/contact-management-api/internal/repository"
	"github.com/Agungajipradana/contact-management-api/internal/security"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type RegisterUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (i RegisterUserInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&i.Password, validation.Required, validation.Length(1, 100)),
		validation.Field(&i.Name, validation.Required, validation.Length(1, 100)),
	)
}

type LoginUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (i LoginUserInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&i.Password, validation.Required, validation.Length(1, 100)),
	)
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (i UpdateUserInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&i.Password, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

// UserResponse is the outward shape of a user. The password hash never
// leaves the service, and the token only appears on login.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*UserResponse, error) {
	logrus.WithField("username", input.Username).Debug("registering new user")

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Advisory pre-check; the unique index on username is the final
	// authority when two registrations race.
	count, err := s.userRepo.CountByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if count != 0 {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Name:         input.Name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}

	return &UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

func (s *UserService) Login(ctx context.Context, input LoginUserInput) (*UserResponse, error) {
	logrus.WithField("username", input.Username).Debug("user login")

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !security.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// A fresh token replaces whatever was there, so any previous session
	// stops resolving. Single-session model.
	token := security.NewToken()
	user.Token = &token
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &UserResponse{
		Username: user.Username,
		Name:     user.Name,
		Token:    token,
	}, nil
}

// Get returns the profile of an already-resolved identity. No lookup is
// needed; the authenticator fetched the current record.
func (s *UserService) Get(user *domain.User) *UserResponse {
	return &UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}
}

func (s *UserService) Update(ctx context.Context, user *domain.User, input UpdateUserInput) (*UserResponse, error) {
	logrus.WithField("username", user.Username).Debug("updating user")

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

func (s *UserService) Logout(ctx context.Context, user *domain.User) (*UserResponse, error) {
	logrus.WithField("username", user.Username).Debug("user logout")

	user.Token = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}, nil
}
