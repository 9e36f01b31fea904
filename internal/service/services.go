package service

import (
	"github.com/Agungajipradana/contact-management-api/internal/repository"
)

type Services struct {
	User    *UserService
	Contact *ContactService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		User:    NewUserService(repos.User),
		Contact: NewContactService(repos.Contact),
	}
}
