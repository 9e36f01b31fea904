package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Agungajipradana/contact-management-api/internal/api/middleware"
	"github.com/Agungajipradana/contact-management-api/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, malformedBody(err))
		return
	}

	result, err := h.userService.Register(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, result)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, malformedBody(err))
		return
	}

	result, err := h.userService.Login(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, result)
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, h.userService.Get(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var input service.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, malformedBody(err))
		return
	}

	result, err := h.userService.Update(r.Context(), user, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, result)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.userService.Logout(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, true)
}
