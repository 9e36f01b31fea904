package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Agungajipradana/contact-management-api/internal/api/middleware"
	"github.com/Agungajipradana/contact-management-api/internal/domain"
	"github.com/Agungajipradana/contact-management-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var input service.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, malformedBody(err))
		return
	}

	result, err := h.contactService.Create(r.Context(), user, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, result)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.contactService.List(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, result)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := contactID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.contactService.Get(r.Context(), user, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, result)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := contactID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var input service.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, malformedBody(err))
		return
	}

	result, err := h.contactService.Update(r.Context(), user, id, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, result)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := contactID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.contactService.Delete(r.Context(), user, id); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, true)
}

// A non-numeric id cannot name any contact, so it gets the same not
// found answer a missing row would.
func contactID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "contactId"), 10, 32)
	if err != nil {
		return 0, domain.ErrContactNotFound
	}
	return uint(id), nil
}
