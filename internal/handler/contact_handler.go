package handler

import (
	"net/http"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/service"
)

// ContactHandler handles contact form submission and the admin inbox.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitContactRequest is the expected JSON body for POST /api/contact.
type submitContactRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Company          string `json:"company"`
	Subject          string `json:"subject"`
	Message          string `json:"message"`
	ServiceType      string `json:"serviceType"`
	PreferredContact string `json:"preferredContact"`
	Urgency          string `json:"urgency"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg := &model.ContactMessage{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Company:          req.Company,
		Subject:          req.Subject,
		Message:          req.Message,
		ServiceType:      req.ServiceType,
		PreferredContact: req.PreferredContact,
		Urgency:          req.Urgency,
	}
	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		writeServiceError(w, r, err, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true", "id": msg.ID})
}

// adminContactListResponse is the JSON response for GET /api/admin/contacts.
type adminContactListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/contacts.
// Supports query params: status (all/new/read/replied/archived), q, limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactListOptions{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
	}
	opts.Limit, opts.Offset = page(r)

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, adminContactListResponse{Messages: messages})
}

// AdminGet handles GET /api/admin/contacts/{id}.
func (h *ContactHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	msg, err := h.contactService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// UpdateStatus handles PATCH /api/admin/contacts/{id}/status.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.contactService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true", "status": req.Status})
}

// Delete handles DELETE /api/admin/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.contactService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
