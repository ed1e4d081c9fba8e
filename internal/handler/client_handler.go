package handler

import (
	"net/http"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/service"
)

// ClientHandler serves the admin client register.
type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type clientRequest struct {
	Name     string   `json:"name"`
	Company  string   `json:"company"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Services []string `json:"services"`
	Status   string   `json:"status"`
	TRN      string   `json:"trn"`
	Notes    string   `json:"notes"`
}

func (req clientRequest) toModel() *model.Client {
	return &model.Client{
		Name:     req.Name,
		Company:  req.Company,
		Email:    req.Email,
		Phone:    req.Phone,
		Services: req.Services,
		Status:   req.Status,
		TRN:      req.TRN,
		Notes:    req.Notes,
	}
}

type clientListResponse struct {
	Clients []*model.Client `json:"clients"`
}

// List handles GET /api/admin/clients?status=&q=&limit=&offset=.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := model.ClientListOptions{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
	}
	opts.Limit, opts.Offset = page(r)

	clients, err := h.clientService.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if clients == nil {
		clients = []*model.Client{}
	}
	writeJSON(w, http.StatusOK, clientListResponse{Clients: clients})
}

// Create handles POST /api/admin/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c := req.toModel()
	if err := h.clientService.Create(r.Context(), c); err != nil {
		writeServiceError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Get handles GET /api/admin/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.clientService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Update handles PUT /api/admin/clients/{id}. The body replaces every field.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req clientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c := req.toModel()
	c.ID = id
	if err := h.clientService.Update(r.Context(), c); err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/admin/clients/{id}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.clientService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConvertContact handles POST /api/admin/contacts/{id}/convert.
func (h *ClientHandler) ConvertContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.clientService.ConvertContact(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "convert_failed")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
