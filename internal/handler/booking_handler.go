package handler

import (
	"net/http"
	"time"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/service"
)

// BookingHandler handles consultation requests and their admin management.
type BookingHandler struct {
	bookingService service.BookingService
	now            func() time.Time
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, now: time.Now}
}

type submitBookingRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	ServiceType   string `json:"serviceType"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	MeetingType   string `json:"meetingType"`
	Urgency       string `json:"urgency"`
	Notes         string `json:"notes"`
}

// Submit handles POST /api/bookings.
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b := &model.Booking{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		ServiceType:   req.ServiceType,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		MeetingType:   req.MeetingType,
		Urgency:       req.Urgency,
		Notes:         req.Notes,
	}
	if err := h.bookingService.Submit(r.Context(), b); err != nil {
		writeServiceError(w, r, err, "submit_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true", "id": b.ID, "status": b.Status})
}

type adminBookingListResponse struct {
	Bookings []*model.Booking `json:"bookings"`
}

// AdminList handles GET /api/admin/bookings?status=&from=&to=&limit=&offset=.
func (h *BookingHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := model.BookingListOptions{
		Status: q.Get("status"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	opts.Limit, opts.Offset = page(r)

	bookings, err := h.bookingService.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	writeJSON(w, http.StatusOK, adminBookingListResponse{Bookings: bookings})
}

// Agenda handles GET /api/admin/bookings/agenda?date=YYYY-MM-DD. The date
// defaults to today in the office time zone.
func (h *BookingHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.now().In(service.OfficeZone).Format(time.DateOnly)
	}
	bookings, err := h.bookingService.Agenda(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err, "agenda_failed")
		return
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "bookings": bookings})
}

// AdminGet handles GET /api/admin/bookings/{id}.
func (h *BookingHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.bookingService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateStatus handles PATCH /api/admin/bookings/{id}/status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.bookingService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type rescheduleRequest struct {
	PreferredDate *string `json:"preferredDate"`
	PreferredTime *string `json:"preferredTime"`
	MeetingType   *string `json:"meetingType"`
}

// Reschedule handles PUT /api/admin/bookings/{id}. Omitted fields are kept.
func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req rescheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.bookingService.Reschedule(r.Context(), id, model.BookingReschedule{
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		MeetingType:   req.MeetingType,
	})
	if err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/admin/bookings/{id}.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.bookingService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
