package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type bookingView struct {
	BookingID string `json:"booking_id"`
	MatchID   string `json:"match_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

func toBookingViews(bookings []domain.Booking) []bookingView {
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, bookingView{
			BookingID: b.ID.String(),
			MatchID:   b.MatchID.String(),
			UserID:    b.UserID,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		})
	}
	return views
}

func (h *BookingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.cancel(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if user := query.Get("userId"); user != "" {
		bookings, err := h.svc.ListBookingsForUser(r.Context(), user)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string][]bookingView{"bookings": toBookingViews(bookings)})
		return
	}

	if raw := query.Get("matchId"); raw != "" {
		matchID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid match id"))
			return
		}
		bookings, err := h.svc.ListBookingsForMatch(r.Context(), matchID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string][]bookingView{"bookings": toBookingViews(bookings)})
		return
	}

	writeError(w, domain.Errorf(domain.KindInvalidArgument, "userId or matchId is required"))
}

func (h *BookingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid json body"))
		return
	}
	req.UserID = userID(r)

	resp, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("bookingId"))
	if err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid booking id"))
		return
	}

	if err := h.svc.CancelBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
