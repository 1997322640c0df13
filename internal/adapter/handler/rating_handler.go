package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/services"
)

type RatingHandler struct {
	svc *services.RatingService
}

func NewRatingHandler(svc *services.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

func (h *RatingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *RatingHandler) get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("type") == "participants" {
		matchID, err := uuid.Parse(query.Get("matchId"))
		if err != nil {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid match id"))
			return
		}
		participants, err := h.svc.ListParticipants(r.Context(), matchID, userID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if participants == nil {
			participants = []services.Participant{}
		}
		writeJSON(w, http.StatusOK, map[string][]services.Participant{"participants": participants})
		return
	}

	if user := query.Get("userId"); user != "" {
		agg, err := h.svc.AggregateForUser(r.Context(), user)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, agg)
		return
	}

	if raw := query.Get("matchId"); raw != "" {
		matchID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid match id"))
			return
		}
		agg, err := h.svc.AggregateForMatch(r.Context(), matchID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, agg)
		return
	}

	writeError(w, domain.Errorf(domain.KindInvalidArgument, "userId or matchId is required"))
}

func (h *RatingHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req services.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid json body"))
		return
	}
	req.RaterID = userID(r)

	rating, err := h.svc.SubmitRating(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"rating_id": rating.ID.String()})
}
