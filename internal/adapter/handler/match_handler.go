package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/services"
)

type MatchHandler struct {
	svc *services.MatchService
}

func NewMatchHandler(svc *services.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

type matchView struct {
	MatchID     string  `json:"match_id"`
	OrganizerID string  `json:"organizer_id"`
	Venue       string  `json:"venue"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Format      string  `json:"format"`
	Price       float64 `json:"price"`
	TotalSeats  int     `json:"total_seats"`
	Occupied    int     `json:"occupied_seats"`
	Status      string  `json:"status"`
}

func toMatchView(m *domain.Match) matchView {
	return matchView{
		MatchID:     m.ID.String(),
		OrganizerID: m.OrganizerID,
		Venue:       m.Location.Venue,
		Address:     m.Location.Address,
		City:        m.Location.City,
		Region:      m.Location.Region,
		Lat:         m.Location.Lat,
		Lng:         m.Location.Lng,
		Date:        m.Date,
		Time:        m.Time,
		Format:      string(m.Format),
		Price:       m.Price,
		TotalSeats:  m.TotalSeats,
		Occupied:    m.Occupied,
		Status:      string(m.Status),
	}
}

func (h *MatchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.cancel(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *MatchHandler) get(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("matchId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid match id"))
			return
		}
		match, err := h.svc.GetMatch(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]matchView{"match": toMatchView(match)})
		return
	}

	query := r.URL.Query()
	matches, err := h.svc.ListMatches(r.Context(), services.ListMatchesRequest{
		Format:      query.Get("format"),
		City:        query.Get("city"),
		Region:      query.Get("region"),
		IncludePast: query.Get("includePast") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]matchView, 0, len(matches))
	for i := range matches {
		views = append(views, toMatchView(&matches[i]))
	}
	writeJSON(w, http.StatusOK, map[string][]matchView{"matches": views})
}

func (h *MatchHandler) create(w http.ResponseWriter, r *http.Request) {
	var spec services.MatchSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid json body"))
		return
	}

	match, err := h.svc.CreateMatch(r.Context(), userID(r), spec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"match_id": match.ID.String()})
}

func (h *MatchHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("matchId"))
	if err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid match id"))
		return
	}

	var spec services.MatchSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid json body"))
		return
	}

	match, err := h.svc.UpdateMatch(r.Context(), id, userID(r), spec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]matchView{"match": toMatchView(match)})
}

func (h *MatchHandler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("matchId"))
	if err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid match id"))
		return
	}

	if err := h.svc.CancelMatch(r.Context(), id, userID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
