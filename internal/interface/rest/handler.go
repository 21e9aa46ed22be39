package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bookingflow-service/internal/domain/entity"
	"bookingflow-service/internal/interface/repository"
	"bookingflow-service/internal/store"
	"bookingflow-service/internal/usecase"
	"bookingflow-service/pkg/logger"
	"bookingflow-service/pkg/metrics"
)

// Handler exposes the booking flow over HTTP
type Handler struct {
	sessions        *usecase.SessionManager
	flow            *usecase.BookingFlow
	defaultCurrency string
	logger          logger.Logger
	metrics         *metrics.Metrics
}

func NewHandler(sessions *usecase.SessionManager, flow *usecase.BookingFlow, defaultCurrency string, log logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		sessions:        sessions,
		flow:            flow,
		defaultCurrency: defaultCurrency,
		logger:          log,
		metrics:         m,
	}
}

// Register wires all booking routes onto the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/sessions", h.createSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}", h.getSession)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", h.resetSession)

	mux.HandleFunc("PUT /api/v1/sessions/{id}/legs", h.setLegs)
	mux.HandleFunc("POST /api/v1/sessions/{id}/price", h.fetchPricing)
	mux.HandleFunc("POST /api/v1/sessions/{id}/seatmaps", h.fetchSeatMaps)
	mux.HandleFunc("GET /api/v1/sessions/{id}/seatmaps/{journeyKey}", h.getSeatRows)

	mux.HandleFunc("PUT /api/v1/sessions/{id}/passengers/{paxId}", h.updatePassenger)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/contact", h.updateContact)

	mux.HandleFunc("PUT /api/v1/sessions/{id}/seats/draft", h.setSeatDraft)
	mux.HandleFunc("POST /api/v1/sessions/{id}/seats/confirm", h.confirmSeat)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}/seats/draft", h.releaseSeatDraft)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}/seats/saved", h.releaseSeatSaved)

	mux.HandleFunc("GET /api/v1/sessions/{id}/addons/{kind}/{journeyKey}", h.getAddOnOffers)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/addons/{kind}/draft", h.setAddOnDraft)
	mux.HandleFunc("POST /api/v1/sessions/{id}/addons/{kind}/confirm", h.confirmAddOn)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}/addons/{kind}/draft", h.releaseAddOnDraft)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}/addons/{kind}/saved", h.releaseAddOnSaved)

	mux.HandleFunc("GET /api/v1/sessions/{id}/summary", h.getSummary)
	mux.HandleFunc("POST /api/v1/sessions/{id}/submit", h.submit)
}

type createSessionRequest struct {
	Currency string `json:"currency"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`
}

type sessionSnapshot struct {
	ID            string             `json:"id"`
	Currency      string             `json:"currency"`
	CreatedAt     time.Time          `json:"createdAt"`
	Legs          []entity.OfferLeg  `json:"legs"`
	Passengers    []entity.Passenger `json:"passengers"`
	Contact       entity.Contact     `json:"contact"`
	PricingStatus store.Status       `json:"pricingStatus"`
}

func snapshotOf(session *usecase.BookingSession) sessionSnapshot {
	legs := session.Legs.Legs()
	return sessionSnapshot{
		ID:            session.ID,
		Currency:      session.Currency,
		CreatedAt:     session.CreatedAt,
		Legs:          legs,
		Passengers:    session.Passengers(),
		Contact:       session.Contact(),
		PricingStatus: session.Pricing.Get(store.RequestKey(legs)).Status,
	}
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Currency == "" {
		req.Currency = h.defaultCurrency
	}

	session := h.sessions.Create(req.Currency, req.Adults, req.Children, req.Infants)
	writeJSON(w, http.StatusCreated, snapshotOf(session))
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshotOf(session))
}

func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.Reset()
	h.logger.Info("Booking session reset", "sessionId", session.ID)
	writeJSON(w, http.StatusOK, snapshotOf(session))
}

type setLegsRequest struct {
	Legs []entity.OfferLeg `json:"legs"`
}

func (h *Handler) setLegs(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req setLegsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Legs.SetLegs(req.Legs)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"legs":      session.Legs.Legs(),
		"validLegs": session.Legs.ValidLegs(),
	})
}

func (h *Handler) fetchPricing(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := h.flow.FetchPricing(r.Context(), session); err != nil {
		h.writeFlowError(w, "fetch pricing", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     store.StatusSucceeded,
		"flightLegs": h.flow.FlightLegs(session),
	})
}

func (h *Handler) fetchSeatMaps(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	results := h.flow.FetchSeatMaps(r.Context(), session)

	out := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		item := map[string]interface{}{"journeyKey": res.JourneyKey, "ok": res.Err == nil}
		if res.Err != nil {
			item["error"] = res.Err.Error()
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": out})
}

func (h *Handler) getSeatRows(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	journeyKey := r.PathValue("journeyKey")

	response := map[string]interface{}{
		"journeyKey": journeyKey,
		"rows":       h.flow.SeatRows(session, journeyKey),
	}
	// With a paxId the caller also gets the codes other passengers hold
	if paxID := r.URL.Query().Get("paxId"); paxID != "" {
		occupied := session.Seats.OccupiedByOther(paxID, journeyKey)
		codes := make([]string, 0, len(occupied))
		for code := range occupied {
			codes = append(codes, code)
		}
		response["occupiedByOther"] = codes
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) updatePassenger(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var form entity.PassengerForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	paxID := r.PathValue("paxId")
	if err := session.UpdateForm(paxID, form); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"paxId": paxID, "complete": form.Complete()})
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var contact entity.Contact
	if err := decodeBody(r, &contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.SetContact(contact)
	writeJSON(w, http.StatusOK, map[string]interface{}{"complete": contact.Complete()})
}

type seatDraftRequest struct {
	PaxID      string               `json:"paxId"`
	JourneyKey string               `json:"journeyKey"`
	Seat       entity.SeatSelection `json:"seat"`
}

type selectionTarget struct {
	PaxID      string `json:"paxId"`
	JourneyKey string `json:"journeyKey"`
}

func (h *Handler) setSeatDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req seatDraftRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !session.HasPassenger(req.PaxID) {
		writeError(w, http.StatusNotFound, usecase.ErrUnknownPassenger.Error())
		return
	}

	if err := session.Seats.SetDraft(req.PaxID, req.JourneyKey, req.Seat); err != nil {
		if h.metrics != nil {
			h.metrics.SeatConflicts.Inc()
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"canConfirm": session.Seats.CanConfirm(req.PaxID, req.JourneyKey),
	})
}

func (h *Handler) confirmSeat(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectionTarget
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Seats.Confirm(req.PaxID, req.JourneyKey)
	seat, saved := session.Seats.Saved(req.PaxID, req.JourneyKey)
	writeJSON(w, http.StatusOK, map[string]interface{}{"saved": saved, "seat": seat})
}

func (h *Handler) releaseSeatDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	paxID, journeyKey := targetParams(r)
	session.Seats.ReleaseDraft(paxID, journeyKey)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) releaseSeatSaved(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	paxID, journeyKey := targetParams(r)
	session.Seats.ReleaseSaved(paxID, journeyKey)
	w.WriteHeader(http.StatusNoContent)
}

type addOnDraftRequest struct {
	PaxID      string              `json:"paxId"`
	JourneyKey string              `json:"journeyKey"`
	Primary    *entity.ServiceItem `json:"primary"`
	Secondary  *entity.ServiceItem `json:"secondary"`
}

func serviceKindOf(r *http.Request) (entity.ServiceKind, bool) {
	switch r.PathValue("kind") {
	case "baggage":
		return entity.ServiceBaggage, true
	case "meal":
		return entity.ServiceMeal, true
	}
	return "", false
}

func (h *Handler) addOnStore(w http.ResponseWriter, r *http.Request, session *usecase.BookingSession) (*store.AddOnStore, bool) {
	kind, ok := serviceKindOf(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown add-on kind")
		return nil, false
	}
	if kind == entity.ServiceBaggage {
		return session.Baggage, true
	}
	return session.Meals, true
}

// getAddOnOffers serves the priced bundle for one journey, read from the
// cached pricing document
func (h *Handler) getAddOnOffers(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	kind, ok := serviceKindOf(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown add-on kind")
		return
	}

	journeyKey := r.PathValue("journeyKey")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"journeyKey": journeyKey,
		"kind":       kind,
		"bundle":     h.flow.AddOnOffers(session, journeyKey, kind),
	})
}

func (h *Handler) setAddOnDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	addOns, ok := h.addOnStore(w, r, session)
	if !ok {
		return
	}
	var req addOnDraftRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !session.HasPassenger(req.PaxID) {
		writeError(w, http.StatusNotFound, usecase.ErrUnknownPassenger.Error())
		return
	}

	addOns.SetDraft(req.PaxID, req.JourneyKey, entity.ServiceBundle{Primary: req.Primary, Secondary: req.Secondary})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"canConfirm": addOns.CanConfirm(req.PaxID, req.JourneyKey),
	})
}

func (h *Handler) confirmAddOn(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	addOns, ok := h.addOnStore(w, r, session)
	if !ok {
		return
	}
	var req selectionTarget
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	addOns.Confirm(req.PaxID, req.JourneyKey)
	bundle, saved := addOns.Saved(req.PaxID, req.JourneyKey)
	writeJSON(w, http.StatusOK, map[string]interface{}{"saved": saved, "bundle": bundle})
}

func (h *Handler) releaseAddOnDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	addOns, ok := h.addOnStore(w, r, session)
	if !ok {
		return
	}
	paxID, journeyKey := targetParams(r)
	addOns.ReleaseDraft(paxID, journeyKey)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) releaseAddOnSaved(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	addOns, ok := h.addOnStore(w, r, session)
	if !ok {
		return
	}
	paxID, journeyKey := targetParams(r)
	addOns.ReleaseSaved(paxID, journeyKey)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.flow.Summary(session))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	response, err := h.flow.Submit(r.Context(), session)
	if err != nil {
		h.writeFlowError(w, "submit hold booking", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pnr":  response.PNR(),
		"data": response.Data,
	})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*usecase.BookingSession, bool) {
	session, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return session, true
}

func (h *Handler) writeFlowError(w http.ResponseWriter, operation string, err error) {
	var upstream *repository.UpstreamError
	switch {
	case errors.Is(err, usecase.ErrNoLegsSelected), errors.Is(err, usecase.ErrIncompleteDetails):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &upstream):
		h.logger.Warn("Backend call failed", "operation", operation, "status", upstream.StatusCode)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("Operation failed", "operation", operation, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func targetParams(r *http.Request) (paxID, journeyKey string) {
	query := r.URL.Query()
	return query.Get("paxId"), query.Get("journeyKey")
}

func decodeBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
