package bookings

import (
	"encoding/json"
	"net/http"

	"mounti/internal/auth"
	apperrors "mounti/pkg/errors"
	httputil "mounti/pkg/http"
	"mounti/pkg/logger"
	"mounti/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	service Service
	auth    auth.Service
	log     *logger.Logger
}

func NewHandler(service Service, authService auth.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		auth:    authService,
		log:     log,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var input model.BookingCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeBadBody(w, "Create")
		return
	}

	booking, err := h.service.Create(r.Context(), &input, actor)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	booking, err := h.service.Get(r.Context(), ps.ByName("id"), actor)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	bookings, err := h.service.ListMine(r.Context(), actor)
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "error", err)
	}
}

func (h *Handler) ListForTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "ListForTrip", err)
		return
	}

	bookings, err := h.service.ListForTrip(r.Context(), ps.ByName("tripID"), actor)
	if err != nil {
		h.writeError(w, "ListForTrip", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForTrip", "error", err)
	}
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	var input model.BookingStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeBadBody(w, "UpdateStatus")
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), &input, actor)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *Handler) writeBadBody(w http.ResponseWriter, handler string) {
	if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); writeErr != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "error", writeErr)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	authed := auth.RequireSession(h.auth)

	router.POST("/api/v1/bookings", authed(h.Create))
	// httprouter cannot mix static segments with ":id" at the same depth,
	// so /bookings/my and /bookings/trip/:tripID are folded into the
	// parameterized registrations and dispatched by value.
	router.GET("/api/v1/bookings/:id", h.getOrListMine(authed))
	router.GET("/api/v1/bookings/:id/:tripID", authed(h.listForTripOnly))
	router.PUT("/api/v1/bookings/:id/status", authed(h.UpdateStatus))
}

func (h *Handler) getOrListMine(authed func(httprouter.Handle) httprouter.Handle) httprouter.Handle {
	listMine := authed(h.ListMine)
	get := authed(h.Get)
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("id") == "my" {
			listMine(w, r, ps)
			return
		}
		get(w, r, ps)
	}
}

// listForTripOnly serves GET /bookings/trip/:tripID; any other two-segment
// path under /bookings has no meaning.
func (h *Handler) listForTripOnly(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") != "trip" {
		h.writeError(w, "ListForTrip", apperrors.NotFound("Resource"))
		return
	}
	h.ListForTrip(w, r, ps)
}
