package trips

import (
	"encoding/json"
	"net/http"
	"time"

	"mounti/internal/auth"
	"mounti/internal/store"
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

	var input model.TripCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeBadBody(w, "Create")
		return
	}

	trip, err := h.service.Create(r.Context(), &input, actor)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, trip); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	search := store.TripSearch{
		FromLocation: query.Get("from_location"),
		ToLocation:   query.Get("to_location"),
	}
	search.DepartureDate = parseDepartureDate(query.Get("departure_date"))

	trips, err := h.service.Search(r.Context(), search)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, trips); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "error", err)
	}
}

// parseDepartureDate accepts a plain date or an RFC3339 timestamp, read in
// server-local time. Unparsable values are ignored, not rejected.
func parseDepartureDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		local := t.Local()
		return &local
	}
	return nil
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	trips, err := h.service.ListMine(r.Context(), actor)
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	if err := httputil.WriteSuccess(w, trips); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "error", err)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, trip); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var input model.TripUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeBadBody(w, "Update")
		return
	}

	trip, err := h.service.Update(r.Context(), ps.ByName("id"), &input, actor)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, trip); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id"), actor); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteMessage(w, "Trip deleted"); err != nil {
		h.log.Error("failed to write message response", "handler", "Delete", "error", err)
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

	router.POST("/api/v1/trips", authed(h.Create))
	router.GET("/api/v1/trips", h.Search)
	// httprouter cannot mix the static "my" segment with ":id", so the
	// two GET routes share one registration.
	router.GET("/api/v1/trips/:id", h.getOrListMine(authed))
	router.PUT("/api/v1/trips/:id", authed(h.Update))
	router.DELETE("/api/v1/trips/:id", authed(h.Delete))
}

func (h *Handler) getOrListMine(authed func(httprouter.Handle) httprouter.Handle) httprouter.Handle {
	listMine := authed(h.ListMine)
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("id") == "my" {
			listMine(w, r, ps)
			return
		}
		h.Get(w, r, ps)
	}
}
