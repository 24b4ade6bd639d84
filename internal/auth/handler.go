package auth

import (
	"encoding/json"
	"net/http"

	httputil "mounti/pkg/http"
	"mounti/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	service Service
	log     *logger.Logger
}

func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

type createSessionRequest struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateSession", "error", writeErr)
		}
		return
	}

	session, err := h.service.CreateSession(r.Context(), req.SessionID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateSession", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, session); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateSession", "error", err)
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := UserFrom(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Me", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "error", err)
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.EndSession(r.Context(), bearerToken(r)); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Logout", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, "Logged out"); err != nil {
		h.log.Error("failed to write message response", "handler", "Logout", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	authed := RequireSession(h.service)

	router.POST("/api/v1/auth/session", h.CreateSession)
	router.GET("/api/v1/auth/me", authed(h.Me))
	router.POST("/api/v1/auth/logout", authed(h.Logout))
}
