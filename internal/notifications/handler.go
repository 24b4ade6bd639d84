package notifications

import (
	"net/http"

	"mounti/internal/auth"
	httputil "mounti/pkg/http"
	"mounti/pkg/logger"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	notifications, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, notifications); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "MarkRead", err)
		return
	}

	if err := h.service.MarkRead(r.Context(), ps.ByName("id"), actor); err != nil {
		h.writeError(w, "MarkRead", err)
		return
	}

	if err := httputil.WriteMessage(w, "Notification marked as read"); err != nil {
		h.log.Error("failed to write message response", "handler", "MarkRead", "error", err)
	}
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := auth.UserFrom(r.Context())
	if err != nil {
		h.writeError(w, "UnreadCount", err)
		return
	}

	count, err := h.service.UnreadCount(r.Context(), actor)
	if err != nil {
		h.writeError(w, "UnreadCount", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]int64{"count": count}); err != nil {
		h.log.Error("failed to write success response", "handler", "UnreadCount", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	authed := auth.RequireSession(h.auth)

	router.GET("/api/v1/notifications", authed(h.List))
	router.GET("/api/v1/notifications/unread-count", authed(h.UnreadCount))
	router.PUT("/api/v1/notifications/:id/read", authed(h.MarkRead))
}
