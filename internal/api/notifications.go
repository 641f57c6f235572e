package api

import (
	"net/http"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/notify"
)

// NotificationsHandler serves the notification cache.
type NotificationsHandler struct {
	Notes Notifications
}

type notificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
	Unread        int                  `json:"unread"`
}

func snapshotResponse(s notify.Snapshot) notificationsResponse {
	list := s.Notifications
	if list == nil {
		list = []model.Notification{}
	}
	return notificationsResponse{Notifications: list, Unread: s.Unread}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, snapshotResponse(h.Notes.Snapshot()))
}

// MarkRead handles POST /api/notifications/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Notes.MarkAllRead(r.Context()); err != nil {
		jsonError(w, http.StatusBadGateway, client.Message(err, "failed to mark notifications as read"))
		return
	}
	jsonResponse(w, http.StatusOK, snapshotResponse(h.Notes.Snapshot()))
}

// Refresh handles POST /api/notifications/refresh. Backend failures keep
// the cached list, so this always answers with the current snapshot.
func (h *NotificationsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Notes.Refresh(r.Context())
	jsonResponse(w, http.StatusOK, snapshotResponse(h.Notes.Snapshot()))
}
