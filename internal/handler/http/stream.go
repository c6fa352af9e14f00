package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/changefeed"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

const streamPingInterval = 30 * time.Second

type StreamHandler interface {
	// Token issues a short-lived stream token for the caller
	Token(w http.ResponseWriter, r *http.Request)
	// Stream serves change events over SSE
	Stream(w http.ResponseWriter, r *http.Request)
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type streamEvent struct {
	Table  string      `json:"table"`
	Op     string      `json:"op"`
	Record interface{} `json:"record"`
	At     time.Time   `json:"at"`
}

type streamHandlerImpl struct {
	hub          *changefeed.Hub
	jwtService   jwt.Service
	pingInterval time.Duration
}

func NewStreamHandler(hub *changefeed.Hub, jwtService jwt.Service) StreamHandler {
	return &streamHandlerImpl{
		hub:          hub,
		jwtService:   jwtService,
		pingInterval: streamPingInterval,
	}
}

// Token generates a short-lived token for SSE connections
func (h *streamHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(id)
	if err != nil {
		slog.Error("Failed to generate stream token", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles ?token=&table=&events=insert,update. Employees only receive
// their own rows; admins receive every row.
func (h *streamHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Token comes from the query (EventSource cannot set headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	id, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	table := r.URL.Query().Get("table")
	if !changefeed.KnownTable(table) {
		response.BadRequest(w, fmt.Sprintf("unknown table %q", table), nil)
		return
	}

	mask, err := changefeed.ParseMask(r.URL.Query().Get("events"))
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	var (
		events  <-chan changefeed.Event
		cleanup func()
	)
	if id.IsAdmin() || changefeed.Shared(table) {
		events, cleanup = h.hub.Subscribe(table, mask)
	} else {
		events, cleanup = h.hub.SubscribeForUser(table, mask, id.UserID)
	}
	defer func() {
		cleanup()
		slog.Debug("stream subscriber disconnected", "table", table, "user_id", id.UserID, "total_subscribers", h.hub.TotalSubscribers())
	}()
	slog.Debug("stream subscriber connected",
		"table", table,
		"user_id", id.UserID,
		"table_subscribers", h.hub.SubscriberCount(table),
		"total_subscribers", h.hub.TotalSubscribers(),
	)

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"table\":%q}\n\n", table)
	flusher.Flush()

	keepalive := time.NewTicker(h.pingInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(streamEvent{
				Table:  event.Table,
				Op:     event.Op.String(),
				Record: event.Record,
				At:     event.At,
			})
			if err != nil {
				slog.Warn("failed to encode change event", "table", event.Table, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Op, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
