// Package socket relays character events to websocket clients
package socket

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/purse/core"
)

var tracer = otel.Tracer("socket")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler is the interface for handling websocket connections
type Handler interface {
	Connect(c echo.Context) error
	CurrentConnectionCount() int64
}

type handler struct {
	service     Service
	connections int64
}

// NewHandler creates a new socket handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func (h *handler) CurrentConnectionCount() int64 {
	return atomic.LoadInt64(&h.connections)
}

// Connect upgrades the request and streams events until either side goes away
func (h *handler) Connect(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("failed to upgrade websocket", slog.String("error", err.Error()))
		return nil
	}
	defer ws.Close()

	atomic.AddInt64(&h.connections, 1)
	defer atomic.AddInt64(&h.connections, -1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the client never sends anything; a read error means it left
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	events := make(chan core.CharacterEvent, 16)
	go func() {
		defer cancel()
		err := h.service.Subscribe(ctx, events)
		if err != nil {
			slog.Error("failed to subscribe character events", slog.String("error", err.Error()))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			if err := ws.WriteJSON(event); err != nil {
				slog.Debug("failed to write websocket message", slog.String("error", err.Error()))
				return nil
			}
		}
	}
}
