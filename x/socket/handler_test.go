package socket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/totegamma/purse/core"
	"github.com/totegamma/purse/x/socket/mock"
)

func TestHandlerConnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	unsubscribed := make(chan struct{})

	mockService := mock_socket.NewMockService(ctrl)
	mockService.EXPECT().Subscribe(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, events chan<- core.CharacterEvent) error {
		events <- core.CharacterEvent{Type: core.EventCreated, ID: "cnbk4l8k1u6e3mqfk3a0", Character: &core.Character{Name: "Sam"}}
		<-ctx.Done()
		close(unsubscribed)
		return nil
	})

	h := NewHandler(mockService)

	e := echo.New()
	e.GET("/api/socket", h.Connect)
	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/socket"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if !assert.NoError(t, err) {
		return
	}

	var event core.CharacterEvent
	err = ws.ReadJSON(&event)
	if assert.NoError(t, err) {
		assert.Equal(t, core.EventCreated, event.Type)
		assert.Equal(t, "Sam", event.Character.Name)
	}
	assert.Equal(t, int64(1), h.CurrentConnectionCount())

	ws.Close()

	select {
	case <-unsubscribed:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription was not cancelled after the client left")
	}
}
