package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/totegamma/purse/core"
	"github.com/totegamma/purse/core/mock"
	"github.com/totegamma/purse/x/character"
)

const testID = "cnbk4l8k1u6e3mqfk3a0"

func setupServer(t *testing.T, service core.CharacterService) *httptest.Server {
	t.Helper()

	e := echo.New()
	h := character.NewHandler(service)
	e.GET("/api/characters", h.List)
	e.GET("/api/characters/:id", h.Get)
	e.POST("/api/characters", h.Create)
	e.PATCH("/api/characters/:id", h.Update)
	e.DELETE("/api/characters/:id", h.Delete)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func TestClientCRUD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	gimli := core.Character{ID: testID, Name: "Gimli", Currency: core.Currency{Gold: 40, Silver: 50, Copper: 120}}

	mockService := mock_core.NewMockCharacterService(ctrl)
	mockService.EXPECT().Create(gomock.Any(), core.Character{Name: "Gimli", Currency: gimli.Currency}).Return(gimli, nil)
	mockService.EXPECT().List(gomock.Any()).Return([]core.Character{gimli}, nil)
	mockService.EXPECT().Get(gomock.Any(), testID).Return(gimli, nil)

	silver := int64(0)
	patched := gimli
	patched.Currency.Silver = 0
	mockService.EXPECT().Update(gomock.Any(), testID, core.CharacterPatch{Currency: &core.CurrencyPatch{Silver: &silver}}).Return(patched, nil)
	mockService.EXPECT().Delete(gomock.Any(), testID).Return(nil)

	c := NewClient(setupServer(t, mockService).URL + "/")

	created, err := c.Create(ctx, "Gimli", gimli.Currency)
	if assert.NoError(t, err) {
		assert.Equal(t, testID, created.ID)
	}

	list, err := c.List(ctx)
	if assert.NoError(t, err) && assert.Len(t, list, 1) {
		assert.Equal(t, "Gimli", list[0].Name)
	}

	got, err := c.Get(ctx, testID)
	if assert.NoError(t, err) {
		assert.Equal(t, gimli.Currency, got.Currency)
	}

	updated, err := c.Update(ctx, testID, core.CharacterPatch{Currency: &core.CurrencyPatch{Silver: &silver}})
	if assert.NoError(t, err) {
		assert.Equal(t, int64(0), updated.Currency.Silver)
		assert.Equal(t, int64(40), updated.Currency.Gold)
	}

	assert.NoError(t, c.Delete(ctx, testID))
	assert.NoError(t, c.Health(ctx))
}

func TestClientAPIError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockService := mock_core.NewMockCharacterService(ctrl)
	mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(core.Character{}, core.NewErrorInvalidArgument(core.MessageNameRequired))
	mockService.EXPECT().Delete(gomock.Any(), testID).Return(core.NewErrorNotFound())
	mockService.EXPECT().List(gomock.Any()).Return([]core.Character{}, nil)

	c := NewClient(setupServer(t, mockService).URL)

	_, err := c.Create(ctx, "", core.Currency{})
	var apiErr *APIError
	if assert.True(t, errors.As(err, &apiErr)) {
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, core.MessageNameRequired, apiErr.Message)
	}

	err = c.Delete(ctx, testID)
	assert.True(t, IsNotFound(err))

	list, err := c.List(ctx)
	if assert.NoError(t, err) {
		assert.NotNil(t, list)
		assert.Empty(t, list)
	}
}

func TestClientSubscribe(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/socket", r.URL.Path)
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		ws.WriteJSON(core.CharacterEvent{Type: core.EventDeleted, ID: testID})
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan core.CharacterEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- NewClient(server.URL).Subscribe(ctx, events)
	}()

	select {
	case event := <-events:
		assert.Equal(t, core.EventDeleted, event.Type)
		assert.Equal(t, testID, event.ID)
	case <-ctx.Done():
		t.Fatal("no event received")
	}

	cancel()
	<-done
}
