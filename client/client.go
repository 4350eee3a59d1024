//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mock/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/totegamma/purse/core"
)

const (
	defaultTimeout = 10 * time.Second
)

var tracer = otel.Tracer("client")

// APIError is a non-2xx response of the purse API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type createRequest struct {
	Name     string        `json:"name"`
	Currency core.Currency `json:"currency"`
}

type Client interface {
	List(ctx context.Context) ([]core.Character, error)
	Get(ctx context.Context, id string) (core.Character, error)
	Create(ctx context.Context, name string, currency core.Currency) (core.Character, error)
	Update(ctx context.Context, id string, patch core.CharacterPatch) (core.Character, error)
	Delete(ctx context.Context, id string) error
	Health(ctx context.Context) error
	Subscribe(ctx context.Context, events chan<- core.CharacterEvent) error
}

type client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the API served at endpoint (ex: http://localhost:8000)
func NewClient(endpoint string) Client {
	return &client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *client) do(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result == nil {
		return nil
	}

	return json.Unmarshal(respBody, result)
}

func (c *client) List(ctx context.Context) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Client.List")
	defer span.End()

	var characters []core.Character
	err := c.do(ctx, http.MethodGet, "/api/characters", nil, &characters)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if characters == nil {
		characters = []core.Character{}
	}

	return characters, nil
}

func (c *client) Get(ctx context.Context, id string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Client.Get")
	defer span.End()

	var character core.Character
	err := c.do(ctx, http.MethodGet, "/api/characters/"+url.PathEscape(id), nil, &character)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

func (c *client) Create(ctx context.Context, name string, currency core.Currency) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Client.Create")
	defer span.End()

	request := createRequest{Name: name, Currency: currency}

	var character core.Character
	err := c.do(ctx, http.MethodPost, "/api/characters", request, &character)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

func (c *client) Update(ctx context.Context, id string, patch core.CharacterPatch) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Client.Update")
	defer span.End()

	var character core.Character
	err := c.do(ctx, http.MethodPatch, "/api/characters/"+url.PathEscape(id), patch, &character)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

func (c *client) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Client.Delete")
	defer span.End()

	err := c.do(ctx, http.MethodDelete, "/api/characters/"+url.PathEscape(id), nil, nil)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

func (c *client) Health(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Client.Health")
	defer span.End()

	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Subscribe streams character events into events until ctx is done or the socket closes
func (c *client) Subscribe(ctx context.Context, events chan<- core.CharacterEvent) error {
	u, err := url.Parse(c.endpoint + "/api/socket")
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to dial event socket")
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var event core.CharacterEvent
		err := conn.ReadJSON(&event)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		select {
		case events <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
