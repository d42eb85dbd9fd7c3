package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"career-insights/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	method, path, status string
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (o *fakeObserver) ObserveRequest(method, path, status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observed{method: method, path: path, status: status})
}

func newApp(obs requestObserver) *fiber.App {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(nil, obs).Middleware())
	app.Use(NewErrorMiddleware(nil).Middleware())

	app.Get("/ok", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, "fine")
	})
	app.Get("/bad/:id", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "invalid id", map[string]string{"id": c.Params("id")}, errors.New("nope"))
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("secret"))
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})
	app.Get("/fiber", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "")
	})
	return app
}

func call(t *testing.T, app *fiber.App, target string) (int, response.SemanticResponse, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env response.SemanticResponse
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env, resp.Header.Get(HeaderRequestID)
}

func TestErrorMiddleware(t *testing.T) {
	app := newApp(nil)

	status, env, _ := call(t, app, "/bad/42")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid id", env.Message)
	assert.Equal(t, map[string]interface{}{"id": "42"}, env.Data)

	status, env, _ = call(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, env.Message)
	assert.Nil(t, env.Data)

	status, env, _ = call(t, app, "/panic")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, env.Message)

	status, env, _ = call(t, app, "/fiber")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, response.MessageNotFound, env.Message)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := NewAppError(fiber.StatusBadRequest, "bad", nil, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad: root", err.Error())

	var nilErr *AppError
	assert.Equal(t, "", nilErr.Error())
	assert.NoError(t, nilErr.Unwrap())
}

func TestAccessLogMiddleware(t *testing.T) {
	obs := &fakeObserver{}
	app := newApp(obs)

	status, _, rid := call(t, app, "/ok")
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, rid)

	req := httptest.NewRequest("GET", "/bad/7", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "fixed-id", resp.Header.Get(HeaderRequestID))

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.seen, 2)
	assert.Equal(t, observed{method: "GET", path: "/ok", status: "200"}, obs.seen[0])
	assert.Equal(t, observed{method: "GET", path: "/bad/:id", status: "400"}, obs.seen[1])
}
