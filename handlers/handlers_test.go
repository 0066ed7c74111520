package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"holdings/app"
	"holdings/database"
	"holdings/handlers"
	"holdings/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestApp creates a temporary store and a Fiber app with every route registered
func setupTestApp(t *testing.T) (*app.App, *fiber.App, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "holdings-handlers-test-*")
	require.NoError(t, err, "Failed to create temp directory")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := database.NewStore(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err, "Failed to initialize test store")
	require.NoError(t, store.EnsureSchema(), "Failed to bootstrap schema")

	application := app.New(database.NewRepository(store), logger)

	fiberApp := fiber.New()
	fiberApp.Get("/health", handlers.Health)
	fiberApp.Get("/api/positions", handlers.GetPositions(application))
	fiberApp.Post("/api/positions", handlers.AddPosition(application))
	fiberApp.Patch("/api/positions/:id", handlers.UpdatePosition(application))
	fiberApp.Delete("/api/positions/:id", handlers.DeletePosition(application))
	fiberApp.Post("/api/users", handlers.CreateUser(application))
	fiberApp.Get("/api/users/by-username/:username", handlers.GetUserByUsername(application))
	fiberApp.Get("/api/users/:id", handlers.GetUser(application))
	fiberApp.Get("/api/todos", handlers.GetTodos(application))

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	return application, fiberApp, cleanup
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func seedPosition(t *testing.T, a *app.App) models.Position {
	t.Helper()

	positions, err := a.Positions.Add(models.NewPosition{
		StockID:       "s1",
		Symbol:        "AAPL",
		StockName:     "Apple",
		Quantity:      10,
		AvgCost:       decimal.NewFromInt(150),
		MarketValue:   decimal.NewFromInt(1600),
		Profit:        decimal.NewFromInt(100),
		ProfitPercent: decimal.NewFromFloat(6.67),
	})
	require.NoError(t, err)
	require.Len(t, positions, 1)
	return positions[0]
}

const applePosition = `{"stock_id":"s1","symbol":"AAPL","stock_name":"Apple","quantity":10,
	"avg_cost":150,"market_value":1600,"profit":100,"profit_percent":6.67}`

func TestHealth(t *testing.T) {
	_, fiberApp, cleanup := setupTestApp(t)
	defer cleanup()

	status, body := doRequest(t, fiberApp, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestGetPositions_Empty(t *testing.T) {
	_, fiberApp, cleanup := setupTestApp(t)
	defer cleanup()

	status, body := doRequest(t, fiberApp, http.MethodGet, "/api/positions", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["positions"])
}

func TestAddPosition(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name:           "Valid position",
			body:           applePosition,
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				positions := body["positions"].([]interface{})
				require.Len(t, positions, 1)
				p := positions[0].(map[string]interface{})
				assert.Equal(t, "AAPL", p["symbol"])
				assert.Equal(t, float64(10), p["quantity"])
				assert.Equal(t, "150", p["avg_cost"])
				assert.Equal(t, float64(1), p["user_id"])
				assert.Nil(t, p["notes"])
			},
		},
		{
			name: "Owner in body is ignored",
			body: `{"user_id":42,"stock_id":"s2","symbol":"MSFT","stock_name":"Microsoft",
				"quantity":5,"avg_cost":300,"market_value":1550,"profit":50,"profit_percent":3.33}`,
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				p := body["positions"].([]interface{})[0].(map[string]interface{})
				assert.Equal(t, float64(1), p["user_id"])
			},
		},
		{
			name:           "Lower-case symbol",
			body:           `{"stock_id":"s1","symbol":"aapl","stock_name":"Apple","quantity":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
			validateBody: func(t *testing.T, body map[string]interface{}) {
				details := body["details"].([]interface{})
				require.NotEmpty(t, details)
				assert.Equal(t, "symbol", details[0].(map[string]interface{})["field"])
			},
		},
		{
			name:           "Malformed body",
			body:           `{"symbol":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fiberApp, cleanup := setupTestApp(t)
			defer cleanup()

			status, body := doRequest(t, fiberApp, http.MethodPost, "/api/positions", tt.body)
			assert.Equal(t, tt.expectedStatus, status)

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
			if tt.validateBody != nil {
				tt.validateBody(t, body)
			}
		})
	}
}

func TestUpdatePosition(t *testing.T) {
	tests := []struct {
		name           string
		path           func(p models.Position) string
		body           string
		expectedStatus int
		expectedError  string
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name:           "Quantity only",
			body:           `{"quantity":20}`,
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				p := body["position"].(map[string]interface{})
				assert.Equal(t, float64(20), p["quantity"])
				assert.Equal(t, "150", p["avg_cost"])
				assert.Equal(t, "1600", p["market_value"])
			},
		},
		{
			name:           "Empty body changes nothing",
			body:           "",
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				p := body["position"].(map[string]interface{})
				assert.Equal(t, float64(10), p["quantity"])
			},
		},
		{
			name:           "Notes and profit",
			body:           `{"notes":"trim on strength","profit":-12.5}`,
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				p := body["position"].(map[string]interface{})
				assert.Equal(t, "trim on strength", p["notes"])
				assert.Equal(t, "-12.5", p["profit"])
				assert.Equal(t, float64(10), p["quantity"])
			},
		},
		{
			name:           "Unknown id",
			path:           func(models.Position) string { return "/api/positions/999" },
			body:           `{"quantity":1}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Position not found",
		},
		{
			name:           "Non-numeric id",
			path:           func(models.Position) string { return "/api/positions/abc" },
			body:           `{"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid position id",
		},
		{
			name:           "Negative quantity",
			body:           `{"quantity":-1}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			application, fiberApp, cleanup := setupTestApp(t)
			defer cleanup()

			p := seedPosition(t, application)
			path := "/api/positions/" + strconv.FormatInt(p.ID, 10)
			if tt.path != nil {
				path = tt.path(p)
			}

			status, body := doRequest(t, fiberApp, http.MethodPatch, path, tt.body)
			assert.Equal(t, tt.expectedStatus, status)

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
			if tt.validateBody != nil {
				tt.validateBody(t, body)
			}
		})
	}
}

func TestDeletePosition(t *testing.T) {
	application, fiberApp, cleanup := setupTestApp(t)
	defer cleanup()

	p := seedPosition(t, application)
	path := "/api/positions/" + strconv.FormatInt(p.ID, 10)

	status, body := doRequest(t, fiberApp, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["positions"])

	// Deleting again is not an error
	status, body = doRequest(t, fiberApp, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["positions"])

	status, body = doRequest(t, fiberApp, http.MethodDelete, "/api/positions/0", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid position id", body["error"])
}

func TestCreateUser(t *testing.T) {
	_, fiberApp, cleanup := setupTestApp(t)
	defer cleanup()

	status, body := doRequest(t, fiberApp, http.MethodPost, "/api/users",
		`{"username":"alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusCreated, status)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotZero(t, user["id"])

	status, body = doRequest(t, fiberApp, http.MethodPost, "/api/users",
		`{"username":"alice","email":"other@example.com"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username or email already taken", body["error"])

	status, body = doRequest(t, fiberApp, http.MethodPost, "/api/users",
		`{"username":"bob","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["error"])
}

func TestGetUser(t *testing.T) {
	_, fiberApp, cleanup := setupTestApp(t)
	defer cleanup()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedUser   string
	}{
		{name: "Seeded user by id", path: "/api/users/1", expectedStatus: http.StatusOK, expectedUser: models.DefaultUsername},
		{name: "Seeded user by username", path: "/api/users/by-username/" + models.DefaultUsername, expectedStatus: http.StatusOK, expectedUser: models.DefaultUsername},
		{name: "Unknown id", path: "/api/users/999", expectedStatus: http.StatusNotFound},
		{name: "Unknown username", path: "/api/users/by-username/nobody", expectedStatus: http.StatusNotFound},
		{name: "Invalid id", path: "/api/users/abc", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, fiberApp, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.expectedStatus, status)

			if tt.expectedUser != "" {
				user := body["user"].(map[string]interface{})
				assert.Equal(t, tt.expectedUser, user["username"])
				assert.Equal(t, models.DefaultEmail, user["email"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestGetTodos(t *testing.T) {
	_, fiberApp, cleanup := setupTestApp(t)
	defer cleanup()

	status, body := doRequest(t, fiberApp, http.MethodGet, "/api/todos", "")
	assert.Equal(t, http.StatusOK, status)

	todos := body["todos"].([]interface{})
	require.Len(t, todos, 2)
	assert.Equal(t, "Get groceries", todos[0].(map[string]interface{})["name"])
	assert.Equal(t, "Buy a new phone", todos[1].(map[string]interface{})["name"])
}
