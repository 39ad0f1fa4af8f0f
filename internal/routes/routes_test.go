package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/config"
	"github.com/BruksfildServices01/restaurant-floor/internal/securestore"
	"github.com/BruksfildServices01/restaurant-floor/internal/session"
	"github.com/BruksfildServices01/restaurant-floor/internal/testutil"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
		SessionKey: session.DefaultKey,
		TaxRate:    0.10,
		Currency:   "BRL",
		CORSOrigin: "*",
	}
	a := app.New(app.Deps{
		Config: cfg,
		DB:     testutil.DB(t),
		KV:     securestore.NewMemory(),
		Log:    logger,
	})
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	r := gin.New()
	RegisterRoutes(r, a, cfg)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, r http.Handler) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/auth/register", map[string]any{
		"restaurant_name": "Bistro Centro",
		"first_name":      "Olivia",
		"email":           "olivia@bistro.test",
		"password":        "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newServer(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uninitialized", decode(t, w)["session"])
}

func TestSecuredRoutesRequireSession(t *testing.T) {
	r := newServer(t)

	for _, path := range []string{"/api/me", "/api/tables", "/api/orders", "/api/dashboard"} {
		w := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "not_authenticated", decode(t, w)["error_code"], path)
	}
}

func TestRegisterOpenOrderAndLogout(t *testing.T) {
	r := newServer(t)
	register(t, r)

	w := do(t, r, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "authenticated", decode(t, w)["state"])

	w = do(t, r, http.MethodPost, "/api/tables", map[string]any{
		"number": "1", "capacity": 4, "width": 80, "height": 80,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tableID := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"table_id": tableID,
		"items": []map[string]any{
			{"menu_item_id": "pasta", "quantity": 2, "price": 10},
			{"menu_item_id": "soda", "quantity": 1, "price": 3.5},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode(t, w)
	assert.Equal(t, 25.85, order["total"])

	// the table is seated now, a second order on it conflicts
	w = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"table_id": tableID,
		"items":    []map[string]any{{"menu_item_id": "soda", "quantity": 1, "price": 3.5}},
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	counts := decode(t, w)["counts"].(map[string]any)
	assert.EqualValues(t, 1, counts["active_orders"])
	assert.EqualValues(t, 1, counts["occupied_tables"])

	w = do(t, r, http.MethodPost, "/api/orders/"+order["id"].(string)+"/checkout", map[string]any{"method": "cash"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "paid", decode(t, w)["status"])

	w = do(t, r, http.MethodGet, "/api/tables/"+tableID, nil)
	assert.Equal(t, "cleaning", decode(t, w)["status"])

	w = do(t, r, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/tables", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidationAndNotFoundMapping(t *testing.T) {
	r := newServer(t)
	register(t, r)

	w := do(t, r, http.MethodPatch, "/api/orders/missing/status", map[string]any{"status": "preparing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "order_not_found", decode(t, w)["error_code"])

	w = do(t, r, http.MethodPost, "/api/waitlist", map[string]any{"name": "Ana", "phone": "555", "party_size": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["error_code"])
}

func TestWaitlistBoard(t *testing.T) {
	r := newServer(t)
	register(t, r)

	w := do(t, r, http.MethodPost, "/api/waitlist", map[string]any{"name": "Ana Souza", "phone": "5551234", "party_size": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/waitlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	row := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Ana Souza", row["name"])
	assert.Equal(t, "0 min", row["label"])
	assert.Equal(t, false, row["urgent"])
}

func TestDeleteOrderAndWaitlistEntry(t *testing.T) {
	r := newServer(t)
	register(t, r)

	w := do(t, r, http.MethodPost, "/api/tables", map[string]any{
		"number": "7", "capacity": 2, "width": 60, "height": 60,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tableID := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"table_id": tableID,
		"items":    []map[string]any{{"menu_item_id": "soda", "quantity": 1, "price": 3.5}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodDelete, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "order_holds_table", decode(t, w)["error_code"])

	w = do(t, r, http.MethodPost, "/api/orders/"+orderID+"/checkout", map[string]any{"method": "cash"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	w = do(t, r, http.MethodGet, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/waitlist", map[string]any{"name": "Ana Souza", "phone": "5551234", "party_size": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entryID := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodDelete, "/api/waitlist/"+entryID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	w = do(t, r, http.MethodGet, "/api/waitlist/"+entryID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	r := newServer(t)

	var last int
	for i := 0; i < 6; i++ {
		last = do(t, r, http.MethodPost, "/api/auth/login", map[string]any{
			"email": "nobody@bistro.test", "password": "wrong",
		}).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestCORSPreflight(t *testing.T) {
	r := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://terminal.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://terminal.local", w.Header().Get("Access-Control-Allow-Origin"))
}
