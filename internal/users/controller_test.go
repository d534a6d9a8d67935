package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/advdv/anyhttp/echoadapter"
	"github.com/advdv/anyhttp/internal/auth"
	"github.com/advdv/anyhttp/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var authCfg = auth.Config{Secret: []byte("test"), Issuer: "auth", Audience: "api"}

func setup(t *testing.T) http.Handler {
	t.Helper()

	rev := anyhttp.NewReverser()
	uc := users.NewController(users.NewService(users.NewMemoryStore(), users.NopEvents{}, zap.NewNop()), rev)

	routes, err := users.NewRoutes(uc, authCfg)
	require.NoError(t, err)

	bindings := anyhttp.Bind(routes, "api")
	require.NoError(t, rev.NameAll(bindings))

	app := echoadapter.New(echoadapter.Options{})
	require.NoError(t, app.Register(bindings))

	return app
}

func call(app http.Handler, method, target, body string, hdrs ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(hdrs); i += 2 {
		req.Header.Set(hdrs[i], hdrs[i+1])
	}

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	return rec
}

func TestUserRoutes(t *testing.T) {
	app := setup(t)

	rec := call(app, http.MethodPost, "/api/users", `{"name":"Jane","email":"jane@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/1", rec.Header().Get("Location"))

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "1", created["id"])
	assert.Equal(t, "jane@example.com", created["email"])
	assert.NotEmpty(t, created["createdAt"])

	rec = call(app, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Jane"`)

	rec = call(app, http.MethodPut, "/api/users/1", `{"name":"Janet"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Janet"`)

	t.Run("list requires a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call(app, http.MethodGet, "/api/users", "").Code)

		tok, err := auth.Issue(authCfg, "1", time.Minute)
		require.NoError(t, err)

		rec := call(app, http.MethodGet, "/api/users", "", "Authorization", "Bearer "+tok)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []users.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "Janet", list[0].Name)
	})

	for _, tt := range []struct {
		name, method, target, body string
		status                     int
		kind                       string
	}{
		{"malformed body", http.MethodPost, "/api/users", `{"name":`, 400, "invalid_body"},
		{"empty body", http.MethodPost, "/api/users", ``, 400, "invalid_body"},
		{"invalid fields", http.MethodPost, "/api/users", `{"name":"x"}`, 422, "validation_failed"},
		{"unknown user", http.MethodGet, "/api/users/99", "", 404, "not_found"},
		{"update unknown", http.MethodPut, "/api/users/99", `{"name":"x"}`, 404, "not_found"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(app, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body anyhttp.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Error.Code)
		})
	}

	rec = call(app, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, rec.Body.String())
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"User not found"}}`,
		call(app, http.MethodGet, "/api/users/1", "").Body.String())
}
