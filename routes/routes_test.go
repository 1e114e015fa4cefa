package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bricool-server/config"
	"bricool-server/database"
	ws "bricool-server/websocket"
)

var dbSeq int

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbSeq++
	dsn := fmt.Sprintf("file:routerdb%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}

	router := gin.New()
	Register(router, db, cfg, ws.NewHub())
	return router, db
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var accountSeq int

// signUp registers an account through the API and returns its access token.
func signUp(t *testing.T, router *gin.Engine, role string) (token string, userID uint) {
	t.Helper()

	accountSeq++
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"name":     fmt.Sprintf("حساب %d", accountSeq),
		"email":    fmt.Sprintf("account%d@example.com", accountSeq),
		"phone":    fmt.Sprintf("06%08d", accountSeq),
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}
