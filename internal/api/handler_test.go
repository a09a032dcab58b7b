package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"station-track-backend/config"
	"station-track-backend/internal/model"
	"station-track-backend/internal/station"
	"station-track-backend/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Barcode{}))

	cfg := &config.Config{}
	cfg.Station.DefaultScanStatus = "Updated"
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000

	appStore := store.NewGormStore(db)
	svc := station.NewService(cfg, appStore)
	return NewRouter(cfg, svc, appStore), appStore
}

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type userPayload struct {
	ID       string            `json:"id"`
	Identity string            `json:"identity"`
	Stations model.StationList `json:"stations"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w, resp
}

func registerUser(t *testing.T, router *gin.Engine, identity string) userPayload {
	t.Helper()

	w, resp := doJSON(t, router, http.MethodPost, "/api/insert/user", gin.H{"identity": identity})
	require.Equal(t, http.StatusOK, w.Code)

	var user userPayload
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	return user
}
