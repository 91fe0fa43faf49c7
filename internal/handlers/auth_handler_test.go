package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/studio-scheduler/internal/config"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	h := NewAuthHandler(db, &config.Config{JWTSecret: "s3cret", DefaultTimezone: "America/Sao_Paulo"})
	h.checkDomain = func(string) bool { return true }
	h.now = func() time.Time { return time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC) }
	return h, mock
}

func post(handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/", handler)

	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
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

func TestRegisterCreatesStudioAndManager(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "studios"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "studios"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectCommit()

	w := post(h.Register, gin.H{
		"studio_name": "Tinta Viva", "studio_slug": " Tinta-Viva ",
		"name": "Edu", "email": "Edu@TintaViva.com", "password": "segredo1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "manager", user["role"])
	assert.Equal(t, "edu@tintaviva.com", user["email"])
	studio := body["studio"].(map[string]any)
	assert.Equal(t, "tinta-viva", studio["slug"])
	assert.Equal(t, "America/Sao_Paulo", studio["timezone"])

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(body["token"].(string), claims, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return time.Date(2025, 12, 15, 11, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	assert.Equal(t, float64(30), claims["sub"])
	assert.Equal(t, float64(1), claims["studioId"])
	assert.Equal(t, "manager", claims["role"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsTakenSlug(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "studios"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := post(h.Register, gin.H{
		"studio_name": "Tinta Viva", "studio_slug": "tinta-viva",
		"name": "Edu", "email": "edu@tintaviva.com", "password": "segredo1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slug_already_exists", decode(t, w)["error_code"])
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newAuthHandler(t)

	tests := []struct {
		name string
		body gin.H
		code string
	}{
		{"missing fields", gin.H{"name": "Edu"}, "invalid_request"},
		{"bad email", gin.H{
			"studio_name": "T", "studio_slug": "t", "name": "Edu",
			"email": "edu@", "password": "segredo1",
		}, "invalid_email"},
		{"bad timezone", gin.H{
			"studio_name": "T", "studio_slug": "t", "studio_timezone": "Mars/Olympus",
			"name": "Edu", "email": "edu@t.com", "password": "segredo1",
		}, "invalid_timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(h.Register, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["error_code"])
		})
	}

	h.checkDomain = func(string) bool { return false }
	w := post(h.Register, gin.H{
		"studio_name": "T", "studio_slug": "t", "name": "Edu",
		"email": "edu@nowhere.invalid", "password": "segredo1",
	})
	assert.Equal(t, "invalid_email_domain", decode(t, w)["error_code"])
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo1"), bcrypt.MinCost)
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "studio_id", "name", "email", "password_hash", "role"}).
			AddRow(20, 1, "Caio", "caio@tintaviva.com", string(hash), "artist")
	}

	t.Run("ok", func(t *testing.T) {
		h, mock := newAuthHandler(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows())
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "studios"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(1, "Tinta Viva", "tinta-viva"))

		w := post(h.Login, gin.H{"email": " CAIO@tintaviva.com", "password": "segredo1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "tinta-viva", body["studio"].(map[string]any)["slug"])
	})

	t.Run("wrong password", func(t *testing.T) {
		h, mock := newAuthHandler(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows())
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "studios"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		w := post(h.Login, gin.H{"email": "caio@tintaviva.com", "password": "errada"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])
	})

	t.Run("unknown email", func(t *testing.T) {
		h, mock := newAuthHandler(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		w := post(h.Login, gin.H{"email": "ninguem@tintaviva.com", "password": "segredo1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
