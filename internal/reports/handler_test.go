package reports

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/stats", h.GetStats)
	r.GET("/admin/revenue", h.GetRevenue)
	r.GET("/admin/reports/download", h.Download)
	return r
}

func TestHandlerGetRevenue_BadDate(t *testing.T) {
	db, _ := newMockDB(t)
	router := setupRouter(NewHandler(NewRepository(db)))

	req := httptest.NewRequest(http.MethodGet, "/admin/revenue?from=01-01-2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerDownload(t *testing.T) {
	db, mock := newMockDB(t)
	router := setupRouter(NewHandler(NewRepository(db)))

	checkIn := time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT m\.name AS member_name, m\.email AS member_email`).
		WillReturnRows(sqlmock.NewRows([]string{
			"member_name", "member_email", "service_type", "check_in_time", "session_used",
		}).AddRow("Alice Uwase", "alice@example.com", "gym", checkIn, true))

	mock.ExpectQuery(`SELECT m\.name AS member_name, p\.amount, p\.currency`).
		WillReturnRows(sqlmock.NewRows([]string{
			"member_name", "amount", "currency", "status", "tx_ref", "created_at",
		}).AddRow("Alice Uwase", int64(300), "RWF", "completed", "tx-001", checkIn))

	req := httptest.NewRequest(http.MethodGet, "/admin/reports/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "club-report-")

	body := w.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "section,member,email,service,checked_in_at,session_used", lines[0])
	assert.Contains(t, lines[1], "attendance,Alice Uwase,alice@example.com,gym")
	assert.Contains(t, lines[3], "payment,Alice Uwase,300,RWF,completed,tx-001")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerDownload_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	router := setupRouter(NewHandler(NewRepository(db)))

	mock.ExpectQuery(`SELECT m\.name AS member_name, m\.email AS member_email`).
		WillReturnError(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/admin/reports/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
