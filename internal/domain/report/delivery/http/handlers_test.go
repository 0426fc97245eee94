package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	"github.com/yourusername/anticovid-bot/internal/domain/report/repository/file"
)

const testToken = "secret-token"

func newTestAPI(t *testing.T) (*file.Store, http.Handler) {
	t.Helper()
	store, err := file.NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	router := NewRouter(NewHandlers(store, zerolog.Nop()), testToken)
	return store, router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	_, router := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/api/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListReports(t *testing.T) {
	store, router := newTestAPI(t)
	ctx := context.Background()

	id1, err := store.AddReport(ctx, entities.ReportTypeOther, "first")
	require.NoError(t, err)
	id2, err := store.AddReport(ctx, entities.ReportTypeShopOverprice, "second")
	require.NoError(t, err)
	require.NoError(t, store.SetStatus(ctx, id2, entities.ReportStatusSeen))

	w := doRequest(router, http.MethodGet, "/api/reports?status=unseen", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reports []entities.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 1)
	require.Equal(t, id1, resp.Reports[0].ID)
	require.Equal(t, "first", resp.Reports[0].Message)

	// no filter returns everything
	w = doRequest(router, http.MethodGet, "/api/reports", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 2)

	w = doRequest(router, http.MethodGet, "/api/reports?status=bogus", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReport(t *testing.T) {
	store, router := newTestAPI(t)

	id, err := store.AddReport(context.Background(), entities.ReportTypeOther, "no masks")
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/reports/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var report entities.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Equal(t, id, report.ID)
	require.Equal(t, "no masks", report.Message)

	require.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/api/reports/999", "").Code)
	require.Equal(t, http.StatusBadRequest, doRequest(router, http.MethodGet, "/api/reports/abc", "").Code)
}

func TestUpdateStatus(t *testing.T) {
	store, router := newTestAPI(t)

	id, err := store.AddReport(context.Background(), entities.ReportTypeOther, "report")
	require.NoError(t, err)

	w := doRequest(router, http.MethodPatch, "/api/reports/1/status", `{"status":"seen"}`)
	require.Equal(t, http.StatusOK, w.Code)

	report, err := store.GetReport(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, entities.ReportStatusSeen, report.Status)

	require.Equal(t, http.StatusBadRequest, doRequest(router, http.MethodPatch, "/api/reports/1/status", `{"status":"bogus"}`).Code)
	require.Equal(t, http.StatusBadRequest, doRequest(router, http.MethodPatch, "/api/reports/1/status", `{}`).Code)
	require.Equal(t, http.StatusNotFound, doRequest(router, http.MethodPatch, "/api/reports/999/status", `{"status":"seen"}`).Code)
}

func TestListSubscribers(t *testing.T) {
	store, router := newTestAPI(t)
	ctx := context.Background()

	require.NoError(t, store.Subscribe(ctx, 42))
	require.NoError(t, store.Subscribe(ctx, 7))

	w := doRequest(router, http.MethodGet, "/api/subscribers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subscribers []int64 `json:"subscribers"`
		Count       int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []int64{7, 42}, resp.Subscribers)
	require.Equal(t, 2, resp.Count)
}
