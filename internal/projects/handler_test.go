package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/protrack-app/protrack/internal/permission"
	"github.com/protrack-app/protrack/internal/shared"
)

func newTestRouter(store Store, id *shared.Identity) http.Handler {
	h := NewHandler(slog.Default(), NewService(slog.Default(), store, nil))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithIdentity(req.Context(), id)))
		})
	})
	r.Route("/projects", h.MountRoutes)
	return r
}

func TestListPaginatesProjects(t *testing.T) {
	store := newFakeStore()
	tenantID := uuid.New()
	for i := 0; i < 25; i++ {
		_, err := store.Create(context.Background(), Project{
			TenantID:  tenantID,
			JobNumber: fmt.Sprintf("24-%03d", i),
			JobName:   "Job",
			Status:    StatusActive,
		})
		require.NoError(t, err)
	}
	router := newTestRouter(store, &shared.Identity{
		TenantID: tenantID,
		Role:     permission.RoleMaster,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/?page=3&per_page=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projects   []Project         `json:"projects"`
		Pagination shared.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 5, "last page carries the remainder")
	require.Equal(t, 3, body.Pagination.Page)
	require.Equal(t, 25, body.Pagination.Total)
	require.Equal(t, 3, body.Pagination.TotalPages)
}

func TestListDefaultsToFirstPageOfTwenty(t *testing.T) {
	store := newFakeStore()
	tenantID := uuid.New()
	for i := 0; i < 25; i++ {
		_, err := store.Create(context.Background(), Project{
			TenantID:  tenantID,
			JobNumber: fmt.Sprintf("24-%03d", i),
			JobName:   "Job",
			Status:    StatusActive,
		})
		require.NoError(t, err)
	}
	router := newTestRouter(store, &shared.Identity{
		TenantID: tenantID,
		Role:     permission.RoleMaster,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projects   []Project         `json:"projects"`
		Pagination shared.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 20)
	require.Equal(t, 1, body.Pagination.Page)
	require.Equal(t, 20, body.Pagination.PerPage)
}
