package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Gigbell/internal/modules/performance/application/dto/request"
	"Gigbell/internal/modules/performance/application/dto/respond"
	"Gigbell/pkg/back"
	"Gigbell/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	req request.CreatePerformanceRequest
}

func (s *stubService) Create(_ context.Context, req request.CreatePerformanceRequest) (*respond.PerformanceRespond, error) {
	s.req = req
	return &respond.PerformanceRespond{ID: 1, Title: req.Title}, nil
}

func (s *stubService) Get(_ context.Context, id int64) (*respond.PerformanceRespond, error) {
	if id != 1 {
		return nil, xerr.ErrPerformanceNotFound
	}
	return &respond.PerformanceRespond{ID: 1}, nil
}

func serve(t *testing.T, r *gin.Engine, method, path string, body interface{}) back.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp back.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPerformanceHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubService{}
	h := NewPerformanceHandler(svc)
	r := gin.New()
	r.POST("/performance", h.Create)
	r.GET("/performance/:id", h.Get)

	resp := serve(t, r, http.MethodPost, "/performance", map[string]interface{}{
		"title": "Spring Live", "date": "2025-03-10", "artist_ids": []int64{1, 2},
	})
	assert.Equal(t, xerr.OK, resp.Code)
	assert.Equal(t, []int64{1, 2}, svc.req.ArtistIDs)

	resp = serve(t, r, http.MethodPost, "/performance", map[string]interface{}{"title": "no date"})
	assert.Equal(t, xerr.BadRequest, resp.Code)

	resp = serve(t, r, http.MethodPost, "/performance", map[string]interface{}{"title": "p", "date": "2025-03-10", "price": -1})
	assert.Equal(t, xerr.BadRequest, resp.Code)

	resp = serve(t, r, http.MethodGet, "/performance/1", nil)
	assert.Equal(t, xerr.OK, resp.Code)

	resp = serve(t, r, http.MethodGet, "/performance/2", nil)
	assert.Equal(t, xerr.NotFound, resp.Code)

	resp = serve(t, r, http.MethodGet, "/performance/abc", nil)
	assert.Equal(t, xerr.BadRequest, resp.Code)
}
