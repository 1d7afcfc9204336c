package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetspot260/sweetlife/pkg/logger"
)

func commentRouter(svc *fakeCommentService) http.Handler {
	r := chi.NewRouter()
	NewCommentHandler(svc, logger.NewNop()).RegisterRoutes(r)
	return r
}

func postComment(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/video/comment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCommentHandler_Submit(t *testing.T) {
	svc := &fakeCommentService{}

	rec := postComment(t, commentRouter(svc), `{"name":"Alice","text":"great video"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Comment submitted for approval", body["message"])

	require.Len(t, svc.comments, 1)
	assert.Equal(t, "Alice", svc.comments[0].Name)
	assert.False(t, svc.comments[0].Approved)
}

func TestCommentHandler_MissingNameRejected(t *testing.T) {
	svc := &fakeCommentService{}

	rec := postComment(t, commentRouter(svc), `{"name":"","text":"great video"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Success bool      `json:"success"`
		Error   ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation", body.Error.Type)
	assert.Equal(t, "Missing name or comment", body.Error.Message)
	assert.Empty(t, svc.comments)
}

func TestCommentHandler_MalformedBodyRejected(t *testing.T) {
	svc := &fakeCommentService{}

	rec := postComment(t, commentRouter(svc), `{"name":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.comments)
}
