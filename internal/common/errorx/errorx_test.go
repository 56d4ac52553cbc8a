package errorx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err      *APIError
		status   int
		category ErrorCategory
	}{
		{NewValidation("bad"), http.StatusBadRequest, CategoryValidation},
		{NewUnauthorized("nope"), http.StatusUnauthorized, CategoryAuthentication},
		{NewForbidden("denied"), http.StatusForbidden, CategoryAuthorization},
		{NewNotFound("gone"), http.StatusNotFound, CategoryNotFound},
		{NewConflict("taken"), http.StatusConflict, CategoryConflict},
		{NewInternal(), http.StatusInternalServerError, CategoryInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus)
		assert.Equal(t, tc.category, tc.err.Category)
		assert.NotEmpty(t, tc.err.Error())
	}
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("bad").WithDetail("field", "email")
	assert.Equal(t, "email", err.Details["field"])
}

func serve(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewErrorHandler(zap.NewNop())
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		h.Handle(c, err)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	return w
}

func TestHandleAPIError(t *testing.T) {
	w := serve(t, NewConflict("unit already leased"))
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "E4090", resp.Error.Code)
	assert.Equal(t, "unit already leased", resp.Error.Message)
	assert.NotEmpty(t, resp.Error.TraceID)
	assert.NotEmpty(t, resp.Error.Timestamp)
}

func TestHandleHidesInternalDetail(t *testing.T) {
	w := serve(t, errors.New("pq: connection refused"))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleDoesNotMutateSharedError(t *testing.T) {
	shared := NewNotFound("lease not found")
	serve(t, shared)
	assert.Empty(t, shared.TraceID)
}
