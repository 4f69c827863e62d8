package app_errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func Test_KindOf_WhenErrorIsWrapped_ReturnsInnerKind(t *testing.T) {
	err := fmt.Errorf("failed to move task: %w", NotFound("task not found"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindForbidden))
}

func Test_KindOf_WhenErrorIsPlain_ReturnsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("connection refused")))
	assert.False(t, Is(nil, KindInternal))
}

func Test_StatusCode_MapsEveryKind(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthenticated("x"), http.StatusUnauthorized},
		{Conflict("x"), http.StatusConflict},
		{Validation("x"), http.StatusBadRequest},
		{errors.New("x"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.status, StatusCode(tc.err), tc.err.Error())
	}
}

func Test_RespondWithError_WhenInternalError_HidesMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(ctx, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password authentication")
	assert.Contains(t, w.Body.String(), string(KindInternal))
}

func Test_RespondWithError_WhenAppError_WritesKindAndMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(ctx, Conflict("user with this email already exists"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "user with this email already exists")
	assert.Contains(t, w.Body.String(), string(KindConflict))
}
