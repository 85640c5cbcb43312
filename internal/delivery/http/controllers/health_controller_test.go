package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillsharehub/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestHealthController_Health(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rr := httptest.NewRecorder()

		NewHealthController(testLogger, fakePinger{}, time.Second).Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var data map[string]string
		decodeData(t, decodeEnvelope(t, rr), &data)
		assert.Equal(t, "ok", data["status"])
	})

	t.Run("database down", func(t *testing.T) {
		rr := httptest.NewRecorder()

		NewHealthController(testLogger, fakePinger{err: errors.New("refused")}, time.Second).Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assertError(t, rr, http.StatusInternalServerError, helpers.ErrCodeInternalError, "database unavailable")
	})
}
