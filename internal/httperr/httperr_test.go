package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBusinessErrorWrapped(t *testing.T) {
	err := fmt.Errorf("assign: %w", ErrBusiness(CodeAlreadyAssigned))

	assert.True(t, IsBusiness(err, CodeAlreadyAssigned))
	assert.False(t, IsBusiness(err, CodeSlotOverlap))

	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, CodeAlreadyAssigned, code)

	_, ok = CodeOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestLookupUnknownFallsBackToInternal(t *testing.T) {
	status, msg := Lookup("no_such_code")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, catalog[CodeInternal].Message, msg)
}

func TestCatalogEntriesHaveMessages(t *testing.T) {
	for code, e := range catalog {
		assert.NotEmpty(t, e.Message, code)
		assert.GreaterOrEqual(t, e.Status, 400, code)
	}
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	Respond(c, zap.NewNop(), err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestRespondBusiness(t *testing.T) {
	rr, body := respond(t, ErrBusiness(CodeTooManyRequests))

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, CodeTooManyRequests, body.Code)
	assert.Equal(t, "Muitas tentativas. Tente novamente mais tarde.", body.Message)
}

func TestRespondUnexpected(t *testing.T) {
	rr, body := respond(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, CodeInternal, body.Code)
}
