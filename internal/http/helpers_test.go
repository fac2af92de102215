package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBadRequest(c, "missing field")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"missing field"}`, w.Body.String())
}

func TestRespondBadRequestWithCode(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBadRequestWithCode(c, "bad file", "no_library_books", []string{"a.csv"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad file","code":"no_library_books","details":["a.csv"]}`, w.Body.String())
}

func TestRespondInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondInternalError(c, errors.New("secret details"), "test")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret details")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestSplitCodes(t *testing.T) {
	codes := splitCodes([]string{"9780306406157, 9780140449136\n9780679734529", "", "0306406152"})
	assert.Equal(t, []string{"9780306406157", "9780140449136", "9780679734529", "0306406152"}, codes)
}
