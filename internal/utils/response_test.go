package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "false", body["error"])
	assert.NotNil(t, body["data"])
}

func TestErrorEnvelopeAlwaysHTTP200(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, "something went wrong", errors.New("boom"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "true", body["error"])
	assert.Equal(t, "something went wrong", body["message"])
}

func TestErrorSimpleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorSimple(rec, "not allowed")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "true", body["error"])
	assert.Equal(t, "not allowed", body["message"])
}

func TestSuccessRankedIncludesMyRank(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessRanked(rec, []int{1, 2, 3}, 42)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "false", body["error"])
	assert.Equal(t, float64(42), body["myRank"])
	assert.NotNil(t, body["data"])
}
