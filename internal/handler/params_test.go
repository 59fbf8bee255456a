package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestQueryDecimal(t *testing.T) {
	c := contextWithQuery("minValue=10.50&bad=abc")

	value := queryDecimal(c, "minValue")
	require.NotNil(t, value)
	assert.Equal(t, "10.5", value.String())

	assert.Nil(t, queryDecimal(c, "bad"))
	assert.Nil(t, queryDecimal(c, "missing"))
}

func TestQueryBool(t *testing.T) {
	c := contextWithQuery("essential=true&bad=maybe")

	value := queryBool(c, "essential")
	require.NotNil(t, value)
	assert.True(t, *value)

	assert.Nil(t, queryBool(c, "bad"))
}

func TestQueryDate_AcceptsPlainAndRFC3339(t *testing.T) {
	c := contextWithQuery("plain=2023-05-10&full=2023-05-10T15:04:05Z&bad=yesterday")

	plain := queryDate(c, "plain")
	require.NotNil(t, plain)
	assert.Equal(t, time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC), *plain)

	full := queryDate(c, "full")
	require.NotNil(t, full)
	assert.Equal(t, 15, full.Hour())

	assert.Nil(t, queryDate(c, "bad"))
	assert.Nil(t, queryDate(c, "missing"))
}

func TestPathID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("goalId")
	c.SetParamValues("42")

	id, ok := pathID(c, "goalId")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	c.SetParamValues("banana")
	_, ok = pathID(c, "goalId")
	assert.False(t, ok)

	c.SetParamValues("-3")
	_, ok = pathID(c, "goalId")
	assert.False(t, ok)
}
