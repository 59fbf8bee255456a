package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Query parameter parsers. Malformed values are treated as absent, matching
// the permissive filter handling of the API: a bad filter never fails the
// request, it just does not narrow it.

func queryDecimal(c echo.Context, name string) *decimal.Decimal {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &value
}

func queryInt64(c echo.Context, name string) *int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

func queryBool(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// queryDate accepts ISO dates with or without a time component
func queryDate(c echo.Context, name string) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	if value, err := time.Parse("2006-01-02", raw); err == nil {
		return &value
	}
	if value, err := time.Parse(time.RFC3339, raw); err == nil {
		return &value
	}
	return nil
}

// pathID parses a numeric path parameter, returning false on garbage
func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
