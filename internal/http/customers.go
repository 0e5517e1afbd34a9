package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmehdipour/rc-admin/internal/upstream"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const upstreamFailure = "RevenueCat request failed"

// Upstream is the part of the customers API the proxy relays to.
type Upstream interface {
	ListCustomers(ctx context.Context, rawQuery string) (upstream.Result, error)
	DeleteCustomer(ctx context.Context, id string) (upstream.Result, error)
}

func listCustomersHandler(rc Upstream, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := rc.ListCustomers(c.Request().Context(), c.Request().URL.RawQuery)
		if err != nil {
			return badGateway(c, log, err)
		}
		return relay(c, res)
	}
}

func deleteCustomerHandler(rc Upstream, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := customerIDParam(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
		}

		res, err := rc.DeleteCustomer(c.Request().Context(), id)
		if err != nil {
			return badGateway(c, log, err)
		}
		return relay(c, res)
	}
}

// customerIDParam returns the :id segment decoded exactly once. Echo routes on the raw path when
// the request carries escapes, in which case the param may still be encoded.
func customerIDParam(c echo.Context) (string, error) {
	id := c.Param("id")
	escaped := c.Request().URL.EscapedPath()
	if i := strings.LastIndexByte(escaped, '/'); i >= 0 && escaped[i+1:] == id {
		return url.PathUnescape(id)
	}
	return id, nil
}

// relay writes the upstream status and body unchanged.
func relay(c echo.Context, res upstream.Result) error {
	if !bodyAllowed(res.Status) {
		return c.NoContent(res.Status)
	}
	body := []byte(res.Body)
	if body == nil {
		body = []byte("null")
	}
	return c.JSONBlob(res.Status, body)
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

func badGateway(c echo.Context, log *zap.Logger, err error) error {
	log.Error("upstream call failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return c.JSON(http.StatusBadGateway, map[string]string{
		"error":   upstreamFailure,
		"details": strings.TrimSpace(err.Error()),
	})
}
