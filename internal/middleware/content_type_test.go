package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireJSON_AcceptsJSON(t *testing.T) {
	e := echo.New()

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "OK")
	}

	for _, contentType := range []string{
		"application/json",
		"application/json; charset=utf-8",
	} {
		req := httptest.NewRequest(http.MethodPost, "/wishlists", strings.NewReader("{}"))
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		handlerCalled = false

		err := RequireJSON()(handler)(c)
		if err != nil {
			t.Fatalf("%s: Expected no error, got %v", contentType, err)
		}
		if !handlerCalled {
			t.Errorf("%s: Handler should be called", contentType)
		}
	}
}

func TestRequireJSON_RejectsOtherMediaTypes(t *testing.T) {
	e := echo.New()

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called")
		return nil
	}

	for _, contentType := range []string{"text/plain", "application/xml", ""} {
		req := httptest.NewRequest(http.MethodPost, "/wishlists", strings.NewReader("data"))
		if contentType != "" {
			req.Header.Set(echo.HeaderContentType, contentType)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireJSON()(handler)(c)
		if err != nil {
			t.Fatalf("%q: Expected JSON response, got error: %v", contentType, err)
		}
		if rec.Code != http.StatusUnsupportedMediaType {
			t.Errorf("%q: Expected status 415, got %d", contentType, rec.Code)
		}
	}
}
