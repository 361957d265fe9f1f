package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sanketnagtilak/mern-project/repository"
	"github.com/sanketnagtilak/mern-project/utils"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"app error", utils.Conflict("User already exists!"), http.StatusConflict, "User already exists!"},
		{"wrapped app error", fmt.Errorf("create: %w", utils.NotFound("Agent not found!")), http.StatusNotFound, "Agent not found!"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"repository not found", fmt.Errorf("lookup: %w", repository.ErrNotFound), http.StatusNotFound, "Not found"},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, "Internal Server Error"},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Success || body.Status != tt.wantStatus || body.Message != tt.wantMessage {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestErrorHandlerHead(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

	ErrorHandler(utils.NotFound("Listing not found!"), c)

	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Errorf("HEAD response = %d with %d body bytes", rec.Code, rec.Body.Len())
	}
}
