package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return f.err
}

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name     string
		pingErr  error
		wantCode int
		wantBody string
	}{
		{"database reachable", nil, http.StatusOK, "connected"},
		{"database down", errors.New("server selection timeout"), http.StatusServiceUnavailable, "disconnected"},
	}
	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := healthHandler(&fakePinger{err: tc.pingErr})(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != tc.wantCode {
			t.Errorf("%s: code = %d, want %d", tc.name, rec.Code, tc.wantCode)
		}
		if !strings.Contains(rec.Body.String(), tc.wantBody) {
			t.Errorf("%s: body = %s, want it to report %q", tc.name, rec.Body.String(), tc.wantBody)
		}
	}
}
