package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitcoach_backend/config"

	"github.com/gin-gonic/gin"
)

func pushRouter(h *PushHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/internal/push/send", h.SendInternal)
	return r
}

func TestSendInternalRejectsBadToken(t *testing.T) {
	cfg := &config.Config{InternalPushToken: "push-token"}
	h := NewPushHandler(nil, cfg, nil)
	r := pushRouter(h)

	cases := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"wrong token", "not-the-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/internal/push/send",
				strings.NewReader(`{"userIds":[1],"title":"t","message":"m"}`))
			if tc.token != "" {
				req.Header.Set("x-internal-token", tc.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestSendInternalFailsClosedWithoutConfiguredToken(t *testing.T) {
	cfg := &config.Config{InternalPushToken: ""}
	h := NewPushHandler(nil, cfg, nil)
	r := pushRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/internal/push/send",
		strings.NewReader(`{"userIds":[1],"title":"t","message":"m"}`))
	req.Header.Set("x-internal-token", "")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when no token is configured", rec.Code)
	}
}

func TestSendInternalValidatesBody(t *testing.T) {
	cfg := &config.Config{InternalPushToken: "push-token"}
	h := NewPushHandler(nil, cfg, nil)
	r := pushRouter(h)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing title", `{"userIds":[1],"message":"m"}`},
		{"missing message", `{"userIds":[1],"title":"t"}`},
		{"missing userIds", `{"title":"t","message":"m"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/internal/push/send", strings.NewReader(tc.body))
			req.Header.Set("x-internal-token", "push-token")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
