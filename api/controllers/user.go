package controllers

import (
	"net/http"
	"strings"

	"github.com/pulgashop/envios-backend/pkg/config"
)

const userIDHeader = "X-User-Id"

// requestUserID resolves the acting user. There is no auth layer in front of
// this service yet, so the id comes from the request and falls back to the
// configured single-user default.
func requestUserID(r *http.Request, cfg *config.Config) string {
	if id := strings.TrimSpace(r.Header.Get(userIDHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.URL.Query().Get("userId")); id != "" {
		return id
	}
	return cfg.App.DefaultUserID
}
