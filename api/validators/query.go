package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
)

// RequireQuery returns the trimmed query value or a validation error when
// the parameter is missing or blank.
func RequireQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "missing query parameter").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// OptionalQuery returns the trimmed query value, which may be empty.
func OptionalQuery(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
