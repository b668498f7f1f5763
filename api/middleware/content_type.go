package middleware

import (
	"mime"
	"net/http"

	"github.com/angelmondragon/inventory-service/api/responses"
	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
	"github.com/angelmondragon/inventory-service/pkg/logger"
)

const jsonMediaType = "application/json"

// RequireJSON rejects POST and PUT requests whose Content-Type is not JSON.
func RequireJSON(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut {
				next.ServeHTTP(w, r)
				return
			}
			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mediaType != jsonMediaType {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnsupportedMedia, "Content-Type must be "+jsonMediaType))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
