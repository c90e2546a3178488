package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"pos-backend/internal/apperrors"
	"pos-backend/pkg/utils"
)

// PanicRecovery converts handler panics into a 500 in the standard
// error shape. The log line carries the request id so the crash can be
// correlated with the client's failed call; it must therefore sit
// inside RequestID in the chain.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID, _ := GetRequestIDFromContext(r.Context())
				log.Printf("[HTTP] panic recovered request_id=%s %s %s: %v\n%s",
					requestID, r.Method, r.URL.Path, err, debug.Stack())

				utils.JSON(w, http.StatusInternalServerError, utils.ErrorResponse{
					Kind:    apperrors.KindInternal,
					Message: "internal server error",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
