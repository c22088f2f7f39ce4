package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type staffIDKey struct{}

// AuthRequired rejects requests without a verified access token carrying a
// staff id, and stores that id for StaffID.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if tokenType != jwt.TokenTypeAccess || !ok {
			response.Unauthorized(w, "Invalid token")
			return
		}

		staffID, ok := claims[jwt.ClaimStaffID].(string)
		if staffID == "" || !ok {
			response.Unauthorized(w, "Token has no staff id")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey{}, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}

// StaffID returns the staff id stored by AuthRequired.
func StaffID(ctx context.Context) string {
	id, _ := ctx.Value(staffIDKey{}).(string)
	return id
}
