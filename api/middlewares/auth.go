package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/Adedunmol/pulso/api/jsonutil"
	"github.com/Adedunmol/pulso/api/tokens"
)

type claimsKey struct{}

func AuthMiddleware(tokenService tokens.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "authorization header required",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			tokenString := strings.Split(authHeader, " ")

			if len(tokenString) != 2 || tokenString[0] != "Bearer" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid authorization header format",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			data, err := tokenService.DecodeToken(tokenString[1])
			if err != nil || data.UserID == "" {
				response := jsonutil.Response{
					Status:  "error",
					Message: "invalid or expired token",
				}
				jsonutil.WriteJSONResponse(responseWriter, response, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(responseWriter, request.WithContext(WithClaims(request.Context(), data)))
		})
	}
}

func WithClaims(ctx context.Context, claims *tokens.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims AuthMiddleware stored on the request.
func ClaimsFromContext(ctx context.Context) (*tokens.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*tokens.Claims)
	return claims, ok && claims != nil
}
