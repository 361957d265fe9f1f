package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sanketnagtilak/mern-project/utils"
)

const AccessTokenCookie = "access_token"

// JWTMiddleware accepts a bearer token, or the access_token cookie set at
// sign-in, and stores the caller's id and kind on the context.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return err
			}

			claims, err := utils.ValidateJWT(secret, tokenString)
			if err != nil {
				return utils.Unauthorized("Invalid token")
			}

			c.Set("user_id", claims.ID)
			c.Set("user_kind", claims.Kind)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			return "", utils.Unauthorized("Invalid authorization header format")
		}
		return tokenParts[1], nil
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", utils.Unauthorized("Unauthorized")
}

// RequireKind rejects callers whose token was issued for another kind of
// account. It runs after JWTMiddleware.
func RequireKind(kind string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CallerKind(c) != kind {
				return utils.Unauthorized("This action requires a " + kind + " account!")
			}
			return next(c)
		}
	}
}

// CallerID returns the authenticated caller's id, or "" on public routes.
func CallerID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func CallerKind(c echo.Context) string {
	kind, _ := c.Get("user_kind").(string)
	return kind
}
