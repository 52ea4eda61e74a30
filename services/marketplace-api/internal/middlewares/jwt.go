package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/apperr"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/auth"
)

const (
	TokenCookie = "token"

	keySub   = "sub"
	keyRole  = "role"
	keyEmail = "email"
)

// JWTAuth accepts the session cookie first and a Bearer header second. A
// cookie that no longer parses does not hide a valid header.
func JWTAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, bearer := credentials(c)
		if cookie == "" && bearer == "" {
			Abort(c, apperr.E(apperr.Unauthenticated, "Not authenticated"))
			return
		}
		var (
			claims *auth.Claims
			err    error
		)
		for _, tok := range []string{cookie, bearer} {
			if tok == "" {
				continue
			}
			cl, perr := tokens.Parse(tok)
			if perr == nil {
				claims = cl
				break
			}
			if err == nil {
				err = perr
			}
		}
		if claims == nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token expired"
			}
			Abort(c, apperr.Wrap(apperr.InvalidToken, msg, err))
			return
		}
		c.Set(keySub, claims.UserID())
		c.Set(keyRole, claims.Role)
		c.Set(keyEmail, claims.Email)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[Role(c)]; !ok {
			Abort(c, apperr.E(apperr.Forbidden, "Forbidden"))
			return
		}
		c.Next()
	}
}

func credentials(c *gin.Context) (cookie, bearer string) {
	if v, err := c.Cookie(TokenCookie); err == nil {
		cookie = v
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		bearer = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return cookie, bearer
}

func Subject(c *gin.Context) string { return c.GetString(keySub) }

func Role(c *gin.Context) string { return c.GetString(keyRole) }

func Email(c *gin.Context) string { return c.GetString(keyEmail) }
