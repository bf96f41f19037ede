package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextSessionID = "sessionID"
	ContextPrincipal = "principal"
)

// AuthMiddleware valida o bearer token com o provedor configurado
// (JWT local ou Firebase) e publica a identidade no contexto.
func AuthMiddleware(authn identity.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			httperr.Abort(c, httperr.CodeUnauthorized)
			return
		}

		p, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			httperr.Abort(c, httperr.CodeUnauthorized)
			return
		}

		c.Set(ContextPrincipal, p)
		c.Set(ContextUserID, p.UserID)
		c.Set(ContextUserRole, p.Role)
		c.Set(ContextSessionID, p.SessionID)

		c.Next()
	}
}

// RequirePermission barra quem não tem nenhuma das permissões.
func RequirePermission(perms ...role.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := UserRole(c)
		for _, p := range perms {
			if role.Can(r, p) {
				c.Next()
				return
			}
		}
		httperr.Abort(c, httperr.CodeForbidden)
	}
}

// RequireRole barra quem não tem um dos papéis.
func RequireRole(roles ...role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := UserRole(c)
		for _, allowed := range roles {
			if r == allowed {
				c.Next()
				return
			}
		}
		httperr.Abort(c, httperr.CodeForbidden)
	}
}

// -------- Context helpers --------

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func UserRole(c *gin.Context) role.Role {
	return role.Role(c.GetString(ContextUserRole))
}

func Principal(c *gin.Context) identity.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(identity.Principal); ok {
			return p
		}
	}
	return identity.Principal{}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
