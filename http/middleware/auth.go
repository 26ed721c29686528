package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/memecataloger/catalog-api/config"
	"github.com/memecataloger/catalog-api/utils"
)

// IdentityMiddleware injects user_id from a valid token when one is
// present. It never rejects: auth is not enforced yet, and the
// controllers treat identity as a placeholder check.
func IdentityMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := utils.ExtractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		token, err := utils.ParseToken(tokenString, cfg)
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			_ = utils.InjectClaimsToContext(c, claims)
		}
		c.Next()
	}
}
