package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/i18n"
	"github.com/thcfit/shipping-gateway/internal/service"
)

// AdminClaimsKey holds the validated admin claims.
const AdminClaimsKey ContextKey = "admin_claims"

// AdminAuth admits requests carrying a valid admin bearer token.
func AdminAuth(admins service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := admins.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(AdminKey), claims.Username)
		c.Set(string(AdminClaimsKey), claims)
		c.Next()
	}
}

// GetAdminClaims returns the claims set by AdminAuth.
func GetAdminClaims(c *gin.Context) *dto.AdminClaims {
	if v, exists := c.Get(string(AdminClaimsKey)); exists {
		if claims, ok := v.(*dto.AdminClaims); ok {
			return claims
		}
	}
	return nil
}

// bearerToken extracts the token of a "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
