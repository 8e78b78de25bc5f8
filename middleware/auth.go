package middleware

import (
	"letter-routing-api/config"
	"letter-routing-api/models"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID       int         `json:"user_id"`
	Role         models.Role `json:"role"`
	DepartmentID *int        `json:"department_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the JWT and loads the caller identity into the
// request context. Suspended accounts are rejected here, before any
// handler runs.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check the account still exists and is active.
		var user models.User
		if err := config.DB.Where("user_id = ? AND status = ?", claims.UserID, models.UserActive).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or suspended"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("departmentID", claims.DepartmentID)

		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set. It
// runs before any letter is read, so a wrong-role caller never learns
// whether a letter exists or what state it is in.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		userRole, ok := roleValue.(models.Role)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid role"})
			c.Abort()
			return
		}

		allowed := false
		for _, role := range roles {
			if userRole == role {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CallerIdentity extracts the (user id, role, department id) triple set by
// AuthMiddleware.
func CallerIdentity(c *gin.Context) (int, models.Role, *int, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		return 0, "", nil, false
	}
	userID, ok := userIDValue.(int)
	if !ok {
		return 0, "", nil, false
	}

	roleValue, exists := c.Get("role")
	if !exists {
		return 0, "", nil, false
	}
	role, ok := roleValue.(models.Role)
	if !ok {
		return 0, "", nil, false
	}

	var departmentID *int
	if deptValue, exists := c.Get("departmentID"); exists {
		if dept, ok := deptValue.(*int); ok {
			departmentID = dept
		}
	}

	return userID, role, departmentID, true
}
