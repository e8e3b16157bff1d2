package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"

	userRepo "bridalstudio/database/repository/user"
	"bridalstudio/utils"
)

// JWTAuthUserMiddleware authenticates requests with a Bearer token. The token
// hash is checked against Redis first and the account record on a cache miss,
// so a revoked token stops working even before it expires.
func JWTAuthUserMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Server error",
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}
		userID, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			abortUnauthorized(c)
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"success": false,
						"message": "Token mismatch",
					})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				setCaller(c, userID, role)
				c.Next()
				return
			} else if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
			}
		}

		// Cache miss: the account record is authoritative.
		account, err := users.GetByID(userID)
		if err != nil || account == nil {
			abortUnauthorized(c)
			return
		}
		if account.TokenHash == "" || account.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token mismatch",
			})
			return
		}

		if cacheEnabled {
			if err := authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err(); err != nil {
				log.Printf("WARNING: Failed to refresh auth cache: %v", err)
			}
		}

		setCaller(c, account.ID, account.Role)
		c.Next()
	}
}

func setCaller(c *gin.Context, userID, role string) {
	c.Set("userID", userID)
	c.Set("userRole", role)
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Not authorized to access this route",
	})
}
