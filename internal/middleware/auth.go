package middleware

import (
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v5"
)

const Issuer = "ppdb_backend_v1"

type Claims struct {
    Username string `json:"username"`
    jwt.RegisteredClaims
}

// IssueToken signs a short-lived admin session token.
func IssueToken(secret, username string, ttl time.Duration) (string, error) {
    now := time.Now().UTC()
    claims := Claims{
        Username: username,
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    Issuer,
            Subject:   username,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
        },
    }
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString([]byte(secret))
}

// ParseToken validates a session token and returns its claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
    claims := &Claims{}
    token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil {
        return nil, err
    }
    if !token.Valid {
        return nil, jwt.ErrTokenInvalidClaims
    }
    return claims, nil
}

// AuthMiddleware guards the admin surface. There is exactly one admin
// credential, so a valid signature is sufficient; no lookup follows.
func AuthMiddleware(secret string) gin.HandlerFunc {
    return func(c *gin.Context) {
        auth := c.GetHeader("Authorization")
        if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Tidak terautentikasi"})
            return
        }
        tokenStr := strings.TrimSpace(auth[len("Bearer "):])

        claims, err := ParseToken(secret, tokenStr)
        if err != nil {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak valid"})
            return
        }

        c.Set("adminUser", claims.Username)
        c.Next()
    }
}
