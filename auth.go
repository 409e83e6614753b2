package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	loginTokenTTL   = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
	rotatedTokenTTL = 15 * time.Minute
)

var (
	jwtSecret = []byte("dev-insecure-secret-change")
	sessions  = session.NewTracker()
)

// logSessions writes every session transition to the log.
func logSessions(ev session.Event) {
	logger.Info("session changed",
		zap.String("identity_id", ev.IdentityID),
		zap.String("email", ev.Email),
		zap.Stringer("state", ev.State),
		zap.String("reason", ev.Reason),
	)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(authHeader[7:], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sub, _ := claims.GetSubject()
		email, _ := claims["email"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}
		c.Set("identity_id", sub)
		c.Set("email", email)
		c.Next()
	}
}

func issueAccessToken(ident models.Identity, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   ident.ID,
		"email": ident.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret)
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ident, err := identities.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login gagal. Periksa email dan password Anda."})
		return
	}
	tokenString, err := issueAccessToken(ident, loginTokenTTL)
	if err != nil {
		serverError(c, "failed to generate token", err)
		return
	}
	refreshToken, err := createAndStoreRefreshToken(ident.ID)
	if err != nil {
		serverError(c, "failed to create refresh token", err)
		return
	}
	sessions.SignedIn(ident.ID, ident.Email)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(identityID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	rt := models.RefreshToken{IdentityID: identityID, TokenHash: hashToken(token), ExpiresAt: time.Now().Add(refreshTokenTTL)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", hashToken(token)).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	if rt.Revoked || time.Now().After(rt.ExpiresAt) {
		if !rt.Revoked {
			db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
			sessions.SignedOut(rt.IdentityID, "", "refresh-expired")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	ident, err := identities.Lookup(c.Request.Context(), rt.IdentityID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity not found"})
		return
	}
	tokenString, err := issueAccessToken(ident, rotatedTokenTTL)
	if err != nil {
		serverError(c, "failed to generate token", err)
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(ident.ID)
	if err != nil {
		serverError(c, "failed to rotate refresh token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// logoutHandler revokes the refresh token and ends the session.
func logoutHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	if rt.Revoked {
		c.JSON(http.StatusOK, gin.H{"message": "already signed out"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		serverError(c, "failed to revoke token", err)
		return
	}
	email := ""
	if ident, err := identities.Lookup(c.Request.Context(), rt.IdentityID); err == nil {
		email = ident.Email
	}
	sessions.SignedOut(rt.IdentityID, email, "sign-out")
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func meHandler(c *gin.Context) {
	id := c.GetString("identity_id")
	if id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing identity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"identityId": id,
		"email":      c.GetString("email"),
		"session":    sessions.State(id).String(),
	})
}
