package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"fitcoach_backend/middleware"
	"fitcoach_backend/models"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	db           *sql.DB
	tokenService *middleware.TokenService
}

func NewAuthHandler(db *sql.DB, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{
		db:           db,
		tokenService: middleware.NewTokenService(db, jwtSecret),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID int
	var hashedPassword sql.NullString
	var firstName, lastName string
	var active bool
	err := h.db.QueryRow(`
        SELECT id, password_hash, first_name, last_name, active
        FROM users WHERE email = $1
    `, req.Email).Scan(&userID, &hashedPassword, &firstName, &lastName, &active)

	if err == sql.ErrNoRows || !hashedPassword.Valid || !middleware.VerifyPassword(hashedPassword.String, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	} else if err != nil {
		log.Printf("Error querying user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}

	if !active {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	tokens, err := h.tokenService.GenerateTokens(userID)
	if err != nil {
		log.Printf("Error generating tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	roles, err := h.userRoles(userID)
	if err != nil {
		log.Printf("Error loading roles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user roles"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken:  tokens["access_token"].(string),
		RefreshToken: tokens["refresh_token"].(string),
		UserID:       userID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        req.Email,
		Roles:        roles,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	tokens, err := h.tokenService.GenerateTokens(userID)
	if err != nil {
		log.Printf("Error generating tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	if err := h.tokenService.InvalidateRefreshToken(req.RefreshToken); err != nil {
		log.Printf("Error invalidating old refresh token: %v", err)
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		if err := h.tokenService.InvalidateRefreshToken(req.RefreshToken); err != nil {
			log.Printf("Error invalidating refresh token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetInt("userID")

	var member models.MemberResponse
	var email sql.NullString
	var parentID sql.NullInt64
	var createdAt sql.NullTime
	err := h.db.QueryRow(`
        SELECT id, first_name, last_name, email, active, parent_id, created_at
        FROM users WHERE id = $1
    `, userID).Scan(&member.ID, &member.FirstName, &member.LastName, &email, &member.Active, &parentID, &createdAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		log.Printf("Error loading user info: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user info"})
		return
	}

	if email.Valid {
		member.Email = email.String
	}
	if parentID.Valid {
		member.ParentID = int(parentID.Int64)
	}
	if createdAt.Valid {
		member.CreatedAt = createdAt.Time.Format("2006-01-02")
	}

	roles, err := h.userRoles(userID)
	if err != nil {
		log.Printf("Error loading roles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user roles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": member, "roles": roles})
}

func (h *AuthHandler) userRoles(userID int) ([]string, error) {
	rows, err := h.db.Query(`
        SELECT r.role
        FROM user_roles ur
        JOIN roles r ON r.id = ur.role_id
        WHERE ur.user_id = $1
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]string, 0)
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
