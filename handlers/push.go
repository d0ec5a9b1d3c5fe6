package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"fitcoach_backend/config"
	"fitcoach_backend/middleware"
	"fitcoach_backend/models"
	"fitcoach_backend/push"

	"github.com/gin-gonic/gin"
)

type PushHandler struct {
	db     *sql.DB
	cfg    *config.Config
	pushes *push.Service
}

func NewPushHandler(db *sql.DB, cfg *config.Config, pushes *push.Service) *PushHandler {
	return &PushHandler{db: db, cfg: cfg, pushes: pushes}
}

// Subscribe registers (or re-registers) a browser push endpoint for the
// logged-in user.
func (h *PushHandler) Subscribe(c *gin.Context) {
	userID := c.GetInt("userID")

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.db.Exec(`
        INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (endpoint) DO UPDATE
        SET user_id = EXCLUDED.user_id, p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth
    `, userID, req.Endpoint, req.P256dh, req.Auth)

	if err != nil {
		log.Printf("Error saving push subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
}

func (h *PushHandler) Unsubscribe(c *gin.Context) {
	userID := c.GetInt("userID")

	var req models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.db.Exec(`
        DELETE FROM push_subscriptions WHERE endpoint = $1 AND user_id = $2
    `, req.Endpoint, userID)

	if err != nil {
		log.Printf("Error removing push subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

// SendInternal fans a notification out to every subscription of the given
// users. Server-to-server only: the x-internal-token header must match the
// configured secret or the call fails closed.
func (h *PushHandler) SendInternal(c *gin.Context) {
	token := c.GetHeader("x-internal-token")
	if h.cfg.InternalPushToken == "" || !middleware.SecureCompare(token, h.cfg.InternalPushToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.SendPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, total, err := h.pushes.SendToUsers(req.UserIDs, req.Title, req.Message, req.URL)
	if err != nil {
		log.Printf("Error sending push: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if total == 0 {
		c.JSON(http.StatusOK, gin.H{"sent": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": sent, "total": total})
}
