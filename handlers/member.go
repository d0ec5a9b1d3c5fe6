package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"fitcoach_backend/middleware"
	"fitcoach_backend/models"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	db *sql.DB
}

func NewMemberHandler(db *sql.DB) *MemberHandler {
	return &MemberHandler{db: db}
}

func (h *MemberHandler) checkPermission(userID int) (bool, error) {
	var hasPermission bool
	err := h.db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM user_roles ur
            JOIN roles r ON r.id = ur.role_id
            WHERE ur.user_id = $1
            AND r.role = 'Admin'
        )
    `, userID).Scan(&hasPermission)

	return hasPermission, err
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can manage members"})
		return
	}

	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A member either logs in themselves (email + password) or is a
	// dependent linked to a parent account.
	if req.ParentID == 0 && (req.Email == "" || req.Password == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either email and password or parent_id is required"})
		return
	}

	if req.ParentID != 0 {
		var parentExists bool
		err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, req.ParentID).Scan(&parentExists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify parent member"})
			return
		}
		if !parentExists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent member not found"})
			return
		}
	}

	var email, passwordHash interface{}
	if req.Email != "" {
		var exists bool
		if err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, req.Email).Scan(&exists); err != nil {
			log.Printf("Error checking email existence: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}
		if exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}

		hashed, err := middleware.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
			return
		}
		email, passwordHash = req.Email, hashed
	}

	var parentID interface{}
	if req.ParentID != 0 {
		parentID = req.ParentID
	}

	var memberID int
	err = h.db.QueryRow(`
        INSERT INTO users (first_name, last_name, email, password_hash, parent_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, req.FirstName, req.LastName, email, passwordHash, parentID).Scan(&memberID)

	if err != nil {
		log.Printf("Error creating member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	// Attach the Member role
	_, err = h.db.Exec(`
        INSERT INTO user_roles (user_id, role_id)
        SELECT $1, id FROM roles WHERE role = 'Member'
        ON CONFLICT DO NOTHING
    `, memberID)
	if err != nil {
		log.Printf("Error assigning member role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign member role"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": memberID})
}

func (h *MemberHandler) GetMembers(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can list members"})
		return
	}

	rows, err := h.db.Query(`
        SELECT u.id, u.first_name, u.last_name, u.email, u.active, u.parent_id, u.created_at
        FROM users u
        JOIN user_roles ur ON ur.user_id = u.id
        JOIN roles r ON r.id = ur.role_id
        WHERE r.role = 'Member'
        ORDER BY u.last_name, u.first_name
    `)
	if err != nil {
		log.Printf("Error fetching members: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}
	defer rows.Close()

	members := make([]models.MemberResponse, 0)
	for rows.Next() {
		var m models.MemberResponse
		var email sql.NullString
		var parentID sql.NullInt64
		var createdAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &email, &m.Active, &parentID, &createdAt); err != nil {
			log.Printf("Error scanning member: %v", err)
			continue
		}
		if email.Valid {
			m.Email = email.String
		}
		if parentID.Valid {
			m.ParentID = int(parentID.Int64)
		}
		if createdAt.Valid {
			m.CreatedAt = createdAt.Time.Format("2006-01-02")
		}
		members = append(members, m)
	}

	c.JSON(http.StatusOK, members)
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can manage members"})
		return
	}

	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID := c.Param("id")
	result, err := h.db.Exec(`
        UPDATE users
        SET first_name = COALESCE(NULLIF($1, ''), first_name),
            last_name  = COALESCE(NULLIF($2, ''), last_name),
            active     = COALESCE($3, active)
        WHERE id = $4
    `, req.FirstName, req.LastName, req.Active, memberID)

	if err != nil {
		log.Printf("Error updating member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can manage members"})
		return
	}

	result, err := h.db.Exec(`DELETE FROM users WHERE id = $1`, c.Param("id"))
	if err != nil {
		log.Printf("Error deleting member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}
