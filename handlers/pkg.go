package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"fitcoach_backend/models"

	"github.com/gin-gonic/gin"
)

type PackageHandler struct {
	db *sql.DB
}

func NewPackageHandler(db *sql.DB) *PackageHandler {
	return &PackageHandler{db: db}
}

func (h *PackageHandler) checkPermission(userID int) (bool, error) {
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

func (h *PackageHandler) CreatePackage(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can manage packages"})
		return
	}

	var req models.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var memberExists bool
	err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, req.MemberID).Scan(&memberExists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify member"})
		return
	}
	if !memberExists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	var purchasedAt, expiresAt interface{}
	if req.PurchasedAt != "" {
		purchasedAt = req.PurchasedAt
	}
	if req.ExpiresAt != "" {
		expiresAt = req.ExpiresAt
	}

	var pkgID int
	err = h.db.QueryRow(`
        INSERT INTO lesson_packages (member_id, name, total_lessons, purchased_at, expires_at)
        VALUES ($1, $2, $3, COALESCE($4::date, CURRENT_DATE), $5)
        RETURNING id
    `, req.MemberID, req.Name, req.TotalLessons, purchasedAt, expiresAt).Scan(&pkgID)

	if err != nil {
		log.Printf("Error creating package: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": pkgID})
}

func (h *PackageHandler) GetPackages(c *gin.Context) {
	userID := c.GetInt("userID")

	isAdmin, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}

	// Members see their own packages; the trainer can filter by member_id
	// or list everything.
	query := `
        SELECT p.id, p.member_id, p.name, p.total_lessons,
               (SELECT COUNT(*) FROM lessons l WHERE l.package_id = p.id) AS used,
               p.purchased_at, p.expires_at
        FROM lesson_packages p
    `
	var rows *sql.Rows
	if isAdmin {
		if memberID := c.Query("member_id"); memberID != "" {
			rows, err = h.db.Query(query+` WHERE p.member_id = $1 ORDER BY p.purchased_at DESC`, memberID)
		} else {
			rows, err = h.db.Query(query + ` ORDER BY p.purchased_at DESC`)
		}
	} else {
		rows, err = h.db.Query(query+` WHERE p.member_id = $1 ORDER BY p.purchased_at DESC`, userID)
	}

	if err != nil {
		log.Printf("Error fetching packages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages"})
		return
	}
	defer rows.Close()

	packages := make([]models.PackageResponse, 0)
	for rows.Next() {
		var p models.PackageResponse
		var purchasedAt, expiresAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Name, &p.TotalLessons, &p.UsedLessons, &purchasedAt, &expiresAt); err != nil {
			log.Printf("Error scanning package: %v", err)
			continue
		}
		p.Remaining = p.TotalLessons - p.UsedLessons
		if purchasedAt.Valid {
			p.PurchasedAt = purchasedAt.Time.Format("2006-01-02")
		}
		if expiresAt.Valid {
			p.ExpiresAt = expiresAt.Time.Format("2006-01-02")
		}
		packages = append(packages, p)
	}

	c.JSON(http.StatusOK, packages)
}
