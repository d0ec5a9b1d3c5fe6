package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"fitcoach_backend/models"
	"fitcoach_backend/push"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	db     *sql.DB
	pushes *push.Service
}

func NewLessonHandler(db *sql.DB, pushes *push.Service) *LessonHandler {
	return &LessonHandler{db: db, pushes: pushes}
}

func (h *LessonHandler) checkPermission(userID int) (bool, error) {
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

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can record lessons"})
		return
	}

	var req models.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var memberID, totalLessons, usedLessons int
	var pkgName string
	err = h.db.QueryRow(`
        SELECT p.member_id, p.name, p.total_lessons,
               (SELECT COUNT(*) FROM lessons l WHERE l.package_id = p.id)
        FROM lesson_packages p
        WHERE p.id = $1
    `, req.PackageID).Scan(&memberID, &pkgName, &totalLessons, &usedLessons)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify package"})
		return
	}

	if usedLessons >= totalLessons {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Package has no lessons left"})
		return
	}

	occurredAt := time.Now()
	if req.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "occurred_at must be RFC3339"})
			return
		}
		occurredAt = parsed
	}

	var lesson models.LessonResponse
	err = h.db.QueryRow(`
        INSERT INTO lessons (package_id, member_id, occurred_at, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id, package_id, member_id, occurred_at, COALESCE(notes, '')
    `, req.PackageID, memberID, occurredAt, req.Notes).Scan(
		&lesson.ID,
		&lesson.PackageID,
		&lesson.MemberID,
		&lesson.OccurredAt,
		&lesson.Notes,
	)

	if err != nil {
		log.Printf("Error creating lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}

	// Best-effort renewal reminder once the package runs low. Delivery
	// failure must never fail the attendance write, so the error is
	// discarded here and nowhere else.
	if remaining := totalLessons - usedLessons - 1; remaining <= 2 {
		if _, _, err := h.pushes.SendToUsers(
			[]int{memberID},
			"Package running low",
			fmt.Sprintf("Only %d lessons left in %s. Time to talk about renewal!", remaining, pkgName),
			"/member/packages",
		); err != nil {
			log.Printf("Renewal reminder push failed: %v", err)
		}
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *LessonHandler) GetLessons(c *gin.Context) {
	userID := c.GetInt("userID")

	isAdmin, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}

	memberID := c.Query("member_id")
	if !isAdmin {
		memberID = fmt.Sprintf("%d", userID)
	}

	var rows *sql.Rows
	if memberID != "" {
		rows, err = h.db.Query(`
            SELECT id, package_id, member_id, occurred_at, COALESCE(notes, '')
            FROM lessons
            WHERE member_id = $1
            ORDER BY occurred_at DESC
        `, memberID)
	} else {
		rows, err = h.db.Query(`
            SELECT id, package_id, member_id, occurred_at, COALESCE(notes, '')
            FROM lessons
            ORDER BY occurred_at DESC
        `)
	}

	if err != nil {
		log.Printf("Error fetching lessons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}
	defer rows.Close()

	lessons := make([]models.LessonResponse, 0)
	for rows.Next() {
		var lesson models.LessonResponse
		if err := rows.Scan(&lesson.ID, &lesson.PackageID, &lesson.MemberID, &lesson.OccurredAt, &lesson.Notes); err != nil {
			log.Printf("Error scanning lesson: %v", err)
			continue
		}
		lessons = append(lessons, lesson)
	}

	c.JSON(http.StatusOK, lessons)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can delete lessons"})
		return
	}

	result, err := h.db.Exec(`DELETE FROM lessons WHERE id = $1`, c.Param("id"))
	if err != nil {
		log.Printf("Error deleting lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}
