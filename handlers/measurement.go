package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"fitcoach_backend/models"

	"github.com/gin-gonic/gin"
)

type MeasurementHandler struct {
	db *sql.DB
}

func NewMeasurementHandler(db *sql.DB) *MeasurementHandler {
	return &MeasurementHandler{db: db}
}

func (h *MeasurementHandler) checkPermission(userID int) (bool, error) {
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

// resolveMemberID decides whose data the request targets: members always get
// themselves, the trainer may pass member_id.
func (h *MeasurementHandler) resolveMemberID(c *gin.Context, requested int) (int, bool) {
	userID := c.GetInt("userID")

	isAdmin, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return 0, false
	}

	if !isAdmin || requested == 0 {
		return userID, true
	}
	return requested, true
}

func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	var req models.CreateMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, ok := h.resolveMemberID(c, req.MemberID)
	if !ok {
		return
	}

	var m models.MeasurementResponse
	var takenOn sql.NullTime
	err := h.db.QueryRow(`
        INSERT INTO measurements (member_id, taken_on, weight_kg, body_fat_pct, chest_cm, waist_cm, hip_cm)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, member_id, taken_on, weight_kg, body_fat_pct, chest_cm, waist_cm, hip_cm
    `, memberID, req.TakenOn, req.WeightKg, req.BodyFatPct, req.ChestCm, req.WaistCm, req.HipCm).Scan(
		&m.ID, &m.MemberID, &takenOn, &m.WeightKg, &m.BodyFatPct, &m.ChestCm, &m.WaistCm, &m.HipCm,
	)

	if err != nil {
		log.Printf("Error creating measurement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create measurement"})
		return
	}
	if takenOn.Valid {
		m.TakenOn = takenOn.Time.Format("2006-01-02")
	}

	c.JSON(http.StatusCreated, m)
}

// GetProgress returns the ordered measurement series a dashboard chart
// plots.
func (h *MeasurementHandler) GetProgress(c *gin.Context) {
	requested, _ := strconv.Atoi(c.Query("member_id"))
	memberID, ok := h.resolveMemberID(c, requested)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
        SELECT id, member_id, taken_on, weight_kg, body_fat_pct, chest_cm, waist_cm, hip_cm
        FROM measurements
        WHERE member_id = $1
        ORDER BY taken_on ASC
    `, memberID)
	if err != nil {
		log.Printf("Error fetching measurements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch measurements"})
		return
	}
	defer rows.Close()

	series := make([]models.MeasurementResponse, 0)
	for rows.Next() {
		var m models.MeasurementResponse
		var takenOn sql.NullTime
		if err := rows.Scan(&m.ID, &m.MemberID, &takenOn, &m.WeightKg, &m.BodyFatPct, &m.ChestCm, &m.WaistCm, &m.HipCm); err != nil {
			log.Printf("Error scanning measurement: %v", err)
			continue
		}
		if takenOn.Valid {
			m.TakenOn = takenOn.Time.Format("2006-01-02")
		}
		series = append(series, m)
	}

	c.JSON(http.StatusOK, series)
}

func (h *MeasurementHandler) CreateNutritionLog(c *gin.Context) {
	var req models.CreateNutritionLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, ok := h.resolveMemberID(c, req.MemberID)
	if !ok {
		return
	}

	// Upsert so a day can be corrected later
	_, err := h.db.Exec(`
        INSERT INTO nutrition_logs (member_id, day, compliant)
        VALUES ($1, $2, $3)
        ON CONFLICT (member_id, day) DO UPDATE SET compliant = EXCLUDED.compliant
    `, memberID, req.Day, *req.Compliant)

	if err != nil {
		log.Printf("Error saving nutrition log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save nutrition log"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Nutrition log saved"})
}
