package handlers

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"fitcoach_backend/config"
	"fitcoach_backend/mailer"
	"fitcoach_backend/middleware"
	"fitcoach_backend/models"
	"fitcoach_backend/push"
	"fitcoach_backend/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	db     *sql.DB
	cfg    *config.Config
	roles  models.RoleLookup
	pushes *push.Service
	mail   mailer.Sender
	client *http.Client
}

func NewReportHandler(db *sql.DB, cfg *config.Config, roles models.RoleLookup, pushes *push.Service, mail mailer.Sender) *ReportHandler {
	return &ReportHandler{
		db:     db,
		cfg:    cfg,
		roles:  roles,
		pushes: pushes,
		mail:   mail,
		// No timeout on purpose: the trigger call blocks until the job
		// answers and the admin retries manually on failure.
		client: &http.Client{},
	}
}

// TriggerReport lets the trainer kick off the weekly report outside its
// schedule. It authenticates the caller, then relays the job's status code
// and body verbatim.
func (h *ReportHandler) TriggerReport(c *gin.Context) {
	userID := c.GetInt("userID")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	role, err := h.roles.RoleOf(userID)
	if err != nil {
		log.Printf("Error resolving role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve role"})
		return
	}
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	req, err := http.NewRequest(http.MethodGet, h.cfg.ReportJobURL, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	req.Header.Set("Authorization", "Bearer "+h.cfg.CronSecret)

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("Report job call failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(resp.StatusCode, "application/json", body)
}

// RunWeeklyReport is the scheduled job target. The external cron hits it
// every Sunday evening with the shared bearer secret; the trigger endpoint
// calls it the same way.
func (h *ReportHandler) RunWeeklyReport(c *gin.Context) {
	authz := c.GetHeader("Authorization")
	secret := strings.TrimPrefix(authz, "Bearer ")
	if h.cfg.CronSecret == "" || authz == secret || !middleware.SecureCompare(secret, h.cfg.CronSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	week := report.WeekFor(time.Now())
	runID := uuid.NewString()

	memberIDs, err := h.activeMemberIDs()
	if err != nil {
		log.Printf("Error loading members for report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load members"})
		return
	}

	generated := 0
	var notified []int
	for _, memberID := range memberIDs {
		msg, err := h.buildMemberReport(memberID, week)
		if err != nil {
			log.Printf("Error building report for member %d: %v", memberID, err)
			continue
		}

		_, err = h.db.Exec(`
            INSERT INTO notifications (user_id, run_id, title, message, url)
            VALUES ($1, $2, $3, $4, $5)
        `, memberID, runID, "Your weekly report", msg, "/member/report")
		if err != nil {
			log.Printf("Error storing notification for member %d: %v", memberID, err)
			continue
		}

		generated++
		notified = append(notified, memberID)
	}

	// Push and email are side effects of the report run; their failures
	// stay out of the response.
	if len(notified) > 0 {
		if _, _, err := h.pushes.SendToUsers(notified, "Your weekly report", "Your weekly training report is ready.", "/member/report"); err != nil {
			log.Printf("Report push fan-out failed: %v", err)
		}
	}
	if h.cfg.AdminEmail != "" {
		summary := fmt.Sprintf(
			"<p>Weekly report run %s finished.</p><p>Week %s to %s: %d of %d member reports generated.</p>",
			runID, week.StartDate(), week.EndDate(), generated, len(memberIDs),
		)
		if err := h.mail.Send(h.cfg.AdminEmail, "Weekly report summary", summary); err != nil {
			log.Printf("Report summary email failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"generated":  generated,
		"total":      len(memberIDs),
		"week_start": week.StartDate(),
		"week_end":   week.EndDate(),
		"run_id":     runID,
	})
}

func (h *ReportHandler) activeMemberIDs() ([]int, error) {
	rows, err := h.db.Query(`
        SELECT u.id
        FROM users u
        JOIN user_roles ur ON ur.user_id = u.id
        JOIN roles r ON r.id = ur.role_id
        WHERE r.role = 'Member' AND u.active
        ORDER BY u.id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (h *ReportHandler) buildMemberReport(memberID int, week report.WeekRange) (string, error) {
	var lessons int
	err := h.db.QueryRow(`
        SELECT COUNT(*) FROM lessons
        WHERE member_id = $1 AND occurred_at >= $2 AND occurred_at < $3
    `, memberID, week.Start, week.EndExclusive()).Scan(&lessons)
	if err != nil {
		return "", fmt.Errorf("counting lessons: %w", err)
	}

	// Mondays of every week the member trained in, for the streak walk.
	// date_trunc('week', ...) is Monday-based in Postgres.
	rows, err := h.db.Query(`
        SELECT DISTINCT date_trunc('week', occurred_at)::date
        FROM lessons
        WHERE member_id = $1 AND occurred_at < $2
    `, memberID, week.EndExclusive())
	if err != nil {
		return "", fmt.Errorf("loading active weeks: %w", err)
	}
	defer rows.Close()

	var activeWeeks []time.Time
	for rows.Next() {
		var ws time.Time
		if err := rows.Scan(&ws); err != nil {
			return "", err
		}
		activeWeeks = append(activeWeeks, ws)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	streak := report.ConsecutiveWeeks(activeWeeks, week.Start)

	var compliantDays, trackedDays int
	err = h.db.QueryRow(`
        SELECT COUNT(*) FILTER (WHERE compliant), COUNT(*)
        FROM nutrition_logs
        WHERE member_id = $1 AND day >= $2 AND day <= $3
    `, memberID, week.Start, week.End).Scan(&compliantDays, &trackedDays)
	if err != nil {
		return "", fmt.Errorf("loading nutrition logs: %w", err)
	}

	var nutrition *int
	if trackedDays > 0 {
		pct := compliantDays * 100 / trackedDays
		nutrition = &pct
	}

	return report.Message(lessons, streak, nutrition), nil
}

// ListNotifications returns the logged-in user's stored report
// notifications, newest first.
func (h *ReportHandler) ListNotifications(c *gin.Context) {
	userID := c.GetInt("userID")

	rows, err := h.db.Query(`
        SELECT id, title, message, COALESCE(url, ''), created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 50
    `, userID)
	if err != nil {
		log.Printf("Error fetching notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	defer rows.Close()

	notifications := make([]models.NotificationResponse, 0)
	for rows.Next() {
		var n models.NotificationResponse
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.URL, &n.CreatedAt); err != nil {
			log.Printf("Error scanning notification: %v", err)
			continue
		}
		notifications = append(notifications, n)
	}

	c.JSON(http.StatusOK, notifications)
}
