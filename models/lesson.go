package models

import "time"

type CreateLessonRequest struct {
	PackageID  int    `json:"package_id" binding:"required"`
	OccurredAt string `json:"occurred_at"`
	Notes      string `json:"notes"`
}

type LessonResponse struct {
	ID         int       `json:"id"`
	PackageID  int       `json:"package_id"`
	MemberID   int       `json:"member_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Notes      string    `json:"notes,omitempty"`
}
