package models

type CreatePackageRequest struct {
	MemberID     int    `json:"member_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	TotalLessons int    `json:"total_lessons" binding:"required,min=1"`
	PurchasedAt  string `json:"purchased_at"`
	ExpiresAt    string `json:"expires_at"`
}

type PackageResponse struct {
	ID           int    `json:"id"`
	MemberID     int    `json:"member_id"`
	Name         string `json:"name"`
	TotalLessons int    `json:"total_lessons"`
	UsedLessons  int    `json:"used_lessons"`
	Remaining    int    `json:"remaining"`
	PurchasedAt  string `json:"purchased_at"`
	ExpiresAt    string `json:"expires_at,omitempty"`
}
