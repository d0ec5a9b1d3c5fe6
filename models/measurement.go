package models

type CreateMeasurementRequest struct {
	MemberID   int      `json:"member_id"`
	TakenOn    string   `json:"taken_on" binding:"required"`
	WeightKg   *float64 `json:"weight_kg"`
	BodyFatPct *float64 `json:"body_fat_pct"`
	ChestCm    *float64 `json:"chest_cm"`
	WaistCm    *float64 `json:"waist_cm"`
	HipCm      *float64 `json:"hip_cm"`
}

type MeasurementResponse struct {
	ID         int      `json:"id"`
	MemberID   int      `json:"member_id"`
	TakenOn    string   `json:"taken_on"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
	ChestCm    *float64 `json:"chest_cm,omitempty"`
	WaistCm    *float64 `json:"waist_cm,omitempty"`
	HipCm      *float64 `json:"hip_cm,omitempty"`
}

type CreateNutritionLogRequest struct {
	MemberID  int    `json:"member_id"`
	Day       string `json:"day" binding:"required"`
	Compliant *bool  `json:"compliant" binding:"required"`
}
