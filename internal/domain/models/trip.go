package models

// Trip is a named cluster of travel steps. It is only ever created by the
// grouping logic, never directly by a user, and its name and date range are
// recomputed from full membership whenever membership changes.
type Trip struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD, min over member starts
	EndDate    string `json:"end_date"`   // YYYY-MM-DD, max over member end-or-start
	ShareToken string `json:"share_token,omitempty"`
	IsPublic   bool   `json:"is_public"`
	CreatedAt  string `json:"created_at,omitempty"`
}
