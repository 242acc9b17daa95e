package domain

import "time"

// DateLayout is the wire and storage format for calendar days.
// Transactions carry a calendar day with no time component.
const DateLayout = "2006-01-02"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
