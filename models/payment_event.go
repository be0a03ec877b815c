package models

import "time"

type SubjectKind string

const (
	SubjectOrder SubjectKind = "order"
	SubjectPlan  SubjectKind = "plan"
)

// PaymentEvent records a processed gateway transaction. Reference is unique, so a
// replayed callback cannot be applied twice.
type PaymentEvent struct {
	Reference   string      `gorm:"primaryKey;size:128" json:"reference"`
	SubjectKind SubjectKind `gorm:"type:VARCHAR(10);index:idx_payment_subject" json:"subjectKind"`
	SubjectID   uint        `gorm:"index:idx_payment_subject" json:"subjectId"`
	Status      string      `gorm:"size:20" json:"status"`
	ProcessedAt time.Time   `json:"processedAt"`
}
