package model

import "time"

// ShareRecord is one completed share operation as kept in local history.
type ShareRecord struct {
	ID              string    `json:"id" db:"id"`
	Subject         string    `json:"subject" db:"subject"`
	Target          string    `json:"target" db:"target"`
	Recipient       string    `json:"recipient" db:"recipient"`
	LinkCount       int       `json:"link_count" db:"link_count"`
	AttachmentCount int       `json:"attachment_count" db:"attachment_count"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
