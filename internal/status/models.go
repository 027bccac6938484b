package status

import (
	"time"

	"github.com/google/uuid"
)

// StatusCheck is an append-only ping log entry, unrelated to profiles.
type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// CreateRequest is the JSON body for recording a status check.
type CreateRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

func NewStatusCheck(clientName string) *StatusCheck {
	return &StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
}
