package entities

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord remembers the response produced for a client supplied key.
type IdempotencyRecord struct {
	Id         uuid.UUID `json:"id"`
	Key        string    `json:"key"`
	Request    string    `json:"request"`
	Response   string    `json:"response"`
	StatusCode int       `json:"status_code"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewIdempotencyRecord(key, request string) *IdempotencyRecord {
	return &IdempotencyRecord{
		Id:        uuid.New(),
		Key:       key,
		Request:   request,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *IdempotencyRecord) SetResponse(response string, statusCode int) {
	r.Response = response
	r.StatusCode = statusCode
}

// Pending reports whether the key is reserved but no response is stored yet.
func (r *IdempotencyRecord) Pending() bool {
	return r.StatusCode == 0
}
