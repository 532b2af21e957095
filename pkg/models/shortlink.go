package models

import "time"

// ShortLink maps a server-generated redirect code to an application deep
// link. The admin surface only lists, deletes, and test-resolves them.
type ShortLink struct {
	Code      string    `json:"code"`
	Target    string    `json:"target"`
	CreatedBy string    `json:"created_by,omitempty"`
	Hits      int64     `json:"hits"`
	CreatedAt time.Time `json:"created_at"`
}
