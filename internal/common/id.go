package common

import (
	"github.com/google/uuid"
)

// NewTitleID generates a manual title ID. Format: title_<uuid>
func NewTitleID() string {
	return "title_" + uuid.New().String()
}

// NewRequestID generates a generation request ID. Format: req_<uuid>
func NewRequestID() string {
	return "req_" + uuid.New().String()
}

// NewArticleID generates an article ID. Format: art_<uuid>
func NewArticleID() string {
	return "art_" + uuid.New().String()
}
