package models

import "github.com/google/uuid"

// Course is a catalog course that offerings are created from.
type Course struct {
	ID    uuid.UUID `json:"id"`
	Code  string    `json:"code"`
	Title string    `json:"title"`
	Units int       `json:"units"`
}
