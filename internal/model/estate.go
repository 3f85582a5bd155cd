package model

import (
	"time"

	"github.com/google/uuid"
)

// Estate is a property listing. Prices are stored in cents to keep the
// column integral; ImageURL points into the object store.
type Estate struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	ImageURL      string    `json:"image_url"`
	Description   string    `json:"description"`
	PriceInCents  int64     `json:"price_in_cents"`
	SpaceInMeters int32     `json:"space_in_meters"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
