package entity

import "github.com/google/uuid"

type Room struct {
	Base
	OwnerID   uuid.UUID `db:"owner_id"`
	Title     string    `db:"title"`
	District  string    `db:"district"`
	Price     float64   `db:"price"` // FCFA per month
	Available bool      `db:"available"`
}
