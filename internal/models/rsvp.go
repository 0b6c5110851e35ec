package models

import (
	"context"
	"time"
)

type RSVP struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" validate:"required"`
	Pax       int       `bson:"pax" json:"pax" validate:"required,gt=0"`
	Wishes    string    `bson:"wishes" json:"wishes"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type RSVPRepo interface {
	InsertRSVP(ctx context.Context, rsvp *RSVP) error
	ListRSVPs(ctx context.Context) ([]RSVP, error)
}
