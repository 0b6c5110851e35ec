package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func (mdb *MongodbRepo) InsertRSVP(ctx context.Context, rsvp *RSVP) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	col := mdb.GetCollection(RSVPColName)
	if _, err := col.InsertOne(ctx, rsvp); err != nil {
		return &StorageError{Op: "insert rsvp", Err: err}
	}
	return nil
}

func (mdb *MongodbRepo) ListRSVPs(ctx context.Context) ([]RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	col := mdb.GetCollection(RSVPColName)
	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, &StorageError{Op: "list rsvps", Err: err}
	}
	defer cursor.Close(ctx)

	rsvps := []RSVP{}
	for cursor.Next(ctx) {
		var rsvp RSVP
		if err := cursor.Decode(&rsvp); err != nil {
			return nil, &StorageError{Op: "decode rsvp", Err: err}
		}
		rsvps = append(rsvps, rsvp)
	}
	if err := cursor.Err(); err != nil {
		return nil, &StorageError{Op: "list rsvps", Err: err}
	}

	return rsvps, nil
}
