package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Intermediate document shapes: currency values are stored as Decimal128 so the
// running total can be bumped server-side with $inc, exactly and atomically.
type contributionDoc struct {
	ContributorName string               `bson:"contributor_name"`
	Amount          primitive.Decimal128 `bson:"amount"`
	Timestamp       time.Time            `bson:"timestamp"`
}

type registryItemDoc struct {
	ID            string               `bson:"id"`
	Name          string               `bson:"name"`
	Link          string               `bson:"link"`
	Total         primitive.Decimal128 `bson:"total"`
	Contributed   primitive.Decimal128 `bson:"contributed"`
	Contributions []contributionDoc    `bson:"contributions"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert %s to decimal128: %v", d, err)
	}
	return d128, nil
}

func fromDecimal128(d128 primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(d128.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to convert decimal128 %s: %v", d128, err)
	}
	return d, nil
}

func (doc *registryItemDoc) toItem() (*RegistryItem, error) {
	total, err := fromDecimal128(doc.Total)
	if err != nil {
		return nil, err
	}
	contributed, err := fromDecimal128(doc.Contributed)
	if err != nil {
		return nil, err
	}

	item := &RegistryItem{
		ID:            doc.ID,
		Name:          doc.Name,
		Link:          doc.Link,
		Total:         total,
		Contributed:   contributed,
		Contributions: make([]Contribution, 0, len(doc.Contributions)),
	}
	for _, c := range doc.Contributions {
		amount, err := fromDecimal128(c.Amount)
		if err != nil {
			return nil, err
		}
		item.Contributions = append(item.Contributions, Contribution{
			ContributorName: c.ContributorName,
			Amount:          amount,
			Timestamp:       c.Timestamp,
		})
	}
	return item, nil
}

func (mdb *MongodbRepo) ListItems(ctx context.Context) ([]RegistryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	col := mdb.GetCollection(RegistryColName)
	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, &StorageError{Op: "list registry items", Err: err}
	}
	defer cursor.Close(ctx)

	items := []RegistryItem{}
	for cursor.Next(ctx) {
		var doc registryItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, &StorageError{Op: "decode registry item", Err: err}
		}
		item, err := doc.toItem()
		if err != nil {
			return nil, &StorageError{Op: "decode registry item", Err: err}
		}
		items = append(items, *item)
	}
	if err := cursor.Err(); err != nil {
		return nil, &StorageError{Op: "list registry items", Err: err}
	}

	return items, nil
}

func (mdb *MongodbRepo) GetItem(ctx context.Context, id string) (*RegistryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	col := mdb.GetCollection(RegistryColName)
	var doc registryItemDoc
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "registry item", ID: id}
		}
		return nil, &StorageError{Op: "get registry item", Err: err}
	}

	item, err := doc.toItem()
	if err != nil {
		return nil, &StorageError{Op: "decode registry item", Err: err}
	}
	return item, nil
}

func (mdb *MongodbRepo) UpsertItem(ctx context.Context, item *RegistryItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total, err := toDecimal128(item.Total)
	if err != nil {
		return &StorageError{Op: "upsert registry item", Err: err}
	}
	zero, err := toDecimal128(decimal.Zero)
	if err != nil {
		return &StorageError{Op: "upsert registry item", Err: err}
	}

	col := mdb.GetCollection(RegistryColName)
	filter := bson.M{"id": item.ID}
	update := bson.M{
		"$set": bson.M{
			"name":  item.Name,
			"link":  item.Link,
			"total": total,
		},
		"$setOnInsert": bson.M{
			"contributed":   zero,
			"contributions": bson.A{},
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := col.UpdateOne(ctx, filter, update, opts); err != nil {
		return &StorageError{Op: "upsert registry item", Err: err}
	}
	return nil
}

func (mdb *MongodbRepo) AppendContribution(ctx context.Context, itemID string, c Contribution) (*RegistryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	amount, err := toDecimal128(c.Amount)
	if err != nil {
		return nil, &StorageError{Op: "append contribution", Err: err}
	}

	col := mdb.GetCollection(RegistryColName)
	filter := bson.M{"id": itemID}
	// $push and $inc land in one document update, so two concurrent
	// contributions to the same item can never drop each other's sum.
	update := bson.M{
		"$push": bson.M{
			"contributions": contributionDoc{
				ContributorName: c.ContributorName,
				Amount:          amount,
				Timestamp:       c.Timestamp,
			},
		},
		"$inc": bson.M{"contributed": amount},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc registryItemDoc
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "registry item", ID: itemID}
		}
		return nil, &StorageError{Op: "append contribution", Err: err}
	}

	item, err := doc.toItem()
	if err != nil {
		return nil, &StorageError{Op: "decode registry item", Err: err}
	}
	return item, nil
}
