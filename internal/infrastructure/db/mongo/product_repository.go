package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prodmanage/catalog-api/internal/core/domain"
	"github.com/prodmanage/catalog-api/internal/core/ports"
)

const productsCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   primitive.DateTime `bson:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at,omitempty"`
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProduct{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		OwnerID:     p.OwnerID,
		CreatedAt:   primitive.NewDateTimeFromTime(p.CreatedAt),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert product: unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return productToDomain(doc), nil
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = *productToDomain(doc)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(ownerID, productID)
	if err != nil {
		return nil, err
	}

	var doc mongoProduct
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return productToDomain(doc), nil
}

// Update applies a full replace of the mutable fields and stamps updated_at,
// then reads the document back. The update and the read-back are two separate
// round trips; per-document atomicity of the $set is all the store guarantees.
func (r *ProductRepository) Update(ctx context.Context, ownerID, productID string, upd ports.ProductUpdate) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(ownerID, productID)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"name":        upd.Name,
		"description": upd.Description,
		"price":       upd.Price,
		"updated_at":  primitive.NewDateTimeFromTime(time.Now().UTC()),
	}})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}

	return r.FindByID(ctx, ownerID, productID)
}

// Delete reads the document and then removes it, returning the pre-deletion
// state. Lookup and delete are two round trips with no transaction.
func (r *ProductRepository) Delete(ctx context.Context, ownerID, productID string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	product, err := r.FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	filter, err := ownedFilter(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return product, nil
}

// EnsureIndexes creates the owner index used by every scoped query.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}

// ownedFilter builds the (id, owner) filter shared by all single-record
// operations. An id that is not a valid ObjectID cannot match any document,
// so it is reported as not found rather than as a server error.
func ownedFilter(ownerID, productID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	return bson.M{"_id": oid, "owner_id": ownerID}, nil
}

func productToDomain(mp mongoProduct) *domain.Product {
	return &domain.Product{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Description: mp.Description,
		Price:       mp.Price,
		OwnerID:     mp.OwnerID,
		CreatedAt:   asTime(mp.CreatedAt),
		UpdatedAt:   asTime(mp.UpdatedAt),
	}
}
