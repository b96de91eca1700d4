package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prodmanage/catalog-api/internal/core/domain"
)

func TestProductTimestamps_SubSecondEditStaysOrdered(t *testing.T) {
	// An edit landing in the same wall-clock second as creation must still
	// round-trip as strictly later.
	created := time.Date(2026, 1, 1, 12, 0, 0, 400_000_000, time.UTC)
	edited := created.Add(500 * time.Millisecond)

	doc := mongoProduct{
		ID:        primitive.NewObjectID(),
		Name:      "Widget",
		OwnerID:   "user_1",
		CreatedAt: primitive.NewDateTimeFromTime(created),
		UpdatedAt: primitive.NewDateTimeFromTime(edited),
	}

	p := productToDomain(doc)
	if !p.UpdatedAt.After(p.CreatedAt) {
		t.Fatalf("updated_at (%v) is not strictly after created_at (%v)", p.UpdatedAt, p.CreatedAt)
	}
	if !p.CreatedAt.Equal(created) {
		t.Fatalf("created_at lost precision: stored %v, got %v", created, p.CreatedAt)
	}
}

func TestProductTimestamps_UpdatedAtAbsentUntilFirstEdit(t *testing.T) {
	doc := mongoProduct{
		ID:        primitive.NewObjectID(),
		Name:      "Widget",
		OwnerID:   "user_1",
		CreatedAt: primitive.NewDateTimeFromTime(time.Now().UTC()),
	}

	p := productToDomain(doc)
	if !p.UpdatedAt.IsZero() {
		t.Fatalf("expected zero updated_at for a never-edited product, got %v", p.UpdatedAt)
	}
}

func TestOwnedFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	filter, err := ownedFilter("user_1", oid.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter["_id"] != oid || filter["owner_id"] != "user_1" {
		t.Fatalf("unexpected filter: %+v", filter)
	}

	// A non-ObjectID path param cannot match any document.
	if _, err := ownedFilter("user_1", "not-a-hex-id"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
