package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tralli/internal/schema"
	"tralli/pkg/utils"
)

func TestIngestReplacesNamespace(t *testing.T) {
	repo := &fakeVectorRepo{}
	s := NewIngestService(&fakeEmbedder{}, repo)

	records := []map[string]any{
		{"foodPlace": "Blue Lassi", "category": "Desserts", "description": "fruit lassi", "phone": nil},
		{"foodPlace": "Kashi Chat Bhandar", "category": "Street Food", "description": "tamatar chaat"},
	}

	count, err := s.Ingest(context.Background(), "Varanasi", schema.CategoryFood, records)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "Food-Varanasi", repo.replacedNamespace)
	require.Len(t, repo.replacedRows, 2)

	first := repo.replacedRows[0]
	assert.Equal(t, "varanasi-food-0", first.ID)
	assert.Equal(t, "Food-Varanasi", first.Namespace)
	assert.Equal(t, "Blue Lassi", first.Name)
	assert.Equal(t, []string{"varanasi", "food"}, []string(first.Tags))
	assert.NotContains(t, first.Metadata, "phone")
	assert.Equal(t, "varanasi-food-1", repo.replacedRows[1].ID)
}

func TestAppendUpsertsWithoutReplacing(t *testing.T) {
	repo := &fakeVectorRepo{}
	s := NewIngestService(&fakeEmbedder{}, repo)

	count, err := s.Append(context.Background(), "Varanasi", schema.CategoryFood, []map[string]any{
		{"foodPlace": "Blue Lassi", "category": "Desserts"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	// nothing replaced, the rest of the namespace stays
	assert.Empty(t, repo.replacedNamespace)
	require.Len(t, repo.upsertedRows, 1)

	row := repo.upsertedRows[0]
	assert.Equal(t, "varanasi-food-blue-lassi", row.ID)
	assert.Equal(t, "Food-Varanasi", row.Namespace)
	assert.Equal(t, "Blue Lassi", row.Name)
}

func TestAppendErrorsMatchIngest(t *testing.T) {
	s := NewIngestService(&fakeEmbedder{}, &fakeVectorRepo{})
	_, err := s.Append(context.Background(), "varanasi", schema.CategoryFood, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidIngestRequest)

	s = NewIngestService(nil, &fakeVectorRepo{})
	_, err = s.Append(context.Background(), "varanasi", schema.CategoryFood, []map[string]any{{"foodPlace": "x"}})
	assert.ErrorIs(t, err, utils.ErrProviderUnavailable)

	s = NewIngestService(&fakeEmbedder{}, &fakeVectorRepo{err: errors.New("connection refused")})
	_, err = s.Append(context.Background(), "varanasi", schema.CategoryFood, []map[string]any{{"foodPlace": "x"}})
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestIngestRejectsEmptyBatch(t *testing.T) {
	s := NewIngestService(&fakeEmbedder{}, &fakeVectorRepo{})

	_, err := s.Ingest(context.Background(), "varanasi", schema.CategoryFood, nil)

	assert.ErrorIs(t, err, utils.ErrInvalidIngestRequest)
}

func TestIngestWithoutEmbedder(t *testing.T) {
	s := NewIngestService(nil, &fakeVectorRepo{})

	_, err := s.Ingest(context.Background(), "varanasi", schema.CategoryFood, []map[string]any{{"foodPlace": "x"}})

	assert.ErrorIs(t, err, utils.ErrProviderUnavailable)
}

func TestIngestEmbeddingFailure(t *testing.T) {
	s := NewIngestService(&fakeEmbedder{err: errors.New("quota exceeded")}, &fakeVectorRepo{})

	_, err := s.Ingest(context.Background(), "varanasi", schema.CategoryFood, []map[string]any{{"foodPlace": "x"}})

	assert.ErrorIs(t, err, utils.ErrProviderUnavailable)
}

func TestIngestStoreFailure(t *testing.T) {
	s := NewIngestService(&fakeEmbedder{}, &fakeVectorRepo{err: errors.New("connection refused")})

	_, err := s.Ingest(context.Background(), "varanasi", schema.CategoryFood, []map[string]any{{"foodPlace": "x"}})

	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestSanitizeMetadataDropsNils(t *testing.T) {
	meta := sanitizeMetadata(map[string]any{
		"foodPlace": "Blue Lassi",
		"phone":     nil,
		"images":    []any{"a.jpg", nil, "b.jpg"},
	})

	assert.Equal(t, map[string]any{
		"foodPlace": "Blue Lassi",
		"images":    []any{"a.jpg", "b.jpg"},
	}, meta)
}

func TestBuildEmbeddingText(t *testing.T) {
	food := BuildEmbeddingText(schema.CategoryFood, map[string]any{
		"foodPlace": "Blue Lassi", "category": "Desserts", "menuSpecial": "malai lassi", "description": "old town classic",
	})
	assert.Equal(t, "Food:Blue Lassi Cat:Desserts Menu:malai lassi Desc:old town classic", food)

	transport := BuildEmbeddingText(schema.CategoryTransport, map[string]any{
		"from": "Cantt Station", "to": "Assi Ghat", "cabPrice": 300, "autoPrice": 150, "bikePrice": 80,
	})
	assert.Equal(t, "Route from Cantt Station to Assi Ghat Cab:300 Auto:150 Bike:80", transport)
}

func TestIngestTransportRowName(t *testing.T) {
	repo := &fakeVectorRepo{}
	s := NewIngestService(&fakeEmbedder{}, repo)

	_, err := s.Ingest(context.Background(), "varanasi", schema.CategoryTransport, []map[string]any{
		{"from": "Cantt Station", "to": "Assi Ghat", "autoPrice": 150},
	})

	require.NoError(t, err)
	require.Len(t, repo.replacedRows, 1)
	assert.Equal(t, "Cantt Station to Assi Ghat", repo.replacedRows[0].Name)
	assert.Equal(t, "Transport-Varanasi", repo.replacedNamespace)
}
