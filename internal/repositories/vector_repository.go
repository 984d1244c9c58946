package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tralli/internal/models/db_models"
)

// VectorMatch is one ranked result of a namespaced similarity query.
type VectorMatch struct {
	ID       string
	Name     string
	Metadata map[string]any
	Score    float64
}

type IVectorRepository interface {
	Query(ctx context.Context, vector pgvector.Vector, topK int, namespace string) ([]VectorMatch, error)
	Upsert(ctx context.Context, rows []db_models.TravelVector) error
	ReplaceNamespace(ctx context.Context, namespace string, rows []db_models.TravelVector) error
}

type VectorRepository struct {
	db *gorm.DB
}

func NewVectorRepository(db *gorm.DB) IVectorRepository {
	return &VectorRepository{db: db}
}

type vectorQueryRow struct {
	db_models.TravelVector
	Similarity float64
}

// Query returns the topK nearest rows in namespace by cosine distance,
// best match first. Similarity is reported as 1 - distance.
func (r *VectorRepository) Query(ctx context.Context, vector pgvector.Vector, topK int, namespace string) ([]VectorMatch, error) {
	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> ?)) AS similarity
        FROM travel_vectors
        WHERE namespace = ?
        ORDER BY embedding <=> ?
        LIMIT ?
    `

	var rows []vectorQueryRow
	err := r.db.WithContext(ctx).Raw(query, vecStr, namespace, vecStr, topK).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	matches := make([]VectorMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, VectorMatch{
			ID:       row.ID,
			Name:     row.Name,
			Metadata: row.Metadata,
			Score:    row.Similarity,
		})
	}
	return matches, nil
}

func (r *VectorRepository) Upsert(ctx context.Context, rows []db_models.TravelVector) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}

// ReplaceNamespace atomically swaps the contents of one namespace, used by the
// ingestion path so re-indexing a (city, category) pair leaves no stale rows.
func (r *VectorRepository) ReplaceNamespace(ctx context.Context, namespace string, rows []db_models.TravelVector) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("namespace = ?", namespace).Delete(&db_models.TravelVector{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
