package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// JSONMap stores heterogeneous record metadata in a jsonb column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// TravelVector is one curated travel record in the vector index: one embedding
// plus the record's metadata, partitioned by namespace. A query scoped to a
// namespace can only return rows inserted under that namespace.
type TravelVector struct {
	ID        string          `gorm:"primaryKey;column:id"`
	Namespace string          `gorm:"index;not null"`
	Name      string
	Content   string
	Metadata  JSONMap         `gorm:"type:jsonb"`
	Tags      pq.StringArray  `gorm:"type:text[]"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (TravelVector) TableName() string {
	return "travel_vectors"
}
