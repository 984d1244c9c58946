package services

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"tralli/internal/repositories"
	"tralli/internal/schema"
	"tralli/pkg/utils"
)

// TopK is the fixed result count per retrieval. Callers may not override it;
// two records keep the LLM context and response size bounded.
const TopK = 2

// overFetchFactor governs how many extra candidates are pulled from the
// vector store when secondary filters are present, since filtering can only
// shrink the candidate set.
const overFetchFactor = 5

const retrieveTimeout = 20 * time.Second

// SecondaryFilters are soft post-retrieval predicates over metadata fields.
// They bias results but never empty them: when fewer than TopK candidates
// pass, retrieval falls back to the unfiltered similarity ranking.
type SecondaryFilters struct {
	Category  string
	MinRating float64
}

func (f SecondaryFilters) isEmpty() bool {
	return f.Category == "" && f.MinRating == 0
}

// CategoryRetriever answers queries for one (city, category) pair:
// embed the query, search the pair's namespace, apply soft filters,
// canonicalize, truncate to TopK.
type CategoryRetriever struct {
	config    schema.CategoryConfig
	namespace string
	embedder  utils.EmbeddingClientInterface
	vectors   repositories.IVectorRepository
}

func NewCategoryRetriever(
	city string,
	category schema.Category,
	embedder utils.EmbeddingClientInterface,
	vectors repositories.IVectorRepository,
) *CategoryRetriever {
	cfg := schema.Config(category)
	return &CategoryRetriever{
		config:    cfg,
		namespace: cfg.NamespaceFor(city),
		embedder:  embedder,
		vectors:   vectors,
	}
}

func (r *CategoryRetriever) Category() schema.Category {
	return r.config.Category
}

func (r *CategoryRetriever) Namespace() string {
	return r.namespace
}

// Retrieve never fails: embedding or vector-store errors degrade to an empty
// result list so one broken category cannot abort the request pipeline.
func (r *CategoryRetriever) Retrieve(ctx context.Context, query string, filters SecondaryFilters) []schema.Record {
	if r.embedder == nil || r.vectors == nil {
		return []schema.Record{}
	}

	ctx, cancel := context.WithTimeout(ctx, retrieveTimeout)
	defer cancel()

	vector, err := r.embedder.GetEmbedding(ctx, query)
	if err != nil {
		log.Printf("Embedding error for namespace %s: %v", r.namespace, err)
		return []schema.Record{}
	}

	fetch := TopK
	if !filters.isEmpty() {
		fetch = TopK * overFetchFactor
	}

	matches, err := r.vectors.Query(ctx, vector, fetch, r.namespace)
	if err != nil {
		log.Printf("Vector query error for namespace %s: %v", r.namespace, err)
		return []schema.Record{}
	}

	picked := matches
	if !filters.isEmpty() {
		filtered := make([]repositories.VectorMatch, 0, TopK)
		for _, m := range matches {
			if !r.matchesFilters(m.Metadata, filters) {
				continue
			}
			filtered = append(filtered, m)
			if len(filtered) >= TopK {
				break
			}
		}
		if len(filtered) >= TopK {
			picked = filtered
		}
	}

	if len(picked) > TopK {
		picked = picked[:TopK]
	}

	records := make([]schema.Record, 0, len(picked))
	for _, m := range picked {
		records = append(records, schema.Canonicalize(m.Metadata))
	}
	return records
}

func (r *CategoryRetriever) matchesFilters(meta map[string]any, filters SecondaryFilters) bool {
	if filters.Category != "" {
		value, _ := meta["category"].(string)
		if !strings.Contains(strings.ToLower(value), strings.ToLower(filters.Category)) {
			return false
		}
	}
	if filters.MinRating > 0 && r.config.RatingField != "" {
		if toFloat(meta[r.config.RatingField]) < filters.MinRating {
			return false
		}
	}
	return true
}

func toFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
