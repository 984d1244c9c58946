package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"tralli/internal/models/db_models"
	"tralli/internal/repositories"
	"tralli/internal/schema"
	"tralli/pkg/utils"
)

const ingestTimeout = 2 * time.Minute

type IngestServiceInterface interface {
	Ingest(ctx context.Context, city string, category schema.Category, records []map[string]any) (int, error)
	Append(ctx context.Context, city string, category schema.Category, records []map[string]any) (int, error)
}

// IngestService populates the vector index: it builds per-category embedding
// text for each record and embeds the batch. Ingest replaces the whole
// (city, category) namespace for full reindexing; Append upserts individual
// records into it. This is the offline write path; the query pipeline only
// ever reads.
type IngestService struct {
	embedder utils.EmbeddingClientInterface
	vectors  repositories.IVectorRepository
}

func NewIngestService(embedder utils.EmbeddingClientInterface, vectors repositories.IVectorRepository) IngestServiceInterface {
	return &IngestService{
		embedder: embedder,
		vectors:  vectors,
	}
}

// Ingest reindexes one (city, category) namespace from scratch. Rows get
// positional IDs; nothing from an earlier index survives.
func (s *IngestService) Ingest(ctx context.Context, city string, category schema.Category, records []map[string]any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, ingestTimeout)
	defer cancel()

	namespace, rows, err := s.prepareRows(ctx, city, category, records)
	if err != nil {
		return 0, err
	}
	for i := range rows {
		rows[i].ID = fmt.Sprintf("%s-%s-%d", rows[i].Tags[0], category, i)
	}

	if err := s.vectors.ReplaceNamespace(ctx, namespace, rows); err != nil {
		log.Printf("Replace error for namespace %s: %v", namespace, err)
		return 0, utils.ErrDatabaseError
	}
	return len(rows), nil
}

// Append upserts records into an existing namespace without touching the rest
// of it. Rows are keyed by their primary name so re-appending the same record
// updates in place instead of duplicating.
func (s *IngestService) Append(ctx context.Context, city string, category schema.Category, records []map[string]any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, ingestTimeout)
	defer cancel()

	namespace, rows, err := s.prepareRows(ctx, city, category, records)
	if err != nil {
		return 0, err
	}
	for i := range rows {
		rows[i].ID = nameID(rows[i].Tags[0], category, rows[i].Name)
	}

	if err := s.vectors.Upsert(ctx, rows); err != nil {
		log.Printf("Upsert error for namespace %s: %v", namespace, err)
		return 0, utils.ErrDatabaseError
	}
	return len(rows), nil
}

// prepareRows sanitizes, embeds and assembles rows for one batch. Row IDs are
// left for the caller; Tags[0] carries the normalized city.
func (s *IngestService) prepareRows(ctx context.Context, city string, category schema.Category, records []map[string]any) (string, []db_models.TravelVector, error) {
	if len(records) == 0 {
		return "", nil, utils.ErrInvalidIngestRequest
	}
	if s.embedder == nil {
		return "", nil, utils.ErrProviderUnavailable
	}

	cfg := schema.Config(category)
	namespace := cfg.NamespaceFor(city)
	city = strings.ToLower(strings.TrimSpace(city))

	texts := make([]string, 0, len(records))
	metas := make([]map[string]any, 0, len(records))
	for _, record := range records {
		meta := sanitizeMetadata(record)
		metas = append(metas, meta)
		texts = append(texts, BuildEmbeddingText(category, meta))
	}

	vectors, err := s.embedder.GetEmbeddings(ctx, texts)
	if err != nil {
		log.Printf("Embedding error during ingest for namespace %s: %v", namespace, err)
		return "", nil, utils.ErrProviderUnavailable
	}

	rows := make([]db_models.TravelVector, 0, len(metas))
	for i, meta := range metas {
		rows = append(rows, db_models.TravelVector{
			Namespace: namespace,
			Name:      primaryName(cfg, meta),
			Content:   texts[i],
			Metadata:  meta,
			Tags:      pq.StringArray{city, string(category)},
			Embedding: vectors[i],
		})
	}
	return namespace, rows, nil
}

func nameID(city string, category schema.Category, name string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	if slug == "" {
		slug = uuid.NewString()
	}
	return fmt.Sprintf("%s-%s-%s", city, category, slug)
}

// sanitizeMetadata drops nil values and nil list elements so stored metadata
// never carries JSON nulls.
func sanitizeMetadata(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		if v == nil {
			continue
		}
		if list, ok := v.([]any); ok {
			cleaned := make([]any, 0, len(list))
			for _, el := range list {
				if el != nil {
					cleaned = append(cleaned, el)
				}
			}
			out[k] = cleaned
			continue
		}
		out[k] = v
	}
	return out
}

func str(meta map[string]any, key string) string {
	v, _ := meta[key].(string)
	return v
}

// BuildEmbeddingText composes the text embedded for one record. Each category
// concatenates its most descriptive fields; unknown shapes fall back to a
// generic builder over common name keys.
func BuildEmbeddingText(category schema.Category, meta map[string]any) string {
	var text string
	switch category {
	case schema.CategoryFood:
		text = fmt.Sprintf("Food:%s Cat:%s Menu:%s Desc:%s",
			str(meta, "foodPlace"), str(meta, "category"), str(meta, "menuSpecial"), str(meta, "description"))
	case schema.CategoryPlace:
		text = fmt.Sprintf("Place:%s Cat:%s Desc:%s Story:%s",
			str(meta, "places"), str(meta, "category"), str(meta, "description"), str(meta, "story"))
	case schema.CategoryShop:
		text = fmt.Sprintf("Shop:%s FamousFor:%s Price:%s",
			str(meta, "shops"), str(meta, "famousFor"), str(meta, "priceRange"))
	case schema.CategoryTransport:
		text = fmt.Sprintf("Route from %s to %s Cab:%v Auto:%v Bike:%v",
			str(meta, "from"), str(meta, "to"), meta["cabPrice"], meta["autoPrice"], meta["bikePrice"])
	case schema.CategoryActivity:
		text = fmt.Sprintf("Activity:%s Places:%s Desc:%s",
			str(meta, "topActivities"), str(meta, "bestPlaces"), str(meta, "description"))
	case schema.CategoryHiddenGem:
		text = fmt.Sprintf("HiddenGem:%s Cat:%s Desc:%s",
			str(meta, "hiddenGem"), str(meta, "category"), str(meta, "description"))
	case schema.CategoryAccommodation:
		text = fmt.Sprintf("Stay:%s Cat:%s Rooms:%v Facilities:%v",
			str(meta, "hotels"), str(meta, "category"), meta["roomTypes"], meta["facilities"])
	case schema.CategoryConnectivity:
		text = fmt.Sprintf("Connect:%s Distance:%v Transport:%s",
			str(meta, "nearestAirportStationBusStand"), meta["distance"], str(meta, "majorFlightsTrainsBuses"))
	case schema.CategoryCityInfo:
		text = fmt.Sprintf("City:%s State:%s Climate:%s History:%s",
			str(meta, "cityName"), str(meta, "stateOrUT"), str(meta, "climateInfo"), str(meta, "cityHistory"))
	case schema.CategoryItinerary:
		text = fmt.Sprintf("Itinerary for %s Day1:%v Day2:%v Day3:%v",
			str(meta, "cityName"), meta["day1"], meta["day2"], meta["day3"])
	case schema.CategoryMisc:
		text = fmt.Sprintf("Info:%v Emergency:%v Hospital:%v",
			meta["localMap"], meta["emergencyContacts"], meta["hospital"])
	default:
		text = genericEmbeddingText(meta)
	}
	return truncate(text, 2048)
}

func genericEmbeddingText(meta map[string]any) string {
	keys := []string{"places", "hiddenGem", "foodPlace", "shops", "hotels", "topActivities", "from", "to", "description", "category"}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(str(meta, k)); v != "" {
			parts = append(parts, fmt.Sprintf("%s:%s", k, v))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " | ")
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return truncate(string(raw), 1000)
}

func primaryName(cfg schema.CategoryConfig, meta map[string]any) string {
	if cfg.Category == schema.CategoryTransport {
		return strings.TrimSpace(fmt.Sprintf("%s to %s", str(meta, "from"), str(meta, "to")))
	}
	return str(meta, cfg.NameField)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
