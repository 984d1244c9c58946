package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tralli/internal/repositories"
	"tralli/internal/schema"
	mem "tralli/pkg/memcache"
	"tralli/pkg/utils"
)

// SupportedCities is the whitelist of cities this deployment has indexed
// data for. City resolution never returns a resolved value outside it.
var SupportedCities = []string{
	"rishikesh",
	"varanasi",
	"agra",
	"kolkata",
	"mahabaleshwar",
	"ayodhya",
}

const (
	resolveTimeout   = 10 * time.Second
	bundleCacheSize  = 8
	fuzzyAcceptScore = 2.5
)

// RetrieverBundle maps each category to a ready retriever for one city.
type RetrieverBundle map[schema.Category]*CategoryRetriever

type CityServiceInterface interface {
	ResolveCity(ctx context.Context, raw string) string
	IsSupported(city string) bool
	GetBundle(city string) RetrieverBundle
	ListSupportedCities() []string
}

// CityService resolves user-supplied city strings against the whitelist and
// owns the bounded cache of per-city retriever bundles.
type CityService struct {
	gen      utils.GenerationClientInterface
	embedder utils.EmbeddingClientInterface
	vectors  repositories.IVectorRepository
	bundles  *mem.BundleCache
}

func NewCityService(
	gen utils.GenerationClientInterface,
	embedder utils.EmbeddingClientInterface,
	vectors repositories.IVectorRepository,
) CityServiceInterface {
	return &CityService{
		gen:      gen,
		embedder: embedder,
		vectors:  vectors,
		bundles:  mem.NewBundleCache(bundleCacheSize),
	}
}

func (s *CityService) ListSupportedCities() []string {
	cities := make([]string, len(SupportedCities))
	copy(cities, SupportedCities)
	return cities
}

func (s *CityService) IsSupported(city string) bool {
	for _, c := range SupportedCities {
		if c == city {
			return true
		}
	}
	return false
}

// ResolveCity normalizes raw input toward a whitelist member: exact match
// first, then an LLM correction constrained to the whitelist, then a local
// fuzzy match. When nothing clears the bar the lowercased input is returned
// unchanged and the caller must treat it as unsupported.
func (s *CityService) ResolveCity(ctx context.Context, raw string) string {
	city := strings.ToLower(strings.TrimSpace(raw))
	if city == "" {
		return city
	}
	if s.IsSupported(city) {
		return city
	}

	if s.gen != nil {
		if corrected, ok := s.correctWithModel(ctx, raw); ok {
			return corrected
		}
	}

	if guess, ok := fuzzyCity(city, SupportedCities); ok {
		return guess
	}
	return city
}

func (s *CityService) correctWithModel(ctx context.Context, raw string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`You correct misspelled Indian city names. Pick the single closest match from this whitelist: %s.
Input: %s
Rules: respond with only the exact city string from the whitelist in lowercase. If none is close, respond with 'unknown'.`,
		strings.Join(SupportedCities, ", "), raw)

	answer, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("City resolution LLM error: %v", err)
		return "", false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if s.IsSupported(answer) {
		return answer, true
	}
	return "", false
}

// fuzzyCity scores each candidate by substring containment, shared prefix and
// character-set overlap; a candidate is accepted only above a fixed threshold.
// Good enough for short city names with no external dependency.
func fuzzyCity(input string, options []string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, option := range options {
		score := 0.0
		if strings.Contains(option, input) || strings.Contains(input, option) {
			score += 2
		}
		if strings.HasPrefix(option, input) || strings.HasPrefix(input, option) {
			score += 2
		}
		score += charOverlap(input, option)
		if score > bestScore {
			bestScore, best = score, option
		}
	}
	return best, bestScore >= fuzzyAcceptScore
}

func charOverlap(a, b string) float64 {
	setA := make(map[rune]struct{})
	for _, r := range a {
		setA[r] = struct{}{}
	}
	setB := make(map[rune]struct{})
	for _, r := range b {
		setB[r] = struct{}{}
	}
	if len(setB) == 0 {
		return 0
	}
	shared := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(setB))
}

// GetBundle returns the cached retriever bundle for city, constructing one
// retriever per category on a miss. Concurrent first-requests for the same
// city may both build; the cache keeps the last writer.
func (s *CityService) GetBundle(city string) RetrieverBundle {
	if cached, ok := s.bundles.Get(city); ok {
		if bundle, ok := cached.(RetrieverBundle); ok {
			return bundle
		}
	}

	bundle := make(RetrieverBundle, len(schema.AllCategories))
	for _, cat := range schema.AllCategories {
		bundle[cat] = NewCategoryRetriever(city, cat, s.embedder, s.vectors)
	}
	s.bundles.Set(city, bundle)
	return bundle
}
