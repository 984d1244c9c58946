package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tralli/internal/schema"
	"tralli/pkg/utils"
)

const classifyTimeout = 15 * time.Second

type ClassifierServiceInterface interface {
	Classify(ctx context.Context, query string) schema.Category
}

// ClassifierService maps a free-form travel query onto one category label via
// a single best-effort generation call. Any failure, including a missing
// client, yields the default category; classification is never fatal.
type ClassifierService struct {
	gen utils.GenerationClientInterface
}

func NewClassifierService(gen utils.GenerationClientInterface) ClassifierServiceInterface {
	return &ClassifierService{gen: gen}
}

func (s *ClassifierService) Classify(ctx context.Context, query string) schema.Category {
	if s.gen == nil {
		return schema.DefaultCategory
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	answer, err := s.gen.GenerateText(ctx, classificationPrompt(query))
	if err != nil {
		log.Printf("Classifier generation error: %v", err)
		return schema.DefaultCategory
	}

	return ParseCategoryLabel(answer)
}

// ParseCategoryLabel returns the first category whose label appears in the
// lowercased model response, in enumeration order. Garbage and empty
// responses fall through to the default category.
func ParseCategoryLabel(answer string) schema.Category {
	lowered := strings.ToLower(answer)
	for _, cat := range schema.AllCategories {
		if strings.Contains(lowered, string(cat)) {
			return cat
		}
	}
	return schema.DefaultCategory
}

var classifierExamples = map[schema.Category][2]string{
	schema.CategoryPlace:         {"What are the best temples in Varanasi?", "Top 10 ghats I can visit?"},
	schema.CategoryFood:          {"Where should I eat local street food?", "Best lassi near the ghats?"},
	schema.CategoryShop:          {"What can I buy from the local markets?", "Where to get Banarasi sarees?"},
	schema.CategoryTransport:     {"How much is an auto from the station to Assi Ghat?", "How do I get around the city?"},
	schema.CategoryAccommodation: {"Good budget hotels near the river?", "Hostels for backpackers?"},
	schema.CategoryActivity:      {"What activities can I do in the evening?", "Where can I take a boat ride?"},
	schema.CategoryHiddenGem:     {"Any offbeat spots tourists usually miss?", "Lesser known places locals love?"},
	schema.CategoryItinerary:     {"Plan my 3 day trip", "What should I do on day 2?"},
	schema.CategoryNearbySpot:    {"Day trips near the city?", "What can I see within 50 km?"},
	schema.CategoryCityInfo:      {"What is the best time to visit?", "Tell me about the city's history"},
	schema.CategoryConnectivity:  {"Which is the nearest airport?", "Are there direct trains from Delhi?"},
	schema.CategoryMisc:          {"Nearest police station?", "Where can I find a hospital?"},
}

func classificationPrompt(query string) string {
	var b strings.Builder
	b.WriteString("You are a travel assistant that classifies queries into exactly one of the following categories:\n")
	for _, cat := range schema.AllCategories {
		fmt.Fprintf(&b, "- %s: %s\n", cat, schema.Config(cat).Role)
	}

	b.WriteString("\n### Examples ###\n")
	for _, cat := range schema.AllCategories {
		examples := classifierExamples[cat]
		for _, q := range examples {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", q, cat)
		}
	}

	b.WriteString("Respond with only the category label.\n\nQ: ")
	b.WriteString(query)
	b.WriteString("\nA:")
	return b.String()
}
