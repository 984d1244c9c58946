package services

import (
	"context"

	"tralli/internal/models/response_models"
	"tralli/internal/schema"
	"tralli/pkg/utils"
)

type QueryServiceInterface interface {
	Handle(ctx context.Context, cityText, queryText string, filters SecondaryFilters) (response_models.QueryResult, error)
}

// QueryService runs one request through the fixed pipeline:
// resolve city -> classify -> select retriever -> retrieve -> respond.
// City resolution is the only step allowed to reject a request; everything
// downstream degrades to an empty result list.
type QueryService struct {
	cities     CityServiceInterface
	classifier ClassifierServiceInterface
}

func NewQueryService(cities CityServiceInterface, classifier ClassifierServiceInterface) QueryServiceInterface {
	return &QueryService{
		cities:     cities,
		classifier: classifier,
	}
}

func (s *QueryService) Handle(ctx context.Context, cityText, queryText string, filters SecondaryFilters) (response_models.QueryResult, error) {
	city := s.cities.ResolveCity(ctx, cityText)
	if !s.cities.IsSupported(city) {
		return response_models.QueryResult{}, utils.ErrUnsupportedCity
	}

	category := s.classifier.Classify(ctx, queryText)

	bundle := s.cities.GetBundle(city)
	retriever, ok := bundle[category]
	if !ok || retriever == nil {
		retriever = bundle[schema.DefaultCategory]
	}

	results := []schema.Record{}
	if retriever != nil {
		results = retriever.Retrieve(ctx, queryText, filters)
	}

	return response_models.QueryResult{
		Category: category,
		Results:  results,
	}, nil
}
