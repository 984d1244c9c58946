package queryfx

import (
	"go.uber.org/fx"
	"tralli/internal/api/controllers"
	"tralli/internal/repositories"
	"tralli/internal/services"
	"tralli/pkg/utils"
)

var Module = fx.Provide(
	ProvideCityService,
	ProvideClassifierService,
	ProvideQueryService,
	ProvideQueryController,
	ProvideCitiesController)

func ProvideCityService(
	gen utils.GenerationClientInterface,
	embedder utils.EmbeddingClientInterface,
	vectors repositories.IVectorRepository,
) services.CityServiceInterface {
	return services.NewCityService(gen, embedder, vectors)
}

func ProvideClassifierService(gen utils.GenerationClientInterface) services.ClassifierServiceInterface {
	return services.NewClassifierService(gen)
}

func ProvideQueryService(
	cities services.CityServiceInterface,
	classifier services.ClassifierServiceInterface,
) services.QueryServiceInterface {
	return services.NewQueryService(cities, classifier)
}

func ProvideQueryController(queryService services.QueryServiceInterface) *controllers.QueryController {
	return controllers.NewQueryController(queryService)
}

func ProvideCitiesController(cityService services.CityServiceInterface) *controllers.CitiesController {
	return controllers.NewCitiesController(cityService)
}
