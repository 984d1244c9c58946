package ingestfx

import (
	"go.uber.org/fx"
	"tralli/internal/api/controllers"
	"tralli/internal/repositories"
	"tralli/internal/services"
	"tralli/pkg/utils"
)

var Module = fx.Provide(
	ProvideIngestService,
	ProvideAdminController)

func ProvideIngestService(
	embedder utils.EmbeddingClientInterface,
	vectors repositories.IVectorRepository,
) services.IngestServiceInterface {
	return services.NewIngestService(embedder, vectors)
}

func ProvideAdminController(ingestService services.IngestServiceInterface) *controllers.AdminController {
	return controllers.NewAdminController(ingestService)
}
