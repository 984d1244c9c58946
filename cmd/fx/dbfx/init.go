package dbfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tralli/internal/infra"
	"tralli/internal/repositories"
)

var Module = fx.Provide(
	infra.InitPostgresql,
	provideVectorRepo)

func provideVectorRepo(db *gorm.DB) repositories.IVectorRepository {
	return repositories.NewVectorRepository(db)
}
