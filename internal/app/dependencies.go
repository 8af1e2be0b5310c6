package app

import (
	"github.com/agroplan/agroplan/internal/config"
	"github.com/agroplan/agroplan/internal/utils"
	"github.com/agroplan/agroplan/pkg/crop"
	"github.com/agroplan/agroplan/pkg/google"
	"github.com/agroplan/agroplan/pkg/planting"
	"github.com/agroplan/agroplan/pkg/product"
	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/agroplan/agroplan/pkg/recipe"
	"github.com/agroplan/agroplan/pkg/supply"
	"github.com/agroplan/agroplan/pkg/weekly_plan"
	"github.com/agroplan/agroplan/pkg/zone"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	CropRepo       crop.CropRepo
	CropService    crop.CropService
	CropHandler    *crop.CropHandler
	VarietyRepo    crop.VarietyRepo
	VarietyService crop.VarietyService
	VarietyHandler *crop.VarietyHandler

	RanchRepo    ranch.Repo
	RanchHandler *ranch.Handler

	ProductRepo    product.Repo
	ProductHandler *product.Handler

	PlantingRepo    planting.Repo
	PlantingService planting.Service
	PlantingHandler *planting.Handler

	RecipeRepo    recipe.Repo
	RecipeService recipe.Service
	RecipeHandler *recipe.Handler

	ZoneResolver zone.Resolver

	SupplyService supply.Service
	CsvRenderer   supply.Renderer
	XlsxRenderer  *supply.XlsxRendererImpl
	SupplyHandler *supply.Handler

	WeeklyPlanService weekly_plan.Service
	WeeklyPlanHandler *weekly_plan.Handler

	GoogleAuth     *google.GoogleAuth
	SheetsExporter google.SheetsExporter
	GoogleHandler  *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	strategy, err := recipe.StrategyByName(cfg.Supply.SelectionStrategy)
	if err != nil {
		return nil, err
	}

	deps.CropRepo = crop.NewCropRepo(db)
	deps.CropService = crop.NewCropService(deps.CropRepo)
	deps.CropHandler = crop.NewCropHandler(deps.CropService)
	deps.VarietyRepo = crop.NewVarietyRepo(db)
	deps.VarietyService = crop.NewVarietyService(deps.VarietyRepo)
	deps.VarietyHandler = crop.NewVarietyHandler(deps.VarietyService)

	deps.RanchRepo = ranch.NewRepo(db)
	deps.RanchHandler = ranch.NewHandler(deps.RanchRepo)

	deps.ProductRepo = product.NewRepo(db)
	deps.ProductHandler = product.NewHandler(deps.ProductRepo)

	deps.PlantingRepo = planting.NewRepo(db)
	deps.PlantingService = planting.NewService(deps.PlantingRepo)
	deps.PlantingHandler = planting.NewHandler(deps.PlantingService)

	deps.RecipeRepo = recipe.NewRepo(db)
	deps.RecipeService = recipe.NewService(deps.RecipeRepo, cfg.Supply.StrictSeasonality)
	deps.RecipeHandler = recipe.NewHandler(deps.RecipeService)

	deps.ZoneResolver = zone.NewResolver(cfg.Zones, deps.RanchRepo)

	deps.Clock = utils.SystemClock{}
	deps.SupplyService = supply.NewService(deps.PlantingRepo, deps.RecipeRepo, deps.ZoneResolver, strategy, deps.Clock)
	deps.CsvRenderer = supply.NewCsvRenderer()
	deps.XlsxRenderer = supply.NewXlsxRenderer()
	deps.SupplyHandler = supply.NewHandler(deps.SupplyService, deps.CsvRenderer, deps.XlsxRenderer)

	deps.WeeklyPlanService = weekly_plan.NewService(deps.PlantingRepo, deps.RecipeRepo, strategy)
	deps.WeeklyPlanHandler = weekly_plan.NewHandler(deps.WeeklyPlanService)

	deps.GoogleAuth = google.NewGoogleAuth(db, cfg)
	deps.SheetsExporter = google.NewSheetsExporter(deps.GoogleAuth)
	deps.GoogleHandler = google.NewHandler(deps.SupplyService, deps.SheetsExporter)

	return deps, nil
}
