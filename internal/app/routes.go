package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Crops
	r.HandleFunc("/api/crops", deps.CropHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/crops", deps.CropHandler.Create).Methods("POST")
	r.HandleFunc("/api/crops/{id}", deps.CropHandler.Get).Methods("GET")
	r.HandleFunc("/api/crops/{id}", deps.CropHandler.Update).Methods("PUT")
	r.HandleFunc("/api/crops/{id}", deps.CropHandler.Delete).Methods("DELETE")

	// Varieties
	r.HandleFunc("/api/varieties", deps.VarietyHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/varieties", deps.VarietyHandler.Create).Methods("POST")
	r.HandleFunc("/api/varieties/{id}", deps.VarietyHandler.Get).Methods("GET")
	r.HandleFunc("/api/varieties/{id}", deps.VarietyHandler.Update).Methods("PUT")
	r.HandleFunc("/api/varieties/{id}", deps.VarietyHandler.Delete).Methods("DELETE")

	// Ranches and plots
	r.HandleFunc("/api/ranches", deps.RanchHandler.GetRanches).Methods("GET")
	r.HandleFunc("/api/plots", deps.RanchHandler.GetPlots).Methods("GET")

	// Products
	r.HandleFunc("/api/products", deps.ProductHandler.GetAll).Methods("GET")

	// Plantings
	r.HandleFunc("/api/plantings", deps.PlantingHandler.Find).Methods("GET")
	r.HandleFunc("/api/plantings", deps.PlantingHandler.Create).Methods("POST")
	r.HandleFunc("/api/plantings/{id}", deps.PlantingHandler.Get).Methods("GET")
	r.HandleFunc("/api/plantings/{id}", deps.PlantingHandler.Update).Methods("PUT")
	r.HandleFunc("/api/plantings/{id}", deps.PlantingHandler.Delete).Methods("DELETE")

	// Recipes
	r.HandleFunc("/api/recipes", deps.RecipeHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/recipes", deps.RecipeHandler.Create).Methods("POST")
	r.HandleFunc("/api/recipes/{id}", deps.RecipeHandler.Get).Methods("GET")
	r.HandleFunc("/api/recipes/{id}", deps.RecipeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/recipes/{id}", deps.RecipeHandler.Delete).Methods("DELETE")

	// Weekly plan
	r.HandleFunc("/api/weekly-plan", deps.WeeklyPlanHandler.GetPlan).Methods("GET")

	// Warehouse supply
	r.HandleFunc("/api/warehouse/weekly-supply", deps.SupplyHandler.GetWeeklySupply).Methods("GET")
	r.HandleFunc("/api/warehouse/weekly-supply/xlsx", deps.SupplyHandler.GetWeeklySupplyXlsx).Methods("GET")
	r.HandleFunc("/api/warehouse/weekly-supply/sheets", deps.GoogleHandler.ExportWeeklySupply).Methods("POST")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
}
