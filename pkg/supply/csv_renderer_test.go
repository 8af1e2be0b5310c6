package supply

import (
	"testing"

	"github.com/agroplan/agroplan/pkg/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pivotFixture() Result {
	return Result{
		Year:    2025,
		Week:    19,
		Columns: []string{"2025-W19", "2025-W20"},
		Totals: []ProductRow{
			{
				ProductId:      "product-x",
				Name:           "Producto X",
				Unit:           "kg",
				Classification: product.ClassificationFertilizante,
				Total:          decimal.RequireFromString("30.5"),
				Cells: map[string]decimal.Decimal{
					"2025-W19": decimal.RequireFromString("20.5"),
					"2025-W20": decimal.NewFromInt(10),
				},
				Sources: []Source{
					{
						RecipeId:            "recipe-1",
						RecipeName:          "Maíz abril-septiembre",
						Temporalidad:        "ABR-SEP",
						GrowthWeek:          3,
						Classification:      product.ClassificationFertilizante,
						TotalFromThisRecipe: decimal.RequireFromString("20.5"),
						Occurrences:         1,
					},
					{
						RecipeId:            "recipe-2",
						RecipeName:          "Maíz anual",
						GrowthWeek:          4,
						Classification:      product.ClassificationFertilizante,
						TotalFromThisRecipe: decimal.NewFromInt(10),
						Occurrences:         1,
					},
				},
			},
		},
	}
}

func TestCsvRendererImpl_RenderPivot(t *testing.T) {
	got, err := NewCsvRenderer().RenderPivot(pivotFixture())
	require.NoError(t, err)

	want := "Producto,Clasificación,Unidad,2025-W19,2025-W20,TOTAL\n" +
		"Producto X,FERTILIZANTE,kg,20.500,10.000,30.500\n"
	assert.Equal(t, want, got)
}

func TestCsvRendererImpl_RenderPivot_MissingCellIsZero(t *testing.T) {
	result := pivotFixture()
	delete(result.Totals[0].Cells, "2025-W20")

	got, err := NewCsvRenderer().RenderPivot(result)
	require.NoError(t, err)
	assert.Contains(t, got, "Producto X,FERTILIZANTE,kg,20.500,0.000,30.500\n")
}

func TestCsvRendererImpl_RenderSources(t *testing.T) {
	got, err := NewCsvRenderer().RenderSources(pivotFixture())
	require.NoError(t, err)

	want := "Producto,Clasificación,Unidad,Total Producto,Receta,Temporalidad,SemanaCrec.,Aporte Receta,Ocurrencias\n" +
		"Producto X,FERTILIZANTE,kg,30.500,Maíz abril-septiembre,ABR-SEP,S3,20.500,1\n" +
		"Producto X,FERTILIZANTE,kg,30.500,Maíz anual,Anual,S4,10.000,1\n"
	assert.Equal(t, want, got)
}

func TestCsvRendererImpl_EmptyResult(t *testing.T) {
	got, err := NewCsvRenderer().RenderPivot(Result{Columns: []string{"2025-W19"}})
	require.NoError(t, err)
	assert.Equal(t, "Producto,Clasificación,Unidad,2025-W19,TOTAL\n", got)
}
