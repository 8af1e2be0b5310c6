package zone

import (
	"context"
	"testing"

	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRanchRepo struct {
	byName map[string]ranch.Ranch
}

func (s *stubRanchRepo) GetAll(ctx context.Context) ([]ranch.Ranch, error) { return nil, nil }

func (s *stubRanchRepo) FindByNames(ctx context.Context, names []string) ([]ranch.Ranch, error) {
	var out []ranch.Ranch
	for _, name := range names {
		if r, ok := s.byName[name]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRanchRepo) GetPlots(ctx context.Context, ranchId string) ([]ranch.Plot, error) {
	return nil, nil
}

func TestResolver_Resolve(t *testing.T) {
	repo := &stubRanchRepo{byName: map[string]ranch.Ranch{
		"Rancho Norte":      {Id: "0b1e9f52-4c2f-4f4d-9416-66a4f7d0a001", Name: "Rancho Norte"},
		"Invernadero Verde": {Id: "0b1e9f52-4c2f-4f4d-9416-66a4f7d0a002", Name: "Invernadero Verde"},
	}}
	resolver := NewResolver(map[string][]string{
		"A": {"Rancho Norte", "Invernadero Verde"},
		"B": {"0b1e9f52-4c2f-4f4d-9416-66a4f7d0a003", "Rancho Norte"},
		"C": {"Rancho Fantasma"},
	}, repo)

	t.Run("names resolve through the catalog", func(t *testing.T) {
		res, err := resolver.Resolve(context.Background(), "A")
		require.NoError(t, err)
		assert.True(t, res.Known)
		assert.Equal(t, []string{
			"0b1e9f52-4c2f-4f4d-9416-66a4f7d0a001",
			"0b1e9f52-4c2f-4f4d-9416-66a4f7d0a002",
		}, res.RanchIds)
		assert.Equal(t, []string{"Invernadero Verde", "Rancho Norte"}, res.RanchNames)
	})

	t.Run("ids and names union without duplicates", func(t *testing.T) {
		res, err := resolver.Resolve(context.Background(), "B")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"0b1e9f52-4c2f-4f4d-9416-66a4f7d0a001",
			"0b1e9f52-4c2f-4f4d-9416-66a4f7d0a003",
		}, res.RanchIds)
	})

	t.Run("unknown names leave an empty match set, not an error", func(t *testing.T) {
		res, err := resolver.Resolve(context.Background(), "C")
		require.NoError(t, err)
		assert.True(t, res.Known)
		assert.Empty(t, res.RanchIds)
	})

	t.Run("unknown zone is not a match set at all", func(t *testing.T) {
		res, err := resolver.Resolve(context.Background(), "Z")
		require.NoError(t, err)
		assert.False(t, res.Known)
		assert.Empty(t, res.RanchIds)
	})
}
