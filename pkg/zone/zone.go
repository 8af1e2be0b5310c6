// Package zone resolves configured zone codes to concrete ranch ids.
// Zones are static deployment data, not a catalog entity, so the mapping
// is injected from configuration rather than stored.
package zone

import (
	"context"
	"sort"

	"github.com/agroplan/agroplan/pkg/ranch"
	"github.com/google/uuid"
)

// Resolution is the outcome of resolving one zone code. An empty Matched
// set with Known=true is a deliberate no-match marker: the caller must
// filter down to nothing, not fall back to all ranches.
type Resolution struct {
	Zone       string
	Known      bool
	RanchIds   []string
	RanchNames []string
}

type Resolver interface {
	Resolve(ctx context.Context, zone string) (Resolution, error)
}

type ResolverImpl struct {
	zones   map[string][]string
	ranches ranch.Repo
}

// NewResolver takes the configured zone mapping. Entries may be ranch ids
// or ranch names; names are resolved against the catalog at query time.
func NewResolver(zones map[string][]string, ranches ranch.Repo) *ResolverImpl {
	return &ResolverImpl{zones: zones, ranches: ranches}
}

func (r *ResolverImpl) Resolve(ctx context.Context, zone string) (Resolution, error) {
	refs, ok := r.zones[zone]
	if !ok {
		return Resolution{Zone: zone}, nil
	}

	ids := map[string]bool{}
	var names []string
	for _, ref := range refs {
		// entries that parse as UUIDs are ranch ids, everything else is a name
		if _, err := uuid.Parse(ref); err == nil {
			ids[ref] = true
		} else {
			names = append(names, ref)
		}
	}

	resolved, err := r.ranches.FindByNames(ctx, names)
	if err != nil {
		return Resolution{}, err
	}
	var ranchNames []string
	for _, item := range resolved {
		ids[item.Id] = true
		ranchNames = append(ranchNames, item.Name)
	}

	res := Resolution{Zone: zone, Known: true, RanchNames: ranchNames}
	for id := range ids {
		res.RanchIds = append(res.RanchIds, id)
	}
	sort.Strings(res.RanchIds)
	sort.Strings(res.RanchNames)
	return res, nil
}
