package assessment

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/creditlens/internal/contracts"
)

// AssessYears assesses each year on its own worker and returns the results sorted by year.
// No years means every year present in the dataset. The first failure cancels the rest.
func (s *Service) AssessYears(ctx context.Context, ds contracts.Dataset, years []int, bureau *contracts.AECBReport) ([]*Assessment, error) {
	if err := ds.CheckShape(); err != nil {
		return nil, err
	}
	years = distinctYears(years)
	if len(years) == 0 {
		years = ds.Years()
	}

	results := make([]*Assessment, len(years))
	g, gctx := errgroup.WithContext(ctx)

	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			a, err := s.Assess(gctx, Request{Dataset: ds, Year: year, Bureau: bureau})
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Year < results[b].Year })
	return results, nil
}

func distinctYears(years []int) []int {
	seen := make(map[int]bool, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	return out
}
