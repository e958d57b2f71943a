package serp

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

// SearchMany executes several independent queries concurrently over the
// shared transport. Results are positionally aligned with queries; the
// first terminal error cancels the remaining work and is returned.
func (c *Client) SearchMany(ctx context.Context, queries []Query) ([]*SearchResults, error) {
	results := make([]*SearchResults, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			res, err := c.Search(ctx, q)
			if err != nil {
				c.logger.Warn("batch query failed",
					zap.Error(err),
					zap.String("term", q.Term()),
				)
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
