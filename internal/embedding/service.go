package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/match-engine/internal/types"
)

// DefaultBatchSize is the largest chunk sent to the provider in one call,
// per its batch limits.
const DefaultBatchSize = 20

// Service combines a provider client with the process-wide cache. Construct
// one per process and inject it wherever embeddings are needed.
type Service struct {
	client Client
	cache  *Cache
}

// NewService wires a client to a cache. A nil cache gets the default TTL.
func NewService(client Client, cache *Cache) *Service {
	if cache == nil {
		cache = NewCache(DefaultCacheTTL)
	}
	return &Service{client: client, cache: cache}
}

// Cache exposes the underlying cache for stats and tests.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Dimension returns the provider's vector length.
func (s *Service) Dimension() int {
	return s.client.Dimension()
}

// Close releases the underlying provider client.
func (s *Service) Close() error {
	return s.client.Close()
}

// GenerateEmbedding returns the vector for text. With useCache, a fresh
// cache entry is returned without any provider call; useCache=false bypasses
// the lookup and overwrites the entry (used when comparing providers).
func (s *Service) GenerateEmbedding(ctx context.Context, text string, useCache bool) ([]float32, error) {
	hash := types.HashContent(text)

	if useCache {
		if vector, ok := s.cache.Get(hash); ok {
			return vector, nil
		}
	}

	vector, err := s.client.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	s.cache.Put(hash, vector)
	return vector, nil
}

// BatchGenerateEmbeddings embeds texts in chunks of batchSize (default 20),
// dispatching chunks concurrently and concatenating results in input order.
// Successful batches also populate the cache so later single-text calls hit.
func (s *Service) BatchGenerateEmbeddings(ctx context.Context, texts []string, batchSize int) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	vectors := make([][]float32, len(texts))
	g, gCtx := errgroup.WithContext(ctx)

	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		g.Go(func() error {
			chunk, err := s.client.EmbedBatch(gCtx, texts[start:end])
			if err != nil {
				return fmt.Errorf("failed to embed batch [%d:%d]: %w", start, end, err)
			}
			copy(vectors[start:end], chunk)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, text := range texts {
		s.cache.Put(types.HashContent(text), vectors[i])
	}
	return vectors, nil
}
