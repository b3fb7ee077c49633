package rag

import (
	"context"
	"fmt"
	"runtime"

	chromem "github.com/philippgille/chromem-go"
)

// collection opens the persistent index on first use. Later calls reuse it.
func (o *implOrchestrator) collection() (*chromem.Collection, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.coll != nil {
		return o.coll, nil
	}

	db, err := chromem.NewPersistentDB(o.cfg.IndexPath, o.cfg.Compress)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", o.cfg.IndexPath, err)
	}

	coll, err := db.GetOrCreateCollection(o.cfg.Collection, nil, o.embed)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", o.cfg.Collection, err)
	}

	o.coll = coll
	return coll, nil
}

func (o *implOrchestrator) embed(ctx context.Context, text string) ([]float32, error) {
	return o.embedder.Embed(ctx, o.cfg.EmbeddingModel, text)
}

// index appends chunks to the collection. Nothing is deduplicated, so the
// same transcript indexed twice is stored twice.
func (o *implOrchestrator) index(ctx context.Context, coll *chromem.Collection, chunks []Chunk, run string) error {
	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:       c.ID,
			Metadata: c.metadata(run),
			Content:  c.Content,
		}
	}

	select {
	case o.writes <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-o.writes }()

	return coll.AddDocuments(ctx, docs, runtime.NumCPU())
}

// retrieve returns the content of the k chunks closest to query, k clamped
// to the collection size.
func (o *implOrchestrator) retrieve(ctx context.Context, coll *chromem.Collection, query string) ([]string, error) {
	n := min(o.cfg.TopK, coll.Count())
	if n == 0 {
		return nil, nil
	}

	results, err := coll.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Content
	}
	return out, nil
}
