package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/HyungjinO/k-novel-dashboard/dataset"
	"github.com/HyungjinO/k-novel-dashboard/internal/logger"
	"github.com/HyungjinO/k-novel-dashboard/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex builds the in-memory index over the catalog and the
// translated books.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	b := do.MustInvoke[*dataset.Bundle](i)

	index, err := search.New(search.Options{Logger: log.WithComponent("search").Logger})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	for _, t := range []*dataset.Table{b.Catalog, b.Translated} {
		if t == nil || t.Missing {
			continue
		}
		if _, err := index.Add(ctx, t.Name, t.View); err != nil {
			_ = index.Close()
			return nil, err
		}
	}

	docCount, _ := index.Count()
	log.Info("Search index initialized", "documents", docCount)
	return &SearchIndexHandle{Index: index}, nil
}
