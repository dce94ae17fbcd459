package profile

import (
	"context"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/model"
)

// Source reports where a retrieved document came from.
type Source int

const (
	SourceCache Source = iota
	SourceNetwork
)

func (s Source) String() string {
	if s == SourceCache {
		return "cache"
	}
	return "api"
}

// Retriever resolves profile documents cache-first, falling back to the API
// and caching successful fetches. The store and client are held by
// composition; the retriever owns no paths of its own.
type Retriever struct {
	store  *Store
	client *Client
}

// NewRetriever combines a store and a client.
func NewRetriever(store *Store, client *Client) *Retriever {
	return &Retriever{store: store, client: client}
}

// Get returns the document for a player, preferring today's cached copy.
// Network fetches are cached before returning. Private profiles are not
// cached; the error is passed through for the caller to surface.
func (r *Retriever) Get(ctx context.Context, player model.Player) (catalog.Document, Source, error) {
	day := Today()
	doc, ok, err := r.store.GetProfile(ctx, player.Tag, day)
	if err != nil {
		return nil, SourceCache, err
	}
	if ok {
		return doc, SourceCache, nil
	}

	doc, err = r.client.Fetch(ctx, player)
	if err != nil {
		return nil, SourceNetwork, err
	}
	if err := r.store.SaveProfile(ctx, player.Tag, day, doc); err != nil {
		return nil, SourceNetwork, err
	}
	return doc, SourceNetwork, nil
}
