package domain

import "context"

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Session, error)
}

type Catalog interface {
	ListFavorites(ctx context.Context, session Session) ([]CatalogItem, error)
	ListEpisodesOfSeries(ctx context.Context, session Session, seriesID string) ([]CatalogItem, error)
	ListEpisodesOfSeason(ctx context.Context, session Session, seasonID string) ([]CatalogItem, error)
}

type MediaSource interface {
	Download(ctx context.Context, session Session, itemID string) (*Stream, error)
}

// MediaServer is the full surface of a media-server client.
type MediaServer interface {
	Authenticator
	Catalog
	MediaSource
}
