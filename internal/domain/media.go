package domain

import "io"

type ItemType string

const (
	ItemTypeMovie   ItemType = "Movie"
	ItemTypeSeries  ItemType = "Series"
	ItemTypeSeason  ItemType = "Season"
	ItemTypeEpisode ItemType = "Episode"
)

// IsLeaf reports whether items of this type map to a single file.
func (t ItemType) IsLeaf() bool {
	return t == ItemTypeMovie || t == ItemTypeEpisode
}

// Session is the result of a successful login. Every API call after
// authentication takes it explicitly.
type Session struct {
	AccessToken string
	UserID      string
	UserName    string
}

// CatalogItem is a read-only record from the media server. Optional numeric
// fields are zero when the server omitted them; SizeBytes == 0 means unknown.
type CatalogItem struct {
	ID           string
	Type         ItemType
	Name         string
	SeriesName   string
	SeasonIndex  int
	EpisodeIndex int
	Container    string
	SizeBytes    int64
}

func (i CatalogItem) HasSize() bool {
	return i.SizeBytes > 0
}

// Stream is an open item download. ContentLength is negative when the server
// did not declare one.
type Stream struct {
	Body          io.ReadCloser
	ContentLength int64
}
