package naming

import (
	"fmt"

	"github.com/amaumene/jellyfav/internal/domain"
)

// Layout holds the two output roots.
type Layout struct {
	MoviesRoot string
	SeriesRoot string
}

func NewLayout(moviesRoot, seriesRoot string) Layout {
	return Layout{MoviesRoot: moviesRoot, SeriesRoot: seriesRoot}
}

// Destination maps a leaf item to its path. Containers and unknown types have
// no file of their own.
func (l Layout) Destination(item domain.CatalogItem) (string, error) {
	switch item.Type {
	case domain.ItemTypeMovie:
		return MovieDestination(item, l.MoviesRoot), nil
	case domain.ItemTypeEpisode:
		return EpisodeDestination(item, l.SeriesRoot), nil
	default:
		return "", fmt.Errorf("%w: %q (item %s)", domain.ErrUnsupportedType, item.Type, item.ID)
	}
}

// Roots lists the directories that must exist before a run.
func (l Layout) Roots() []string {
	return []string{l.MoviesRoot, l.SeriesRoot}
}
