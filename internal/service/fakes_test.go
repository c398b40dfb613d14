package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/amaumene/jellyfav/internal/domain"
)

type fakeCatalog struct {
	series  map[string][]domain.CatalogItem
	seasons map[string][]domain.CatalogItem
	err     error
	calls   []string
}

func (c *fakeCatalog) ListFavorites(ctx context.Context, session domain.Session) ([]domain.CatalogItem, error) {
	return nil, errors.New("not used")
}

func (c *fakeCatalog) ListEpisodesOfSeries(ctx context.Context, session domain.Session, seriesID string) ([]domain.CatalogItem, error) {
	c.calls = append(c.calls, "series:"+seriesID)
	if c.err != nil {
		return nil, c.err
	}
	return c.series[seriesID], nil
}

func (c *fakeCatalog) ListEpisodesOfSeason(ctx context.Context, session domain.Session, seasonID string) ([]domain.CatalogItem, error) {
	c.calls = append(c.calls, "season:"+seasonID)
	if c.err != nil {
		return nil, c.err
	}
	return c.seasons[seasonID], nil
}

type fakeSource struct {
	body          string
	contentLength int64
	failAfter     int
	failWith      error
	err           error
	calls         int
}

func (s *fakeSource) Download(ctx context.Context, session domain.Session, itemID string) (*domain.Stream, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	var reader io.Reader = strings.NewReader(s.body)
	if s.failAfter > 0 {
		reader = &brokenReader{data: []byte(s.body[:s.failAfter]), err: s.failWith}
	}
	return &domain.Stream{Body: io.NopCloser(reader), ContentLength: s.contentLength}, nil
}

var errConnectionReset = errors.New("connection reset by peer")

// brokenReader yields its data and then fails like a dropped connection.
type brokenReader struct {
	data []byte
	pos  int
	err  error
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		if r.err != nil {
			return 0, r.err
		}
		return 0, errConnectionReset
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func episode(id, series string, season, number int) domain.CatalogItem {
	return domain.CatalogItem{
		ID:           id,
		Type:         domain.ItemTypeEpisode,
		Name:         "Episode " + id,
		SeriesName:   series,
		SeasonIndex:  season,
		EpisodeIndex: number,
	}
}
