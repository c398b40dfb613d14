package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellyfav/internal/domain"
	"github.com/amaumene/jellyfav/internal/naming"
)

const (
	labelFavoriteMovie   = "favorite movie"
	labelFavoriteEpisode = "favorite episode"
)

type existenceChecker interface {
	Exists(path string) bool
}

type Planner struct {
	catalog domain.Catalog
	layout  naming.Layout
	files   existenceChecker
}

func NewPlanner(catalog domain.Catalog, layout naming.Layout, files existenceChecker) *Planner {
	return &Planner{
		catalog: catalog,
		layout:  layout,
		files:   files,
	}
}

// Plan expands favorites into download tasks. Each item id appears once, at
// the position where it was first encountered. A catalog error aborts the
// whole plan since a partial plan cannot be trusted.
func (p *Planner) Plan(ctx context.Context, session domain.Session, favorites []domain.CatalogItem) ([]domain.DownloadTask, error) {
	plan := newTaskSet(len(favorites))

	for _, fav := range favorites {
		p.logFavorite(fav)

		switch fav.Type {
		case domain.ItemTypeMovie:
			p.add(plan, fav, labelFavoriteMovie)
		case domain.ItemTypeEpisode:
			p.add(plan, fav, labelFavoriteEpisode)
		case domain.ItemTypeSeries:
			episodes, err := p.catalog.ListEpisodesOfSeries(ctx, session, fav.ID)
			if err != nil {
				return nil, fmt.Errorf("expanding series %q: %w", fav.Name, err)
			}
			p.addEpisodes(plan, fav, episodes, fmt.Sprintf("favorited via series %s", fav.Name))
		case domain.ItemTypeSeason:
			episodes, err := p.catalog.ListEpisodesOfSeason(ctx, session, fav.ID)
			if err != nil {
				return nil, fmt.Errorf("expanding season %q: %w", fav.Name, err)
			}
			p.addEpisodes(plan, fav, episodes, fmt.Sprintf("favorited via season %s", fav.Name))
		default:
			p.logUnsupported(fav)
		}
	}

	return plan.tasks(), nil
}

func (p *Planner) addEpisodes(plan *taskSet, container domain.CatalogItem, episodes []domain.CatalogItem, label string) {
	p.logExpanded(container, len(episodes))
	for _, child := range episodes {
		if child.Type != domain.ItemTypeEpisode {
			p.logNonEpisodeChild(container, child)
			continue
		}
		p.add(plan, child, label)
	}
}

func (p *Planner) add(plan *taskSet, item domain.CatalogItem, label string) {
	if plan.has(item.ID) {
		p.logDuplicate(item)
		return
	}

	dest, err := p.layout.Destination(item)
	if err != nil {
		log.WithFields(log.Fields{
			"itemID": item.ID,
			"name":   item.Name,
			"error":  err,
		}).Warn("skipping item without a file mapping")
		return
	}

	plan.insert(domain.DownloadTask{
		ItemID:       item.ID,
		ItemType:     item.Type,
		Label:        label,
		Title:        titleOf(item),
		Destination:  dest,
		SizeBytes:    item.SizeBytes,
		WillDownload: !p.files.Exists(dest),
	})
}

func titleOf(item domain.CatalogItem) string {
	if item.Name == "" {
		return item.ID
	}
	return item.Name
}

func (p *Planner) logFavorite(fav domain.CatalogItem) {
	log.WithFields(log.Fields{
		"type": fav.Type,
		"name": fav.Name,
	}).Info("processing favorite")
}

func (p *Planner) logExpanded(container domain.CatalogItem, count int) {
	log.WithFields(log.Fields{
		"type":     container.Type,
		"name":     container.Name,
		"episodes": count,
	}).Info("expanded container")
}

func (p *Planner) logDuplicate(item domain.CatalogItem) {
	log.WithFields(log.Fields{
		"itemID": item.ID,
		"name":   item.Name,
	}).Debug("item already planned, skipping duplicate")
}

func (p *Planner) logNonEpisodeChild(container, child domain.CatalogItem) {
	log.WithFields(log.Fields{
		"container": container.Name,
		"itemID":    child.ID,
		"type":      child.Type,
	}).Warn("skipping non-episode child")
}

func (p *Planner) logUnsupported(fav domain.CatalogItem) {
	log.WithFields(log.Fields{
		"itemID": fav.ID,
		"type":   fav.Type,
		"name":   fav.Name,
	}).Warn("unsupported favorite type")
}

// taskSet is an insertion-ordered set of tasks keyed by item id.
type taskSet struct {
	order []string
	byID  map[string]domain.DownloadTask
}

func newTaskSet(capacity int) *taskSet {
	return &taskSet{
		order: make([]string, 0, capacity),
		byID:  make(map[string]domain.DownloadTask, capacity),
	}
}

func (s *taskSet) has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *taskSet) insert(task domain.DownloadTask) {
	s.order = append(s.order, task.ItemID)
	s.byID[task.ItemID] = task
}

func (s *taskSet) tasks() []domain.DownloadTask {
	result := make([]domain.DownloadTask, len(s.order))
	for i, id := range s.order {
		result[i] = s.byID[id]
	}
	return result
}
