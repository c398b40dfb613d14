package clients

import "github.com/amaumene/jellyfav/internal/domain"

type authRequest struct {
	Username string `json:"Username"`
	Pw       string `json:"Pw"`
}

type authResponse struct {
	AccessToken string `json:"AccessToken"`
	User        struct {
		ID   string `json:"Id"`
		Name string `json:"Name"`
	} `json:"User"`
}

type itemsResponse struct {
	Items            []itemDTO `json:"Items"`
	TotalRecordCount int       `json:"TotalRecordCount"`
}

type itemDTO struct {
	ID                string           `json:"Id"`
	Name              string           `json:"Name"`
	Type              string           `json:"Type"`
	SeriesName        string           `json:"SeriesName"`
	ParentIndexNumber *int             `json:"ParentIndexNumber"`
	IndexNumber       *int             `json:"IndexNumber"`
	Container         string           `json:"Container"`
	MediaSources      []mediaSourceDTO `json:"MediaSources"`
}

type mediaSourceDTO struct {
	ID        string `json:"Id"`
	Container string `json:"Container"`
	Size      *int64 `json:"Size"`
}

// itemsQuery is encoded with go-querystring; field names match the server's
// query parameters.
type itemsQuery struct {
	ParentID         string   `url:"ParentId,omitempty"`
	Filters          string   `url:"Filters,omitempty"`
	IncludeItemTypes []string `url:"IncludeItemTypes,comma"`
	Recursive        bool     `url:"Recursive"`
	Fields           []string `url:"Fields,comma"`
}

func convertFromItemDTOs(items []itemDTO) []domain.CatalogItem {
	result := make([]domain.CatalogItem, len(items))
	for i, item := range items {
		result[i] = convertFromItemDTO(item)
	}
	return result
}

func convertFromItemDTO(item itemDTO) domain.CatalogItem {
	return domain.CatalogItem{
		ID:           item.ID,
		Type:         domain.ItemType(item.Type),
		Name:         item.Name,
		SeriesName:   item.SeriesName,
		SeasonIndex:  intOrZero(item.ParentIndexNumber),
		EpisodeIndex: intOrZero(item.IndexNumber),
		Container:    item.Container,
		SizeBytes:    firstSourceSize(item.MediaSources),
	}
}

func firstSourceSize(sources []mediaSourceDTO) int64 {
	if len(sources) == 0 || sources[0].Size == nil || *sources[0].Size < 0 {
		return 0
	}
	return *sources[0].Size
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
