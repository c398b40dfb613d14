package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/amaumene/jellyfav/internal/domain"
)

const (
	authorizationHeader = "X-Emby-Authorization"
	tokenHeader         = "X-Emby-Token"
	favoriteFilter      = "IsFavorite"
	maxErrorBodyBytes   = 512
)

var (
	favoriteTypes = []string{
		string(domain.ItemTypeMovie),
		string(domain.ItemTypeSeries),
		string(domain.ItemTypeSeason),
		string(domain.ItemTypeEpisode),
	}
	episodeTypes = []string{string(domain.ItemTypeEpisode)}
	itemFields   = []string{"Container", "SeriesName", "ParentIndexNumber", "IndexNumber", "MediaSources"}
)

type ClientConfig struct {
	BaseURL    string
	ClientName string
	DeviceName string
	DeviceID   string
	Version    string
	HTTPClient *http.Client
}

type JellyfinClient struct {
	baseURL       string
	authorization string
	httpClient    *http.Client
}

var _ domain.MediaServer = (*JellyfinClient)(nil)

func NewJellyfinClient(cfg ClientConfig) (*JellyfinClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parsing base url: %q is not absolute", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	deviceID := cfg.DeviceID
	if deviceID == "" {
		deviceID = DefaultDeviceID(cfg.BaseURL, cfg.ClientName)
	}

	return &JellyfinClient{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		authorization: buildAuthorization(cfg.ClientName, cfg.DeviceName, deviceID, cfg.Version),
		httpClient:    httpClient,
	}, nil
}

// DefaultDeviceID derives a stable device id so that repeated runs against
// the same server reuse one device entry.
func DefaultDeviceID(baseURL, clientName string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(clientName+"@"+baseURL)).String()
}

func buildAuthorization(client, device, deviceID, version string) string {
	return fmt.Sprintf(`MediaBrowser Client=%q, Device=%q, DeviceId=%q, Version=%q`, client, device, deviceID, version)
}

func (c *JellyfinClient) Authenticate(ctx context.Context, username, password string) (domain.Session, error) {
	payload, err := json.Marshal(authRequest{Username: username, Pw: password})
	if err != nil {
		return domain.Session{}, fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Users/AuthenticateByName", bytes.NewReader(payload))
	if err != nil {
		return domain.Session{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeader, c.authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: executing request: %w", domain.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		statusErr := newStatusError("authenticate", resp)
		c.logAuthenticationFailure(username, statusErr)
		return domain.Session{}, fmt.Errorf("%w: %w", domain.ErrAuthentication, statusErr)
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Session{}, fmt.Errorf("%w: decoding response: %w", domain.ErrAuthentication, err)
	}
	if body.AccessToken == "" || body.User.ID == "" {
		return domain.Session{}, fmt.Errorf("%w: response is missing token or user id", domain.ErrAuthentication)
	}

	return domain.Session{
		AccessToken: body.AccessToken,
		UserID:      body.User.ID,
		UserName:    body.User.Name,
	}, nil
}

func (c *JellyfinClient) ListFavorites(ctx context.Context, session domain.Session) ([]domain.CatalogItem, error) {
	return c.listItems(ctx, session, "list favorites", itemsQuery{
		Filters:          favoriteFilter,
		IncludeItemTypes: favoriteTypes,
		Recursive:        true,
		Fields:           itemFields,
	})
}

func (c *JellyfinClient) ListEpisodesOfSeries(ctx context.Context, session domain.Session, seriesID string) ([]domain.CatalogItem, error) {
	return c.listEpisodes(ctx, session, "list series episodes", seriesID)
}

func (c *JellyfinClient) ListEpisodesOfSeason(ctx context.Context, session domain.Session, seasonID string) ([]domain.CatalogItem, error) {
	return c.listEpisodes(ctx, session, "list season episodes", seasonID)
}

func (c *JellyfinClient) listEpisodes(ctx context.Context, session domain.Session, op, parentID string) ([]domain.CatalogItem, error) {
	return c.listItems(ctx, session, op, itemsQuery{
		ParentID:         parentID,
		IncludeItemTypes: episodeTypes,
		Recursive:        true,
		Fields:           itemFields,
	})
}

func (c *JellyfinClient) listItems(ctx context.Context, session domain.Session, op string, q itemsQuery) ([]domain.CatalogItem, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/Users/%s/Items?%s", c.baseURL, url.PathEscape(session.UserID), values.Encode())
	resp, err := c.doAuthenticated(ctx, session, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCatalogFetch, op, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogFetch, newStatusError(op, resp))
	}

	var body itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %s: decoding response: %w", domain.ErrCatalogFetch, op, err)
	}

	log.WithFields(log.Fields{
		"op":       op,
		"parentID": q.ParentID,
		"count":    len(body.Items),
	}).Debug("catalog items fetched")

	return convertFromItemDTOs(body.Items), nil
}

// Download opens the item's original file. The caller owns the returned body.
func (c *JellyfinClient) Download(ctx context.Context, session domain.Session, itemID string) (*domain.Stream, error) {
	endpoint := fmt.Sprintf("%s/Items/%s/Download", c.baseURL, url.PathEscape(itemID))
	resp, err := c.doAuthenticated(ctx, session, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransfer, err)
	}

	if !isSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrTransfer, newStatusError("download", resp))
	}

	return &domain.Stream{
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
	}, nil
}

func (c *JellyfinClient) doAuthenticated(ctx context.Context, session domain.Session, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(tokenHeader, session.AccessToken)
	req.Header.Set(authorizationHeader, c.authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

func (c *JellyfinClient) logAuthenticationFailure(username string, err *StatusError) {
	log.WithFields(log.Fields{
		"username": username,
		"status":   err.StatusCode,
	}).Error("login rejected by server")
}

func newStatusError(op string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
