package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/models"
	"github.com/frameart/storefront/internal/snapshot"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 4 << 20

type UnsplashClient struct {
	baseURL   string
	accessKey string
	perPage   int
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker[[]byte]
}

func NewUnsplashClient(cfg *config.Catalog) *UnsplashClient {
	return NewUnsplashClientWithHTTP(cfg, &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewUnsplashClientWithHTTP(cfg *config.Catalog, httpClient *http.Client) *UnsplashClient {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = 30
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "unsplash",
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &UnsplashClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: cfg.UnsplashAccessKey,
		perPage:   perPage,
		http:      httpClient,
		breaker:   breaker,
	}
}

type unsplashPhoto struct {
	ID             string `json:"id"`
	AltDescription string `json:"alt_description"`
	Description    string `json:"description"`
	CreatedAt      string `json:"created_at"`
	URLs           struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
	} `json:"urls"`
	User struct {
		Name         string `json:"name"`
		Location     string `json:"location"`
		ProfileImage struct {
			Medium string `json:"medium"`
		} `json:"profile_image"`
	} `json:"user"`
	Tags []struct {
		Title string `json:"title"`
	} `json:"tags"`
}

type unsplashSearch struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []unsplashPhoto `json:"results"`
}

func (c *UnsplashClient) Search(ctx context.Context, query string, page int) ([]models.CatalogArtwork, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("orientation", "landscape")

	body, err := c.fetch(ctx, "/search/photos", params)
	if err != nil {
		return nil, err
	}

	var result unsplashSearch
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog search: %w", err)
	}

	artworks := make([]models.CatalogArtwork, 0, len(result.Results))
	for _, photo := range result.Results {
		artworks = append(artworks, photo.toCatalogArtwork())
	}

	return artworks, nil
}

func (c *UnsplashClient) Get(ctx context.Context, id string) (*models.CatalogArtwork, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	body, err := c.fetch(ctx, "/photos/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var photo unsplashPhoto
	if err := json.Unmarshal(body, &photo); err != nil {
		return nil, fmt.Errorf("failed to decode catalog photo: %w", err)
	}

	artwork := photo.toCatalogArtwork()

	return &artwork, nil
}

func (c *UnsplashClient) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		endpoint := c.baseURL + path
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build catalog request: %w", err)
		}

		req.Header.Set("Authorization", "Client-ID "+c.accessKey)
		req.Header.Set("Accept-Version", "v1")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to call catalog: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}

		return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	})
	if err != nil {
		log.Warn("Catalog request failed",
			slog.String("path", path),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))

		return nil, err
	}

	return body, nil
}

func (p unsplashPhoto) toCatalogArtwork() models.CatalogArtwork {
	title := p.AltDescription
	if title == "" {
		title = p.Description
	}

	tags := make([]any, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Title)
	}

	return models.CatalogArtwork{
		ID:    p.ID,
		Title: title,
		ImageURLs: models.ImageURLs{
			Regular: p.URLs.Regular,
			Small:   p.URLs.Small,
		},
		Artist: models.ArtistDisplay{
			Name:     p.User.Name,
			Location: p.User.Location,
			Photo:    p.User.ProfileImage.Medium,
		},
		Tags:      snapshot.NormalizeTags(tags),
		CreatedAt: p.CreatedAt,
	}
}
