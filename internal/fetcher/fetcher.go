// Package fetcher queries a radio-browser style directory service and
// normalizes its records into canonical stations.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/radiotray/internal/config"
	"github.com/cristianoliveira/radiotray/internal/station"
)

// requestTimeout bounds every directory request.
const requestTimeout = 10 * time.Second

// maxResponseBytes caps how much of a directory response is read.
const maxResponseBytes = 16 << 20

// rawStation mirrors the directory service's station object. Only the
// fields the canonical Station needs are decoded.
type rawStation struct {
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	Country     string `json:"country"`
	CountryCode string `json:"countrycode"`
	Language    string `json:"language"`
	Tags        string `json:"tags"`
	Votes       int    `json:"votes"`
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`
}

// rawCountry mirrors the directory service's country object.
type rawCountry struct {
	Name string `json:"name"`
}

// Options configure a Fetcher. Zero values fall back to the global
// configuration defaults.
type Options struct {
	BaseURL     string
	UserAgent   string
	HomeCountry string
	HomeLimit   int
	TopLimit    int
	Client      *http.Client
}

// Fetcher issues parameterized search queries against a single directory
// endpoint. All methods degrade to an empty result on failure; the error is
// returned for logging but the slice is always valid.
type Fetcher struct {
	baseURL     string
	userAgent   string
	homeCountry string
	homeLimit   int
	topLimit    int
	client      *http.Client
}

// New creates a Fetcher from options, filling gaps from configuration.
func New(opts Options) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = config.Get("api_base_url", "https://de1.api.radio-browser.info/json")
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.Get("user_agent", "radiotray/1.0")
	}
	if opts.HomeCountry == "" {
		opts.HomeCountry = config.Get("home_country", "The Netherlands")
	}
	if opts.HomeLimit <= 0 {
		opts.HomeLimit = config.GetInt("home_limit", 500)
	}
	if opts.TopLimit <= 0 {
		opts.TopLimit = config.GetInt("top_limit", 150)
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: requestTimeout}
	}
	return &Fetcher{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   opts.UserAgent,
		homeCountry: opts.HomeCountry,
		homeLimit:   opts.HomeLimit,
		topLimit:    opts.TopLimit,
		client:      opts.Client,
	}
}

// HomeCountry returns the configured home country.
func (f *Fetcher) HomeCountry() string {
	return f.homeCountry
}

// FetchByCountry returns stations from the given country, most voted first.
func (f *Fetcher) FetchByCountry(ctx context.Context, country string, limit int) ([]station.Station, error) {
	params := searchParams(limit)
	params.Set("country", country)
	return f.fetchStations(ctx, "stations/search", params)
}

// FetchTop returns the top-voted stations across all countries. The service
// is asked to sort by votes; the return order is display order.
func (f *Fetcher) FetchTop(ctx context.Context, limit int) ([]station.Station, error) {
	return f.fetchStations(ctx, "stations/search", searchParams(limit))
}

// Search returns stations whose name matches the query. A blank query
// returns an empty result without touching the network.
func (f *Fetcher) Search(ctx context.Context, query string, limit int) ([]station.Station, error) {
	if strings.TrimSpace(query) == "" {
		return []station.Station{}, nil
	}
	params := searchParams(limit)
	params.Set("name", query)
	return f.fetchStations(ctx, "stations/search", params)
}

// FetchCountries returns the distinct country names known to the directory,
// sorted alphabetically (case-insensitive).
func (f *Fetcher) FetchCountries(ctx context.Context) ([]string, error) {
	var raw []rawCountry
	if err := f.get(ctx, "countries", nil, &raw); err != nil {
		return []string{}, err
	}
	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, c := range raw {
		if c.Name == "" {
			continue
		}
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// FetchMixed returns the home country's stations followed by the
// international top stations, deduplicated by UUID with the home copy
// winning when a station appears in both sets.
func (f *Fetcher) FetchMixed(ctx context.Context) ([]station.Station, error) {
	home, homeErr := f.FetchByCountry(ctx, f.homeCountry, f.homeLimit)
	top, topErr := f.FetchTop(ctx, f.topLimit)

	combined := station.Dedupe(append(home, top...))
	if homeErr != nil {
		return combined, homeErr
	}
	return combined, topErr
}

// searchParams builds the common search query parameters.
func searchParams(limit int) url.Values {
	params := url.Values{}
	params.Set("order", "votes")
	params.Set("reverse", "true")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("hidebroken", "true")
	return params
}

// fetchStations runs one search request and normalizes the result.
func (f *Fetcher) fetchStations(ctx context.Context, endpoint string, params url.Values) ([]station.Station, error) {
	var raw []rawStation
	if err := f.get(ctx, endpoint, params, &raw); err != nil {
		return []station.Station{}, err
	}
	return normalize(raw), nil
}

// get performs one GET against the directory and decodes the JSON body.
func (f *Fetcher) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := f.baseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory request: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// normalize maps raw directory records to canonical stations. The resolved
// URL wins over the raw one; records with neither are dropped.
func normalize(raw []rawStation) []station.Station {
	result := make([]station.Station, 0, len(raw))
	for _, r := range raw {
		streamURL := r.URLResolved
		if streamURL == "" {
			streamURL = r.URL
		}
		if streamURL == "" {
			continue
		}
		name := r.Name
		if name == "" {
			name = "Unknown Station"
		}
		result = append(result, station.Station{
			StationUUID: r.StationUUID,
			Name:        name,
			URL:         streamURL,
			Homepage:    r.Homepage,
			Favicon:     r.Favicon,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			Language:    r.Language,
			Tags:        r.Tags,
			Votes:       r.Votes,
			Codec:       r.Codec,
			Bitrate:     r.Bitrate,
		})
	}
	return result
}
