// Package catalog fetches dataset metadata from a CKAN-style portal API
// and normalizes it into the records the assessment engine scores.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

// DefaultBaseURL is the Berlin open data portal's CKAN action API.
const DefaultBaseURL = "https://datenregister.berlin.de/api/3/action"

// DefaultPageSize is the page size for paged package listing.
const DefaultPageSize = 100

// Client talks to a CKAN action API.
type Client struct {
	baseURL string
	client  *resty.Client
}

// NewClient returns a client for the given action API base URL. An empty
// URL selects the Berlin portal.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("User-Agent", "mqa-fetch/1.0"),
	}
}

// Package is a CKAN package payload as the portal emits it. Only the
// fields the assessment looks at are decoded.
type Package struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Title                string    `json:"title"`
	URL                  string    `json:"url"` // Landing page, used as the access URL
	Tags                 []NameRef `json:"tags"`
	Groups               []NameRef `json:"groups"`
	GeographicalCoverage string    `json:"geographical_coverage"`
	TemporalCoverageFrom string    `json:"temporal_coverage_from"`
	TemporalCoverageTo   string    `json:"temporal_coverage_to"`
	Maintainer           string    `json:"maintainer"`
	MaintainerEmail      string    `json:"maintainer_email"`
	Author               string    `json:"author"`
	AuthorEmail          string    `json:"author_email"`
	LicenseID            string    `json:"license_id"`
	LicenseTitle         string    `json:"license_title"`
	DateReleased         string    `json:"date_released"`
	DateUpdated          string    `json:"date_updated"`
	Conformance          string    `json:"dcat_ap_de_conformance"`
	Organization         struct {
		Name  string `json:"name"`
		Title string `json:"title"`
	} `json:"organization"`
	Resources []Resource `json:"resources"`
	Extras    []Extra    `json:"extras"`
}

// NameRef is a CKAN name/title pair as it appears in tag and group lists.
type NameRef struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// Resource is one CKAN resource entry.
type Resource struct {
	URL          string          `json:"url"`
	Format       string          `json:"format"`
	Mimetype     string          `json:"mimetype"`
	Size         json.RawMessage `json:"size"` // Number, string or null depending on the package
	AccessRights string          `json:"access_rights"`
}

// Extra is one CKAN extras key/value entry.
type Extra struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type packageListResponse struct {
	Success bool      `json:"success"`
	Result  []Package `json:"result"`
}

// CurrentPackageList fetches one page of current_package_list_with_resources.
func (c *Client) CurrentPackageList(ctx context.Context, limit, offset int) ([]Package, error) {
	var out packageListResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"limit":  strconv.Itoa(limit),
			"offset": strconv.Itoa(offset),
		}).
		SetResult(&out).
		Get("/current_package_list_with_resources")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package list: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("CKAN API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if !out.Success {
		return nil, fmt.Errorf("CKAN API reported success=false for offset %d", offset)
	}
	return out.Result, nil
}

// FetchAll pages through the catalog and returns normalized records in
// portal order. max caps the record count when positive. skipped reports
// raw packages dropped for missing id or title.
func (c *Client) FetchAll(ctx context.Context, pageSize, max int) (records []record.MetadataRecord, skipped int, err error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	fetchedAt := time.Now().UTC().Format(time.RFC3339)

	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return records, skipped, err
		}
		page, err := c.CurrentPackageList(ctx, pageSize, offset)
		if err != nil {
			return records, skipped, err
		}
		for i := range page {
			rec, ok := Normalize(&page[i], fetchedAt)
			if !ok {
				skipped++
				continue
			}
			records = append(records, rec)
			if max > 0 && len(records) >= max {
				slog.Info("Reached record cap", "max", max, "skipped", skipped)
				return records, skipped, nil
			}
		}
		slog.Info("Fetched catalog page", "offset", offset, "page_size", len(page), "total", len(records))
		if len(page) < pageSize {
			break
		}
	}
	return records, skipped, nil
}
