package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-resty/resty/v2"
)

const categoriesCacheKey = "categories"

// Category is one entry of the remote category catalog.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type categoriesResponse struct {
	Categories []Category `json:"trivia_categories"`
}

// Catalog lists the remote categories. The list rarely changes, so it is cached on disk.
type Catalog struct {
	baseURL   string
	fileCache *fileCache
}

func NewCatalog(baseURL string, cacheDirectory string) *Catalog {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Catalog{
		baseURL:   baseURL,
		fileCache: newFileCache(cacheDirectory),
	}
}

func (c *Catalog) lookupAPI(ctx context.Context) ([]byte, error) {
	client := resty.New()
	res, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.baseURL + "/api_category.php")
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return res.Body(), nil
}

// Categories returns the catalog sorted by ID.
func (c *Catalog) Categories(ctx context.Context) ([]Category, error) {
	contents, err := c.fileCache.cache(categoriesCacheKey, func() ([]byte, error) {
		body, err := c.lookupAPI(ctx)
		if err != nil {
			return nil, fmt.Errorf("c.lookupAPI > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fileCache.cache > %w", err)
	}

	var resp categoriesResponse
	if err := json.Unmarshal(contents, &resp); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	sort.Slice(resp.Categories, func(i, j int) bool {
		return resp.Categories[i].ID < resp.Categories[j].ID
	})
	return resp.Categories, nil
}
