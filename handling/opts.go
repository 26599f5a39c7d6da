package handling

import (
	"net/http"
	"strconv"
	"strings"

	"solemate_server/services"
)

// Sort keys the shop listing accepts from the client; anything else falls
// back to the default ordering instead of erroring.
var listingSortKeys = map[string]bool{
	services.SortName:  true,
	services.SortPrice: true,
}

// ParseCatalogListOptions parses HTTP query parameters into CatalogListOptions
func ParseCatalogListOptions(r *http.Request) (*services.CatalogListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &services.CatalogListOptions{}, nil
	}

	opts := &services.CatalogListOptions{}

	if page := query.Get("page"); page != "" {
		valInt, err := strconv.Atoi(page)
		if err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if category := query.Get("category"); category != "" {
		opts.Category = strings.TrimSpace(category)
	}

	if tag := query.Get("tag"); tag != "" {
		opts.Tag = strings.TrimSpace(tag)
	}

	if size := query.Get("size"); size != "" {
		opts.Size = strings.TrimSpace(size)
	}

	if color := query.Get("color"); color != "" {
		opts.Color = strings.TrimSpace(color)
	}

	if search := query.Get("q"); search != "" {
		opts.Search = strings.TrimSpace(search)
	}

	if sort := query.Get("sort"); sort != "" {
		sort = strings.ToLower(strings.TrimSpace(sort))
		if listingSortKeys[sort] {
			opts.Sort = sort
		}
	}

	return opts, nil
}
