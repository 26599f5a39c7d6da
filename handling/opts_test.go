package handling

import (
	"net/http/httptest"
	"testing"

	"solemate_server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogListOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop", nil)

	opts, err := ParseCatalogListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, &services.CatalogListOptions{}, opts)
}

func TestParseCatalogListOptionsFull(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?page=3&category=sneakers&tag=sale&size=42&color=black&q=runner&sort=price", nil)

	opts, err := ParseCatalogListOptions(r)
	require.NoError(t, err)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, "sneakers", opts.Category)
	assert.Equal(t, "sale", opts.Tag)
	assert.Equal(t, "42", opts.Size)
	assert.Equal(t, "black", opts.Color)
	assert.Equal(t, "runner", opts.Search)
	assert.Equal(t, services.SortPrice, opts.Sort)
}

func TestParseCatalogListOptionsBadPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?page=abc", nil)

	_, err := ParseCatalogListOptions(r)
	assert.Error(t, err)
}

func TestParseCatalogListOptionsUnknownSortFallsBack(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?sort=rating", nil)

	opts, err := ParseCatalogListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, services.SortDefault, opts.Sort)
}

func TestParseCatalogListOptionsSortIsCaseInsensitive(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?sort=NAME", nil)

	opts, err := ParseCatalogListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, services.SortName, opts.Sort)
}

func TestParseCatalogListOptionsTrimsValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?q=%20runner%20&category=%20sneakers%20", nil)

	opts, err := ParseCatalogListOptions(r)
	require.NoError(t, err)
	assert.Equal(t, "runner", opts.Search)
	assert.Equal(t, "sneakers", opts.Category)
}
