package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"solemate_server/database"
	"solemate_server/lib"
	"solemate_server/structs"
	"solemate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CatalogService answers the storefront's read queries: filtered,
// sorted, paginated product listings and single product detail views.
// It has no side effects beyond cache fills.
type CatalogService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewCatalogService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cacheService *CacheService) *CatalogService {
	return &CatalogService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

// Sort keys accepted by ListProducts. Anything else falls back to default.
const (
	SortDefault = ""      // newest first
	SortName    = "name"  // alphabetical
	SortPrice   = "price" // min effective price, ascending
)

// CatalogListOptions contains the shop listing filters. All filters are
// optional and combine with AND.
type CatalogListOptions struct {
	Page     int    `json:"page"`
	Category string `json:"category,omitempty"` // category name
	Tag      string `json:"tag,omitempty"`      // tag name
	Size     string `json:"size,omitempty"`     // size value, e.g. "42"
	Color    string `json:"color,omitempty"`    // variant name, case-insensitive
	Search   string `json:"q,omitempty"`        // free text over name/descriptions
	Sort     string `json:"sort,omitempty"`     // "", "name" or "price"
}

// CatalogListResult wraps one shop page with pagination metadata.
type CatalogListResult struct {
	Products   []structs.ProductView `json:"products"`
	Pagination database.Pagination   `json:"pagination"`
	Filters    CatalogListOptions    `json:"filters"`
	QueryTime  time.Duration         `json:"query_time"`
}

// ListProducts returns one page of active products matching the filters.
// Price sorting needs each product's minimum effective price, which lives
// partly on the variants, so that sort materializes the candidate set and
// orders it in memory instead of pushing ORDER BY to storage.
func (cs *CatalogService) ListProducts(ctx context.Context, opts *CatalogListOptions) (*CatalogListResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &CatalogListOptions{}
	}
	pageSize := cs.cfg.Catalog.PageSize

	query := cs.listingQuery(opts)

	var (
		products   []tables.Product
		pagination database.Pagination
	)

	if opts.Sort == SortPrice {
		all, err := query.All(ctx)
		if err != nil {
			cs.logger.Error("Failed to fetch products for price sort", gecho.Field("error", err))
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}

		sortProductsByMinPrice(all)

		page := database.ClampPage(opts.Page, pageSize, len(all))
		products = pageSlice(all, page, pageSize)
		pagination = database.Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      len(all),
			TotalPages: (len(all) + pageSize - 1) / pageSize,
		}
	} else {
		result, err := database.Paginate(query, ctx, opts.Page, pageSize)
		if err != nil {
			cs.logger.Error("Failed to fetch products",
				gecho.Field("error", err),
				gecho.Field("page", opts.Page),
				gecho.Field("duration", time.Since(startTime)))
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		products = result.Data
		pagination = result.Pagination
	}

	views := make([]structs.ProductView, 0, len(products))
	for i := range products {
		views = append(views, cs.serializeProduct(&products[i]))
	}

	cs.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(views)),
		gecho.Field("total", pagination.Total),
		gecho.Field("page", pagination.Page),
		gecho.Field("duration", time.Since(startTime)),
	)

	return &CatalogListResult{
		Products:   views,
		Pagination: pagination,
		Filters:    *opts,
		QueryTime:  time.Since(startTime),
	}, nil
}

// listingQuery builds the filtered base query for active products with all
// relations the card view needs.
func (cs *CatalogService) listingQuery(opts *CatalogListOptions) *database.QueryBuilder[tables.Product] {
	query := database.Query[tables.Product](cs.db).
		Where("p.is_active", true).
		Relation("Variants").
		Relation("Variants.StockEntries").
		Relation("Variants.StockEntries.Size").
		Relation("Images").
		Relation("Categories").
		Relation("Tags").
		Relation("Reviews").
		Timeout(10 * time.Second)

	if opts.Category != "" {
		query = query.WhereRaw(
			"p.id IN (SELECT pc.product_id FROM product_categories pc JOIN categories c ON c.id = pc.category_id WHERE c.name = ?)",
			opts.Category,
		)
	}

	if opts.Tag != "" {
		query = query.WhereRaw(
			"p.id IN (SELECT pt.product_id FROM product_tags pt JOIN tags t ON t.id = pt.tag_id WHERE t.name = ?)",
			opts.Tag,
		)
	}

	// Size and color filters look through active variants only; the size
	// filter additionally requires a stock row with positive quantity.
	if opts.Size != "" {
		query = query.WhereRaw(
			"p.id IN (SELECT pv.product_id FROM product_variants pv JOIN stock_entries se ON se.variant_id = pv.id JOIN sizes s ON s.id = se.size_id WHERE pv.is_active AND s.value = ? AND se.quantity > 0)",
			opts.Size,
		)
	}

	if opts.Color != "" {
		query = query.WhereRaw(
			"p.id IN (SELECT pv.product_id FROM product_variants pv WHERE pv.is_active AND LOWER(pv.name) = LOWER(?))",
			opts.Color,
		)
	}

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.WhereRaw(
			"(p.name ILIKE ? OR p.description ILIKE ? OR p.short_description ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	switch opts.Sort {
	case SortName:
		query = query.OrderBy("p.name", database.ASC)
	case SortPrice:
		// ordered in memory after materializing
	default:
		query = query.OrderBy("p.created_at", database.DESC)
	}

	return query
}

// GetProductDetail returns the full product page payload for an active
// product, cache-aside. A missing or inactive product is lib.ErrNotFound.
func (cs *CatalogService) GetProductDetail(ctx context.Context, id uuid.UUID) (*structs.ProductDetailView, error) {
	startTime := time.Now()

	cached, err := cs.cacheService.GetProductDetail(id)
	if err != nil {
		cs.logger.Warn("Failed to get product detail from cache", gecho.Field("error", err), gecho.Field("id", id))
	} else if cached != nil {
		cs.logger.Debug("Product detail retrieved from cache", gecho.Field("id", id))
		return cached, nil
	}

	product, err := database.Query[tables.Product](cs.db).
		Where("p.id", id).
		Where("p.is_active", true).
		Relation("Brand").
		Relation("Variants").
		Relation("Variants.StockEntries").
		Relation("Variants.StockEntries.Size").
		Relation("Variants.Images").
		Relation("Images").
		Relation("Categories").
		Relation("Tags").
		Relation("Reviews").
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch product detail",
			gecho.Field("id", id),
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	view := &structs.ProductDetailView{
		ProductView:        cs.serializeProduct(product),
		Description:        product.Description,
		DiscountPercentage: product.DiscountPercentage(),
	}
	if product.Brand != nil {
		view.Brand = product.Brand.Name
	}

	for _, r := range product.Reviews {
		view.Reviews = append(view.Reviews, structs.ReviewView{
			Rating:    r.Rating,
			Title:     r.Title,
			Body:      r.Body,
			CreatedAt: r.CreatedAt,
		})
	}

	related, err := cs.relatedProducts(ctx, product)
	if err != nil {
		// The detail page is still useful without the related strip.
		cs.logger.Warn("Failed to fetch related products", gecho.Field("error", err), gecho.Field("id", id))
	} else {
		view.RelatedProducts = related
	}

	go func() {
		if err := cs.cacheService.SetProductDetail(view); err != nil {
			cs.logger.Warn("Failed to cache product detail", gecho.Field("error", err), gecho.Field("id", id))
		}
	}()

	cs.logger.Debug("Product detail fetched",
		gecho.Field("id", id),
		gecho.Field("duration", time.Since(startTime)),
	)
	return view, nil
}

// relatedProducts finds up to four other active products sharing a
// category with the given product.
func (cs *CatalogService) relatedProducts(ctx context.Context, product *tables.Product) ([]structs.ProductView, error) {
	if len(product.Categories) == 0 {
		return nil, nil
	}

	categoryIDs := make([]any, 0, len(product.Categories))
	for _, c := range product.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	related, err := database.Query[tables.Product](cs.db).
		Where("p.is_active", true).
		WhereRaw("p.id != ?", product.ID).
		WhereRaw(
			"p.id IN (SELECT pc.product_id FROM product_categories pc WHERE pc.category_id IN (?))",
			database.InValues(categoryIDs),
		).
		Relation("Variants").
		Relation("Images").
		Relation("Reviews").
		OrderBy("p.created_at", database.DESC).
		Limit(4).
		All(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]structs.ProductView, 0, len(related))
	for i := range related {
		views = append(views, cs.serializeProduct(&related[i]))
	}
	return views, nil
}

// AttachVariantImage adds an image to a color variant. A variant carries at
// most tables.MaxVariantImages images; the limit is enforced strictly and
// the violation propagates to the caller as lib.ErrImageLimit.
func (cs *CatalogService) AttachVariantImage(ctx context.Context, variantID uuid.UUID, url, altText string, position int) (*tables.VariantImage, error) {
	count, err := database.Query[tables.VariantImage](cs.db).
		Where("vi.variant_id", variantID).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count variant images: %w", err)
	}

	if err := imageAttachAllowed(count); err != nil {
		return nil, err
	}

	image := &tables.VariantImage{
		ID:        uuid.New(),
		VariantID: variantID,
		URL:       url,
		AltText:   altText,
		Position:  position,
	}

	if _, err := database.Query[tables.VariantImage](cs.db).Insert(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to insert variant image: %w", lib.MapPgError(err))
	}

	variant, err := database.FindByID[tables.ProductVariant](cs.db, ctx, variantID)
	if err == nil && variant != nil {
		go func() {
			if err := cs.cacheService.InvalidateProduct(variant.ProductID); err != nil {
				cs.logger.Warn("Failed to invalidate product cache after image attach",
					gecho.Field("error", err),
					gecho.Field("product_id", variant.ProductID),
				)
			}
		}()
	}

	return image, nil
}

// imageAttachAllowed decides whether a variant already holding count images
// may take one more. The cap is strict; the violation is lib.ErrImageLimit
// and must reach the caller of the write.
func imageAttachAllowed(count int) error {
	if count >= tables.MaxVariantImages {
		return lib.ErrImageLimit
	}
	return nil
}

// serializeProduct flattens a loaded product row into its listing card view.
func (cs *CatalogService) serializeProduct(p *tables.Product) structs.ProductView {
	policy := cs.cfg.Catalog.StockPolicy

	view := structs.ProductView{
		ID:               p.ID,
		Name:             p.Name,
		PriceCents:       p.PriceCents,
		OldPriceCents:    p.OldPriceCents,
		MinPriceCents:    p.MinPriceCents(),
		ShortDescription: p.ShortDescription,
		Image:            p.MainImageURL(),
		ReviewCount:      p.ReviewCount(),
		AverageRating:    p.AverageRating(),
		TimesOrdered:     p.TimesOrdered,
		IsFeatured:       p.IsFeatured,
		IsNew:            p.IsNew,
		CreatedAt:        p.CreatedAt,
	}

	for _, c := range p.Categories {
		view.Categories = append(view.Categories, c.Name)
	}
	for _, t := range p.Tags {
		view.Tags = append(view.Tags, t.Name)
	}
	for _, img := range p.Images {
		view.Images = append(view.Images, img.URL)
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		if !v.IsActive {
			continue
		}
		view.Variants = append(view.Variants, serializeVariant(p, v, policy))
	}

	view.Sizes = availableSizes(p.Variants, policy)

	return view
}

// serializeVariant builds the per-color summary with its effective price
// and in-stock sizes.
func serializeVariant(p *tables.Product, v *tables.ProductVariant, policy structs.StockPolicy) structs.VariantView {
	view := structs.VariantView{
		ID:         v.ID,
		Name:       v.Name,
		HexCode:    v.HexCode,
		CSSClass:   v.CSSClass,
		PriceCents: p.EffectivePriceCents(v),
		SKU:        v.SKU,
	}

	images := make([]tables.VariantImage, len(v.Images))
	copy(images, v.Images)
	sort.Slice(images, func(i, j int) bool { return images[i].Position < images[j].Position })
	for _, img := range images {
		view.Images = append(view.Images, img.URL)
	}

	view.Sizes = availableSizes([]tables.ProductVariant{*v}, policy)

	return view
}

// availableSizes returns the distinct sizes that are in stock across the
// given variants (active variants only), applying the duplicate-row policy.
func availableSizes(variants []tables.ProductVariant, policy structs.StockPolicy) []structs.SizeView {
	type sizeStock struct {
		view structs.SizeView
		qty  int
	}
	bySize := make(map[uuid.UUID]*sizeStock)
	var order []uuid.UUID

	for i := range variants {
		v := &variants[i]
		if !v.IsActive {
			continue
		}
		for sizeID, qty := range stockBySize(v.StockEntries, policy) {
			entry, ok := bySize[sizeID]
			if !ok {
				entry = &sizeStock{view: sizeViewFor(v.StockEntries, sizeID)}
				bySize[sizeID] = entry
				order = append(order, sizeID)
			}
			entry.qty += qty
		}
	}

	var sizes []structs.SizeView
	for _, id := range order {
		if bySize[id].qty > 0 {
			sizes = append(sizes, bySize[id].view)
		}
	}
	sort.Slice(sizes, func(i, j int) bool {
		return sizeLess(sizes[i].Value, sizes[j].Value)
	})
	return sizes
}

// stockBySize collapses a variant's stock rows into one quantity per size.
// The stock table does not constrain (variant, size) to be unique, so
// duplicate rows are interpreted per the configured policy: summed, or
// latest-row-wins by insertion time.
func stockBySize(entries []tables.StockEntry, policy structs.StockPolicy) map[uuid.UUID]int {
	quantities := make(map[uuid.UUID]int)

	if policy == structs.StockPolicyLatest {
		latest := make(map[uuid.UUID]time.Time)
		for _, e := range entries {
			if seen, ok := latest[e.SizeID]; !ok || e.CreatedAt.After(seen) {
				latest[e.SizeID] = e.CreatedAt
				quantities[e.SizeID] = e.Quantity
			}
		}
		return quantities
	}

	for _, e := range entries {
		quantities[e.SizeID] += e.Quantity
	}
	return quantities
}

func sizeViewFor(entries []tables.StockEntry, sizeID uuid.UUID) structs.SizeView {
	for _, e := range entries {
		if e.SizeID == sizeID && e.Size != nil {
			return structs.SizeView{ID: sizeID, Value: e.Size.Value}
		}
	}
	return structs.SizeView{ID: sizeID}
}

// sizeLess orders size labels numerically when both parse as numbers
// ("9" < "42"), lexically otherwise.
func sizeLess(a, b string) bool {
	an, aerr := parseSizeNumber(a)
	bn, berr := parseSizeNumber(b)
	if aerr == nil && berr == nil {
		return an < bn
	}
	return strings.Compare(a, b) < 0
}

func parseSizeNumber(s string) (float64, error) {
	var n float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &n)
	return n, err
}

// sortProductsByMinPrice orders products ascending by their minimum
// effective price; ties break newest-first for stable shop pages.
func sortProductsByMinPrice(products []tables.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		pi, pj := products[i].MinPriceCents(), products[j].MinPriceCents()
		if pi != pj {
			return pi < pj
		}
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}

// pageSlice cuts one page out of an already ordered product set.
func pageSlice(products []tables.Product, page, pageSize int) []tables.Product {
	start := (page - 1) * pageSize
	if start >= len(products) {
		return nil
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
