package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"solemate_server/database"
	"solemate_server/structs"
	"solemate_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CartService manages session-scoped cart trees. Every operation resolves
// the caller's tree from the opaque session token first; a tree is created
// lazily on the first interaction and never deleted.
type CartService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewCartService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cacheService *CacheService) *CartService {
	return &CartService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

// ResolveSessionCart returns the cart tree for a session token, creating it
// if the token has none yet. The token -> tree id mapping is cached; a stale
// cache entry (tree row gone) falls through to the database path.
func (cs *CartService) ResolveSessionCart(ctx context.Context, token string) (*tables.CartTree, error) {
	if cachedID, err := cs.cacheService.GetSessionTree(token); err != nil {
		cs.logger.Warn("Failed to read session tree from cache", gecho.Field("error", err))
	} else if cachedID != nil {
		tree, err := cs.loadTree(ctx, "ct.id", *cachedID)
		if err != nil {
			return nil, err
		}
		if tree != nil {
			return tree, nil
		}
		if err := cs.cacheService.InvalidateSessionTree(token); err != nil {
			cs.logger.Warn("Failed to invalidate stale session tree mapping", gecho.Field("error", err))
		}
	}

	tree, err := cs.loadTree(ctx, "ct.session_token", token)
	if err != nil {
		return nil, err
	}

	if tree == nil {
		tree = &tables.CartTree{
			ID:           uuid.New(),
			SessionToken: token,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if _, err := database.Create(cs.db, ctx, tree); err != nil {
			return nil, fmt.Errorf("failed to create cart tree: %w", err)
		}
		cs.logger.Debug("Created cart tree for session", gecho.Field("tree_id", tree.ID))
	}

	treeID := tree.ID
	go func() {
		if err := cs.cacheService.SetSessionTree(token, treeID); err != nil {
			cs.logger.Warn("Failed to cache session tree mapping", gecho.Field("error", err))
		}
	}()

	return tree, nil
}

// loadTree fetches one cart tree with its lines and their pricing relations.
func (cs *CartService) loadTree(ctx context.Context, column string, value any) (*tables.CartTree, error) {
	tree, err := database.Query[tables.CartTree](cs.db).
		Where(column, value).
		Relation("Items").
		Relation("Items.Product").
		Relation("Items.Variant").
		Relation("Items.Size").
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart tree: %w", err)
	}
	return tree, nil
}

// lineAction is the planned effect of an add-to-cart request on the tree.
type lineAction int

const (
	lineNoop lineAction = iota
	lineCreate
	lineUpdate
	lineRemove
)

// planLineChange decides how a quantity request lands on the existing lines.
// The requested quantity replaces the stored one rather than adding to it;
// zero or negative means the line goes away.
func planLineChange(items []tables.CartItem, productID uuid.UUID, variantID, sizeID *uuid.UUID, quantity int) (lineAction, *tables.CartItem) {
	var match *tables.CartItem
	for i := range items {
		if items[i].MatchesLine(productID, variantID, sizeID) {
			match = &items[i]
			break
		}
	}

	if quantity <= 0 {
		if match == nil {
			return lineNoop, nil
		}
		return lineRemove, match
	}

	if match == nil {
		return lineCreate, nil
	}
	return lineUpdate, match
}

// AddOrUpdate sets the quantity of one line in the session's tree.
func (cs *CartService) AddOrUpdate(ctx context.Context, token string, req *structs.AddToCartRequest) (*structs.AddToCartResponse, error) {
	tree, err := cs.ResolveSessionCart(ctx, token)
	if err != nil {
		return nil, err
	}

	action, match := planLineChange(tree.Items, req.ProductID, req.VariantID, req.SizeID, req.Quantity)

	resp := &structs.AddToCartResponse{Success: true, TreeID: tree.ID}

	switch action {
	case lineCreate:
		item := &tables.CartItem{
			ID:        uuid.New(),
			TreeID:    &tree.ID,
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			SizeID:    req.SizeID,
			Quantity:  req.Quantity,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if _, err := database.Create(cs.db, ctx, item); err != nil {
			return nil, fmt.Errorf("failed to insert cart line: %w", err)
		}
		resp.CartID = item.ID

	case lineUpdate:
		if _, err := database.UpdateByID[tables.CartItem](cs.db, ctx, match.ID, map[string]any{
			"quantity":   req.Quantity,
			"updated_at": time.Now(),
		}); err != nil {
			return nil, fmt.Errorf("failed to update cart line: %w", err)
		}
		resp.CartID = match.ID

	case lineRemove:
		if _, err := database.DeleteByID[tables.CartItem](cs.db, ctx, match.ID); err != nil {
			return nil, fmt.Errorf("failed to remove cart line: %w", err)
		}
		resp.CartID = match.ID
		resp.Removed = true

	case lineNoop:
		resp.Removed = true
	}

	cs.touchTree(ctx, tree.ID)

	cs.logger.Debug("Cart line changed",
		gecho.Field("tree_id", tree.ID),
		gecho.Field("product_id", req.ProductID),
		gecho.Field("quantity", req.Quantity),
	)
	return resp, nil
}

// ToggleStatus reports which affordance the product page should render for
// a line: "remove" with the stored count when the line is in the tree, else
// "add" with the count a first add would set.
func (cs *CartService) ToggleStatus(ctx context.Context, token string, productID uuid.UUID, variantID, sizeID *uuid.UUID) (*structs.CartToggleView, error) {
	tree, err := cs.ResolveSessionCart(ctx, token)
	if err != nil {
		return nil, err
	}

	for i := range tree.Items {
		if tree.Items[i].MatchesLine(productID, variantID, sizeID) {
			return &structs.CartToggleView{View: "remove", Count: tree.Items[i].Quantity}, nil
		}
	}
	return &structs.CartToggleView{View: "add", Count: 1}, nil
}

// Remove deletes a line by id or by triple. A line that is already gone is
// not an error; removal is idempotent from the client's point of view.
func (cs *CartService) Remove(ctx context.Context, token string, req *structs.RemoveFromCartRequest) (bool, error) {
	tree, err := cs.ResolveSessionCart(ctx, token)
	if err != nil {
		return false, err
	}

	match := findLine(tree.Items, req)
	if match == nil {
		return false, nil
	}

	if _, err := database.DeleteByID[tables.CartItem](cs.db, ctx, match.ID); err != nil {
		return false, fmt.Errorf("failed to remove cart line: %w", err)
	}

	cs.touchTree(ctx, tree.ID)
	return true, nil
}

// findLine locates the line a removal request targets: by item id when one
// is given, otherwise by the (product, variant, size) triple. Nil means the
// line is not in the tree.
func findLine(items []tables.CartItem, req *structs.RemoveFromCartRequest) *tables.CartItem {
	for i := range items {
		item := &items[i]
		if req.CartItemID != nil {
			if item.ID == *req.CartItemID {
				return item
			}
			continue
		}
		if req.ProductID != nil && item.MatchesLine(*req.ProductID, req.VariantID, req.SizeID) {
			return item
		}
	}
	return nil
}

// Snapshot builds the full cart view with per-line pricing. The subtotal is
// recomputed from current product prices on every call.
func (cs *CartService) Snapshot(ctx context.Context, token string) (*structs.CartSnapshot, error) {
	tree, err := cs.ResolveSessionCart(ctx, token)
	if err != nil {
		return nil, err
	}
	return buildCartSnapshot(tree), nil
}

// buildCartSnapshot flattens a loaded tree into its wire view, oldest
// line first.
func buildCartSnapshot(tree *tables.CartTree) *structs.CartSnapshot {
	items := make([]tables.CartItem, len(tree.Items))
	copy(items, tree.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })

	snapshot := &structs.CartSnapshot{TreeID: tree.ID}
	for i := range items {
		item := &items[i]
		line := structs.CartLineView{
			ItemID:         item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents(),
			LineTotalCents: item.LineTotalCents(),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		if item.Variant != nil {
			line.VariantName = item.Variant.Name
		}
		if item.Size != nil {
			line.SizeValue = item.Size.Value
		}
		snapshot.Lines = append(snapshot.Lines, line)
		snapshot.SubtotalCents += line.LineTotalCents
	}
	return snapshot
}

// touchTree bumps the tree's updated_at; failures only get logged since the
// timestamp is advisory.
func (cs *CartService) touchTree(ctx context.Context, treeID uuid.UUID) {
	if _, err := database.UpdateByID[tables.CartTree](cs.db, ctx, treeID, map[string]any{
		"updated_at": time.Now(),
	}); err != nil {
		cs.logger.Warn("Failed to touch cart tree", gecho.Field("error", err), gecho.Field("tree_id", treeID))
	}
}
