package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/models"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

// ProductFinder is the slice of the catalog the cart needs: products
// loaded with their option groups and options.
type ProductFinder interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service manages the mutable pre-order cart.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*View, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*View, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*View, error)
	Get(ctx context.Context, userID, restaurantID uuid.UUID) (*View, error)
}

type service struct {
	repo    Repository
	catalog ProductFinder
}

// NewService constructs the cart service.
func NewService(repo Repository, catalog ProductFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*View, error) {
	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.RestaurantID != req.RestaurantID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product belongs to another restaurant")
	}
	if !product.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	options, err := resolveSelection(product, req.OptionIDs)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.FindOrCreate(ctx, userID, req.RestaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	// merge with an existing line only when both the product and the
	// exact option set match
	if existing := findMatchingLine(cart.Items, req.ProductID, req.OptionIDs); existing != nil {
		updates := map[string]any{"quantity": existing.Quantity + req.Quantity}
		if req.Note != nil {
			updates["note"] = req.Note
		}
		if err := s.repo.UpdateItem(ctx, existing.ID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge cart line")
		}
		return s.Get(ctx, userID, req.RestaurantID)
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Note:      req.Note,
	}
	if _, err := s.repo.CreateItem(ctx, item, options); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
	}
	return s.Get(ctx, userID, req.RestaurantID)
}

func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*View, error) {
	item, cart, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.OptionIDs != nil {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		options, err := resolveSelection(product, *req.OptionIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceItemOptions(ctx, item, options); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace line options")
		}
	}

	updates := map[string]any{}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Note != nil {
		updates["note"] = req.Note
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateItem(ctx, itemID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
		}
	}
	return s.Get(ctx, userID, cart.RestaurantID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*View, error) {
	_, cart, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	return s.Get(ctx, userID, cart.RestaurantID)
}

func (s *service) Get(ctx context.Context, userID, restaurantID uuid.UUID) (*View, error) {
	cart, err := s.repo.Find(ctx, userID, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &View{
				RestaurantID: restaurantID,
				Lines:        []LineView{},
				Total:        decimal.Zero,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return buildView(cart), nil
}

func (s *service) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, *models.Cart, error) {
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart item")
	}

	cart, err := s.repo.FindByID(ctx, item.CartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart")
	}
	if cart.UserID != userID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return item, cart, nil
}

// resolveSelection maps chosen option IDs onto the product's option
// groups and enforces the cardinality rules of every group:
// non-multiple groups accept at most one choice and required groups
// demand at least one.
func resolveSelection(product *models.Product, optionIDs []uuid.UUID) ([]models.Option, error) {
	seen := make(map[uuid.UUID]bool, len(optionIDs))
	for _, id := range optionIDs {
		if seen[id] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate option selected")
		}
		seen[id] = true
	}

	optionsByID := make(map[uuid.UUID]models.Option)
	groupByOption := make(map[uuid.UUID]*models.OptionGroup)
	for i := range product.OptionGroups {
		group := &product.OptionGroups[i]
		for _, opt := range group.Options {
			optionsByID[opt.ID] = opt
			groupByOption[opt.ID] = group
		}
	}

	selected := make([]models.Option, 0, len(optionIDs))
	countByGroup := make(map[uuid.UUID]int)
	for _, id := range optionIDs {
		opt, ok := optionsByID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "option does not belong to this product")
		}
		selected = append(selected, opt)
		countByGroup[opt.GroupID]++
	}

	for i := range product.OptionGroups {
		group := &product.OptionGroups[i]
		count := countByGroup[group.ID]
		if !group.AllowsMultiple && count > 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("group %q accepts a single option", group.Name))
		}
		if group.Required && count == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("group %q requires a selection", group.Name))
		}
	}

	return selected, nil
}

// findMatchingLine returns the line holding the same product with the
// exact same option set, or nil.
func findMatchingLine(items []models.CartItem, productID uuid.UUID, optionIDs []uuid.UUID) *models.CartItem {
	want := sortedIDs(optionIDs)
	for i := range items {
		item := &items[i]
		if item.ProductID != productID {
			continue
		}
		have := make([]uuid.UUID, 0, len(item.Options))
		for _, opt := range item.Options {
			have = append(have, opt.ID)
		}
		if equalIDs(want, sortedIDs(have)) {
			return item
		}
	}
	return nil
}

func sortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func equalIDs(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func buildView(cart *models.Cart) *View {
	view := &View{
		ID:           cart.ID,
		RestaurantID: cart.RestaurantID,
		Lines:        make([]LineView, 0, len(cart.Items)),
		Total:        decimal.Zero,
		UpdatedAt:    cart.UpdatedAt,
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		line := LineView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Note:      item.Note,
			Options:   make([]OptionView, 0, len(item.Options)),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		for _, opt := range item.Options {
			line.Options = append(line.Options, OptionView{
				ID:         opt.ID,
				Name:       opt.Name,
				PriceDelta: opt.PriceDelta,
			})
		}
		view.Lines = append(view.Lines, line)
		view.Total = view.Total.Add(line.Subtotal)
	}
	return view
}
