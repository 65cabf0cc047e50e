package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

const (
	quantityField = "quantity"

	// maxStatusLen matches the orders.status column.
	maxStatusLen = 50
)

// OrderLine is one accepted line of a bulk order submission.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// ParseLines extracts the positive quantity_<productId> entries of form,
// ordered by product id. Anything else is skipped.
func ParseLines(form url.Values) []OrderLine {
	lines, _ := parseLines(form)
	return lines
}

// parseLines is ParseLines that also reports the skipped field names.
func parseLines(form url.Values) (lines []OrderLine, skipped []string) {
	lines = make([]OrderLine, 0, len(form))
	for key, vals := range form {
		line, ok := parseLine(key, vals)
		if !ok {
			skipped = append(skipped, key)
			continue
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	sort.Strings(skipped)
	return lines, skipped
}

// parseLine reads the product id from the second "_" token of key; any
// further tokens are ignored. The quantity is the leading integer of the
// first value, so "2 boxes" and "1.5" count as 2 and 1.
func parseLine(key string, vals []string) (OrderLine, bool) {
	if len(vals) == 0 {
		return OrderLine{}, false
	}
	parts := strings.Split(key, "_")
	if len(parts) < 2 || parts[0] != quantityField {
		return OrderLine{}, false
	}

	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil || id == 0 {
		return OrderLine{}, false
	}
	qty, ok := leadingInt(vals[0])
	if !ok || qty <= 0 || qty > maxQuantity {
		return OrderLine{}, false
	}
	return OrderLine{ProductID: uint(id), Quantity: qty}, true
}

// leadingInt parses the optionally signed run of digits at the start of s,
// after surrounding whitespace. It fails when there are no digits.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// maxQuantity keeps a line inside a 32-bit integer column.
const maxQuantity = 1<<31 - 1

type OrderService struct {
	orders   OrderStore
	products ProductStore
}

func NewOrderService(orders OrderStore, products ProductStore) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Submit turns a bulk order form into one order row per accepted line.
// Lines naming unknown products are skipped. Each row is committed on its
// own; a store failure stops the loop and leaves earlier rows in place.
func (s *OrderService) Submit(ctx context.Context, userID uint, form url.Values) ([]models.Order, error) {
	log := logger.WithCtx(ctx)

	lines, skipped := parseLines(form)
	for _, key := range skipped {
		log.Debug().Str("field", key).Msg("order line skipped: not a positive quantity_<id> field")
	}
	if len(lines) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	existing, err := s.products.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("submit order: check products: %w", err)
	}

	created := make([]models.Order, 0, len(lines))
	for _, l := range lines {
		if !existing[l.ProductID] {
			log.Debug().Uint("product_id", l.ProductID).Msg("order line skipped: unknown product")
			continue
		}

		order := models.Order{UserID: userID, ProductID: l.ProductID, Quantity: l.Quantity}
		if err := s.orders.Create(ctx, &order); err != nil {
			return created, fmt.Errorf("submit order: product %d: %w", l.ProductID, err)
		}
		created = append(created, order)
	}
	return created, nil
}

// ForUser lists a customer's own orders.
func (s *OrderService) ForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ForUser(ctx, userID)
}

// All lists every order with its customer and product.
func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	return s.orders.AllWithRelations(ctx)
}

// UpdateStatus overwrites an order's status. Any text up to the column
// width is accepted.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) error {
	status = strings.TrimSpace(status)
	if utf8.RuneCountInString(status) > maxStatusLen {
		return invalid(fmt.Sprintf("The status may not be greater than %d characters.", maxStatusLen))
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// Delete removes an order; a missing order yields ErrNotFound.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.orders.Delete(ctx, id)
}
