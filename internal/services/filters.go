package services

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidFilter marks malformed filter input. Handlers translate it into
// a 400 instead of silently dropping the parameter.
var ErrInvalidFilter = errors.New("invalid filter parameter")

// ProductFilters is the typed bag of optional listing filters. A zero field
// means the corresponding stage is skipped.
type ProductFilters struct {
	Term     string
	MinPrice *float64
	MaxPrice *float64
	ColorIDs []uint
	SizeIDs  []uint
}

// ParseProductFilters reads `term`, `min_price`, `max_price`, `colors` and
// `size` query parameters. Color and size lists are comma-separated and may
// be wrapped in brackets. Malformed numbers fail the request.
func ParseProductFilters(query url.Values) (ProductFilters, error) {
	var filters ProductFilters

	filters.Term = query.Get("term")

	if raw := query.Get("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ProductFilters{}, errors.Join(ErrInvalidFilter, err)
		}
		filters.MinPrice = &value
	}

	if raw := query.Get("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ProductFilters{}, errors.Join(ErrInvalidFilter, err)
		}
		filters.MaxPrice = &value
	}

	colorIDs, err := parseIDList(query.Get("colors"))
	if err != nil {
		return ProductFilters{}, err
	}
	filters.ColorIDs = colorIDs

	sizeIDs, err := parseIDList(query.Get("size"))
	if err != nil {
		return ProductFilters{}, err
	}
	filters.SizeIDs = sizeIDs

	return filters, nil
}

// parseIDList splits a comma-separated id list, stripping the optional
// bracket wrapping the storefront sends ("[1,2]" and "1,2" are equivalent).
func parseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, errors.Join(ErrInvalidFilter, err)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// Empty reports whether no stage would restrict the result.
func (f ProductFilters) Empty() bool {
	return f.Term == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		len(f.ColorIDs) == 0 && len(f.SizeIDs) == 0
}

type filterStage func(*gorm.DB) *gorm.DB

// Apply reduces the candidate query through the filter stages in a fixed
// order. Each stage narrows the set and none mutates persisted state; the
// caller is responsible for deduplicating the multi-valued joins (the
// catalog groups by product id).
func (f ProductFilters) Apply(db *gorm.DB) *gorm.DB {
	for _, stage := range f.stages() {
		db = stage(db)
	}
	return db
}

func (f ProductFilters) stages() []filterStage {
	return []filterStage{
		f.termStage,
		f.minPriceStage,
		f.maxPriceStage,
		f.colorStage,
		f.sizeStage,
	}
}

func (f ProductFilters) termStage(db *gorm.DB) *gorm.DB {
	if f.Term == "" {
		return db
	}
	needle := "%" + strings.ToLower(f.Term) + "%"
	return db.Where("LOWER(products.title) LIKE ? OR LOWER(products.description) LIKE ?", needle, needle)
}

func (f ProductFilters) minPriceStage(db *gorm.DB) *gorm.DB {
	if f.MinPrice == nil {
		return db
	}
	return db.Where("products.price >= ?", *f.MinPrice)
}

func (f ProductFilters) maxPriceStage(db *gorm.DB) *gorm.DB {
	if f.MaxPrice == nil {
		return db
	}
	return db.Where("products.price <= ?", *f.MaxPrice)
}

func (f ProductFilters) colorStage(db *gorm.DB) *gorm.DB {
	if len(f.ColorIDs) == 0 {
		return db
	}
	return db.
		Joins("JOIN product_colors ON product_colors.product_id = products.id").
		Where("product_colors.color_id IN ?", f.ColorIDs)
}

func (f ProductFilters) sizeStage(db *gorm.DB) *gorm.DB {
	if len(f.SizeIDs) == 0 {
		return db
	}
	return db.
		Joins("JOIN product_sizes ON product_sizes.product_id = products.id").
		Where("product_sizes.size_id IN ?", f.SizeIDs)
}
