// Package catalogfile supplies the storefront catalog from a YAML file,
// falling back to the catalog compiled into the binary.
package catalogfile

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

var _ port.CatalogSource = (*Source)(nil)

var ErrInvalidPrice = errors.New("invalid price")

type Source struct {
	path string
}

// New returns a source reading path. An empty path selects the
// embedded default catalog.
func New(path string) Source {
	return Source{path}
}

func (s Source) LoadCatalog(
	ctx context.Context,
) ([]domain.Product, []string, error) {
	const op = "Source.LoadCatalog"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	products, categories, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog loaded", "source", s.name(), "nProducts", len(products))
	return products, categories, nil
}

func (s Source) read() ([]byte, error) {
	if s.path == "" {
		return defaultCatalog, nil
	}
	return os.ReadFile(s.path)
}

func (s Source) name() string {
	if s.path == "" {
		return "embedded"
	}
	return s.path
}

// Decode parses a YAML catalog document.
func Decode(data []byte) ([]domain.Product, []string, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		return nil, nil, err
	}

	products := make([]domain.Product, 0, len(f.Products))
	for _, p := range f.Products {
		dp, err := toDomain(p)
		if err != nil {
			return nil, nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		products = append(products, dp)
	}
	return products, f.Categories, nil
}

func toDomain(p product) (domain.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %q", ErrInvalidPrice, p.Price)
	}

	dp := domain.Product{
		ID:              p.ID,
		Name:            p.Name,
		Price:           price,
		Rating:          p.Rating,
		ReviewCount:     p.Reviews,
		ImageRef:        p.Image,
		Category:        p.Category,
		IsNew:           p.IsNew,
		IsTrending:      p.IsTrending,
		DiscountPercent: p.Discount,
		Description:     p.Description,
		Features:        p.Features,
		StockCount:      p.InStock,
		Brand:           p.Brand,
		Colors:          p.Colors,
	}

	if p.OriginalPrice != "" {
		orig, err := decimal.NewFromString(p.OriginalPrice)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%w: %q", ErrInvalidPrice, p.OriginalPrice)
		}
		dp.OriginalPrice = &orig
	}
	return dp, nil
}
