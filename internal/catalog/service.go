package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/clock"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/models"
	"github.com/angelmondragon/stockdesk/pkg/pagination"
)

// Service reads the product catalog from the remote API.
type Service interface {
	ListProducts(ctx context.Context, opts query.Options) (*ProductList, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// ProductList is one page of products.
type ProductList struct {
	Items      []models.Product `json:"items"`
	Pagination pagination.State `json:"pagination"`
}

type service struct {
	remote graphql.Executor
	clock  clock.Clock
}

// NewService wires the catalog service. A nil clock uses the wall clock.
func NewService(remote graphql.Executor, c clock.Clock) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote executor required")
	}
	return &service{remote: remote, clock: clock.OrSystem(c)}, nil
}

func (s *service) ListProducts(ctx context.Context, opts query.Options) (*ProductList, error) {
	opts.Status = nil
	page, err := s.fetchPage(ctx, opts)
	if err != nil {
		return nil, err
	}
	state := pagination.Compute(int(page.TotalCount), opts.PageSize, opts.Page)
	if state.CurrentPage != opts.Page && state.TotalCount > 0 {
		// the requested page fell out of range; fetch the clamped one instead
		opts.Page = state.CurrentPage
		if page, err = s.fetchPage(ctx, opts); err != nil {
			return nil, err
		}
		state = pagination.Compute(int(page.TotalCount), opts.PageSize, opts.Page)
	}

	products, err := toProducts(page.Items, s.clock)
	if err != nil {
		return nil, err
	}
	return &ProductList{Items: products, Pagination: state}, nil
}

func (s *service) fetchPage(ctx context.Context, opts query.Options) (productPage, error) {
	params, err := query.Compose(opts, query.ProductSorts)
	if err != nil {
		return productPage{}, err
	}
	req, err := query.Document("Products", "products", params, productPageSelection)
	if err != nil {
		return productPage{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build products query")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return productPage{}, err
	}
	var page productPage
	if _, err := graphql.DecodeField(data, "products", &page); err != nil {
		return productPage{}, err
	}
	return page, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if id < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	req, err := query.Build(query.Shape{
		Operation: "Product",
		Field:     "product",
		Params:    query.Params{"id": id},
		Required:  []string{"id"},
		Selection: ProductSelection,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build product query")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	var rec productRecord
	found, err := graphql.DecodeField(data, "product", &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"id": id})
	}
	p, err := toProduct(rec, s.clock)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	req, err := query.Document("Categories", "categories", nil, CategorySelection)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build categories query")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	var recs []categoryRecord
	if _, err := graphql.DecodeField(data, "categories", &recs); err != nil {
		return nil, err
	}
	return toCategories(recs)
}
