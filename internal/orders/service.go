package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/clock"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/models"
	"github.com/angelmondragon/stockdesk/pkg/pagination"
)

// Service reads and changes orders through the remote API.
type Service interface {
	List(ctx context.Context, opts query.Options) (*OrderList, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

// OrderList is one page of orders.
type OrderList struct {
	Items      []models.Order   `json:"items"`
	Pagination pagination.State `json:"pagination"`
}

// CreateOrderInput holds the customer and the selected products.
// Each line is priced at the product's selling price.
type CreateOrderInput struct {
	CustomerName string
	Items        []models.Selection[models.Product]
}

type service struct {
	remote graphql.Executor
	clock  clock.Clock
}

// NewService wires the orders service. A nil clock uses the wall clock.
func NewService(remote graphql.Executor, c clock.Clock) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote executor required")
	}
	return &service{remote: remote, clock: clock.OrSystem(c)}, nil
}

func (s *service) List(ctx context.Context, opts query.Options) (*OrderList, error) {
	opts.CategoryID = nil
	opts.MinPrice = nil
	opts.MaxPrice = nil

	page, err := s.fetchPage(ctx, opts)
	if err != nil {
		return nil, err
	}
	state := pagination.Compute(int(page.TotalCount), opts.PageSize, opts.Page)
	if state.CurrentPage != opts.Page && state.TotalCount > 0 {
		opts.Page = state.CurrentPage
		if page, err = s.fetchPage(ctx, opts); err != nil {
			return nil, err
		}
		state = pagination.Compute(int(page.TotalCount), opts.PageSize, opts.Page)
	}

	orders, err := toOrders(page.Items, s.clock)
	if err != nil {
		return nil, err
	}
	return &OrderList{Items: orders, Pagination: state}, nil
}

func (s *service) fetchPage(ctx context.Context, opts query.Options) (orderPage, error) {
	params, err := query.Compose(opts, query.OrderSorts)
	if err != nil {
		return orderPage{}, err
	}
	req, err := query.Document("Orders", "orders", params, pageSelection)
	if err != nil {
		return orderPage{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build orders query")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return orderPage{}, err
	}
	var page orderPage
	if _, err := graphql.DecodeField(data, "orders", &page); err != nil {
		return orderPage{}, err
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Order, error) {
	if id < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.single(ctx, query.Shape{
		Operation: "Order",
		Field:     "order",
		Params:    query.Params{"id": id},
		Required:  []string{"id"},
		Selection: orderSelection,
	}, id)
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "select at least one product")
	}
	lines := make([]map[string]any, 0, len(input.Items))
	for i, sel := range input.Items {
		if sel.Item.ID < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected product has no id").
				WithDetails(map[string]any{"index": i})
		}
		if sel.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
				WithDetails(map[string]any{"index": i, "productId": sel.Item.ID})
		}
		lines = append(lines, map[string]any{
			"productId": sel.Item.ID,
			"quantity":  sel.Quantity,
			"unitPrice": sel.Item.SellingPriceMinor,
		})
	}

	return s.single(ctx, query.Shape{
		Kind:      query.KindMutation,
		Operation: "CreateOrder",
		Field:     "createOrder",
		Params: query.Params{"input": map[string]any{
			"customerName": customer,
			"items":        lines,
		}},
		Required:  []string{"input"},
		InputType: "CreateOrderInput",
		Selection: orderSelection,
	}, 0)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) (*models.Order, error) {
	if id < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": status.String()})
	}
	return s.single(ctx, query.Shape{
		Kind:      query.KindMutation,
		Operation: "UpdateOrderStatus",
		Field:     "updateOrderStatus",
		Params:    query.Params{"id": id, "status": status.String()},
		Required:  []string{"id", "status"},
		Selection: orderSelection,
	}, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	req, err := query.Build(query.Shape{
		Kind:      query.KindMutation,
		Operation: "DeleteOrder",
		Field:     "deleteOrder",
		Params:    query.Params{"id": id},
		Required:  []string{"id"},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build delete order mutation")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return err
	}
	var deleted bool
	found, err := graphql.DecodeField(data, "deleteOrder", &deleted)
	if err != nil {
		return err
	}
	if !found || !deleted {
		return notFound(id)
	}
	return nil
}

// single runs a document whose field returns one order; a null result is not found.
func (s *service) single(ctx context.Context, shape query.Shape, id int64) (*models.Order, error) {
	req, err := query.Build(shape)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build "+shape.Field+" document")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	var rec orderRecord
	found, err := graphql.DecodeField(data, shape.Field, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		if id == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeProtocol, "remote returned no order")
		}
		return nil, notFound(id)
	}
	order, err := toOrder(rec, s.clock)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func notFound(id int64) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "order not found").WithDetails(map[string]any{"id": id})
}
