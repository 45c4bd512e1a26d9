package orders

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/stockdesk/api/controllers"
	"github.com/angelmondragon/stockdesk/api/responses"
	"github.com/angelmondragon/stockdesk/api/validators"
	internalcatalog "github.com/angelmondragon/stockdesk/internal/catalog"
	internalorders "github.com/angelmondragon/stockdesk/internal/orders"
	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/logger"
	"github.com/angelmondragon/stockdesk/pkg/models"
)

// maxProductLookups bounds concurrent product fetches while pricing a new order.
const maxProductLookups = 4

type createOrderRequest struct {
	CustomerName string            `json:"customerName" validate:"required,max=200"`
	Items        []createOrderLine `json:"items" validate:"required,min=1,dive"`
}

type createOrderLine struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// List returns one page of orders for the query-string filters.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	var group singleflight.Group
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		opts, err := validators.ParseListOptions(r, query.OrderSorts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := controllers.Shared(r, &group, func(ctx context.Context) (any, error) {
			return svc.List(ctx, opts)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		id, err := validators.ParsePathID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Create prices each line from the catalog, then places the order.
func Create(svc internalorders.Service, catalog internalcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		selections, err := resolveSelections(r.Context(), catalog, req.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), internalorders.CreateOrderInput{
			CustomerName: req.CustomerName,
			Items:        selections,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func UpdateStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		id, err := validators.ParsePathID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
				WithDetails(map[string]any{"field": "status"}))
			return
		}
		order, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func Delete(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		id, err := validators.ParsePathID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// resolveSelections fetches every distinct product once and keeps the caller's line order.
func resolveSelections(ctx context.Context, catalog internalcatalog.Service, lines []createOrderLine) ([]models.Selection[models.Product], error) {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	products := make([]*models.Product, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxProductLookups)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := catalog.GetProduct(gctx, id)
			if err != nil {
				return err
			}
			products[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Product, len(ids))
	for i, id := range ids {
		byID[id] = *products[i]
	}
	out := make([]models.Selection[models.Product], 0, len(lines))
	for _, line := range lines {
		out = append(out, models.Selection[models.Product]{Item: byID[line.ProductID], Quantity: line.Quantity})
	}
	return out, nil
}
