package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/stockdesk/api/controllers"
	"github.com/angelmondragon/stockdesk/api/responses"
	"github.com/angelmondragon/stockdesk/api/validators"
	internalcatalog "github.com/angelmondragon/stockdesk/internal/catalog"
	"github.com/angelmondragon/stockdesk/internal/query"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/logger"
	"github.com/angelmondragon/stockdesk/pkg/models"
	"github.com/angelmondragon/stockdesk/pkg/pagination"
)

// productView adds the resolved display image to a product.
type productView struct {
	models.Product
	PrimaryImageURL string `json:"primaryImageUrl"`
}

type productListView struct {
	Items      []productView    `json:"items"`
	Pagination pagination.State `json:"pagination"`
}

func viewOf(p models.Product) productView {
	return productView{Product: p, PrimaryImageURL: p.PrimaryImageURL()}
}

func listViewOf(list *internalcatalog.ProductList) productListView {
	out := productListView{Items: make([]productView, 0, len(list.Items)), Pagination: list.Pagination}
	for _, p := range list.Items {
		out.Items = append(out.Items, viewOf(p))
	}
	return out
}

// ListProducts returns one page of products for the query-string filters.
func ListProducts(svc internalcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	var group singleflight.Group
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		opts, err := validators.ParseListOptions(r, query.ProductSorts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opts.Status = nil

		list, err := controllers.Shared(r, &group, func(ctx context.Context) (any, error) {
			page, err := svc.ListProducts(ctx, opts)
			if err != nil {
				return nil, err
			}
			return listViewOf(page), nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetProduct(svc internalcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(*product))
	}
}

func ListCategories(svc internalcatalog.Service, logg *logger.Logger) http.HandlerFunc {
	var group singleflight.Group
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		categories, err := controllers.Shared(r, &group, func(ctx context.Context) (any, error) {
			return svc.ListCategories(ctx)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}
