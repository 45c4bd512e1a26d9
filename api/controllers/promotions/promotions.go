package promotions

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/stockdesk/api/controllers"
	"github.com/angelmondragon/stockdesk/api/responses"
	"github.com/angelmondragon/stockdesk/api/validators"
	internalpromotions "github.com/angelmondragon/stockdesk/internal/promotions"
	"github.com/angelmondragon/stockdesk/internal/query"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

func ListActive(svc internalpromotions.Service, logg *logger.Logger) http.HandlerFunc {
	var group singleflight.Group
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotions service unavailable"))
			return
		}
		promos, err := controllers.Shared(r, &group, func(ctx context.Context) (any, error) {
			return svc.ListActive(ctx)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promos)
	}
}

// Update applies a partial update. Sending null for startAt or endAt clears it.
func Update(svc internalpromotions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotions service unavailable"))
			return
		}
		id, err := validators.ParsePathID(chi.URLParam(r, "promotionId"), "promotionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var update query.PromotionUpdate
		if err := validators.DecodeJSON(r, &update); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		update.ID = id

		promo, err := svc.Update(r.Context(), update)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, promo)
	}
}
