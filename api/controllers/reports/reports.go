package reports

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/stockdesk/api/controllers"
	"github.com/angelmondragon/stockdesk/api/responses"
	"github.com/angelmondragon/stockdesk/api/validators"
	internalreports "github.com/angelmondragon/stockdesk/internal/reports"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

// Revenue serves ?period=daily|weekly|monthly|yearly&from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both dates are inclusive.
func Revenue(svc internalreports.Service, logg *logger.Logger) http.HandlerFunc {
	var group singleflight.Group
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}
		raw := strings.TrimSpace(r.URL.Query().Get("period"))
		if raw == "" {
			raw = string(enums.ReportPeriodDaily)
		}
		period, err := enums.ParseReportPeriod(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid report period").
				WithDetails(map[string]any{"field": "period"}))
			return
		}
		from, err := validators.ParseOptionalDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseOptionalDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := controllers.Shared(r, &group, func(ctx context.Context) (any, error) {
			return svc.Revenue(ctx, internalreports.RevenueInput{Period: period, From: from, To: to})
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
