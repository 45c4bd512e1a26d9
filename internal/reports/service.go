package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/clock"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/models"
)

// Service builds revenue reports from remote aggregates.
type Service interface {
	// Revenue returns the buckets for period between from and to, both inclusive dates.
	Revenue(ctx context.Context, input RevenueInput) (*Report, error)
}

// RevenueInput selects the report. Nil dates leave that side of the range open.
type RevenueInput struct {
	Period enums.ReportPeriod
	From   *time.Time
	To     *time.Time
}

// Report is a bucket series plus its totals.
type Report struct {
	Period            enums.ReportPeriod     `json:"period"`
	Buckets           []models.RevenueBucket `json:"buckets"`
	TotalRevenueMinor int64                  `json:"totalRevenue"`
	OrderCount        int                    `json:"orderCount"`
	TotalQuantity     int                    `json:"totalQuantity"`
}

type service struct {
	remote graphql.Executor
	clock  clock.Clock
}

// NewService wires the reports service. A nil clock uses the wall clock.
func NewService(remote graphql.Executor, c clock.Clock) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote executor required")
	}
	return &service{remote: remote, clock: clock.OrSystem(c)}, nil
}

func (s *service) Revenue(ctx context.Context, input RevenueInput) (*Report, error) {
	if !input.Period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid report period").
			WithDetails(map[string]any{"period": input.Period.String()})
	}
	if input.From != nil && input.To != nil && input.To.Before(*input.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from")
	}

	params := query.Params{"period": input.Period.String()}
	if input.From != nil {
		params["fromDate"] = query.FormatDate(*input.From)
	}
	if input.To != nil {
		params["toDate"] = query.FormatDate(query.InclusiveEnd(*input.To))
	}
	req, err := query.Build(query.Shape{
		Operation: "RevenueReport",
		Field:     "revenueReport",
		Params:    params,
		Required:  []string{"period"},
		Selection: bucketSelection,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build revenue query")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	var recs []bucketRecord
	if _, err := graphql.DecodeField(data, "revenueReport", &recs); err != nil {
		return nil, err
	}
	buckets, err := toBuckets(recs, input.Period, s.clock)
	if err != nil {
		return nil, err
	}
	if input.Period == enums.ReportPeriodWeekly {
		buckets = ReorganizeWeeks(buckets)
	}

	report := &Report{Period: input.Period, Buckets: buckets}
	for _, b := range buckets {
		report.TotalRevenueMinor += b.TotalRevenueMinor
		report.OrderCount += b.OrderCount
		report.TotalQuantity += b.TotalQuantity
	}
	return report, nil
}
