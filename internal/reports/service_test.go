package reports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/angelmondragon/stockdesk/pkg/clock"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExecutor struct {
	requests []graphql.Request
	body     string
}

func (s *stubExecutor) Execute(ctx context.Context, req graphql.Request, token string) (json.RawMessage, error) {
	s.requests = append(s.requests, req)
	return json.RawMessage(s.body), nil
}

const duplicatedWeeks = `{"revenueReport":[
	{"periodStart":"2024-01-08T00:00:00Z","periodEnd":"2024-01-15T00:00:00Z","totalRevenue":"2000","orderCount":2,"averageOrderValue":"1000","totalQuantity":"4",
	 "productQuantities":[{"productId":"3","productName":"Lamp","quantity":"4"}]},
	{"periodStart":"1704067200000","periodEnd":"1704672000000","totalRevenue":1000.9,"orderCount":"1","averageOrderValue":1000,"totalQuantity":1},
	{"periodStart":"2024-01-08T00:00:00Z","periodEnd":"2024-01-15T00:00:00Z","totalRevenue":"2000","orderCount":2,"averageOrderValue":"1000","totalQuantity":"4"}
]}`

func TestRevenueReorganizesWeeklySeries(t *testing.T) {
	exec := &stubExecutor{body: duplicatedWeeks}
	svc, err := NewService(exec, clock.Fixed(time.Unix(0, 0)))
	require.NoError(t, err)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	report, err := svc.Revenue(context.Background(), RevenueInput{Period: enums.ReportPeriodWeekly, From: &from, To: &to})
	require.NoError(t, err)

	require.Len(t, report.Buckets, 2)
	assert.Equal(t, from, report.Buckets[0].PeriodStart)
	assert.Equal(t, 1, report.Buckets[0].Number)
	assert.Equal(t, int64(1000), report.Buckets[0].TotalRevenueMinor)
	assert.Equal(t, 2, report.Buckets[1].Number)
	require.Len(t, report.Buckets[1].ProductQuantities, 1)
	assert.Equal(t, int64(3), report.Buckets[1].ProductQuantities[0].ProductID)
	assert.Equal(t, int64(3000), report.TotalRevenueMinor)
	assert.Equal(t, 3, report.OrderCount)

	vars := exec.requests[0].Variables
	assert.Equal(t, "WEEKLY", vars["period"])
	assert.Equal(t, "2024-01-01", vars["fromDate"])
	assert.Equal(t, "2024-01-15", vars["toDate"])
	assert.Contains(t, exec.requests[0].Query, "$period: ReportPeriod!")
}

func TestRevenuePassesOtherPeriodsThrough(t *testing.T) {
	exec := &stubExecutor{body: duplicatedWeeks}
	svc, err := NewService(exec, nil)
	require.NoError(t, err)

	report, err := svc.Revenue(context.Background(), RevenueInput{Period: enums.ReportPeriodDaily})
	require.NoError(t, err)

	require.Len(t, report.Buckets, 3)
	assert.Equal(t, report.Buckets[0].PeriodStart, report.Buckets[2].PeriodStart)
	assert.Equal(t, []int{1, 2, 3}, []int{report.Buckets[0].Number, report.Buckets[1].Number, report.Buckets[2].Number})
	assert.NotContains(t, exec.requests[0].Variables, "fromDate")
}

func TestRevenueRejectsUnparseablePeriodStart(t *testing.T) {
	exec := &stubExecutor{body: `{"revenueReport":[{"periodStart":"soon","totalRevenue":1}]}`}
	svc, err := NewService(exec, nil)
	require.NoError(t, err)

	_, err = svc.Revenue(context.Background(), RevenueInput{Period: enums.ReportPeriodWeekly})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDecode))
}

func TestRevenueValidatesInput(t *testing.T) {
	exec := &stubExecutor{}
	svc, err := NewService(exec, nil)
	require.NoError(t, err)

	_, err = svc.Revenue(context.Background(), RevenueInput{Period: "HOURLY"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err = svc.Revenue(context.Background(), RevenueInput{Period: enums.ReportPeriodMonthly, From: &from, To: &to})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, exec.requests)
}

func TestRevenueEmptyReply(t *testing.T) {
	exec := &stubExecutor{body: `{}`}
	svc, err := NewService(exec, nil)
	require.NoError(t, err)

	report, err := svc.Revenue(context.Background(), RevenueInput{Period: enums.ReportPeriodYearly})
	require.NoError(t, err)
	assert.Empty(t, report.Buckets)
}
