package reports

import (
	"fmt"

	"github.com/angelmondragon/stockdesk/pkg/clock"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/models"
	"go.uber.org/multierr"
)

// toBucket maps one bucket. periodStart must parse: it identifies the bucket, so the
// clock fallback used for display timestamps would collapse distinct buckets.
func toBucket(rec bucketRecord, period enums.ReportPeriod, c clock.Clock) (models.RevenueBucket, error) {
	if !rec.PeriodStart.Valid() {
		return models.RevenueBucket{}, pkgerrors.New(pkgerrors.CodeDecode, "bucket has no usable periodStart")
	}
	bucket := models.RevenueBucket{
		Period:                 period,
		PeriodStart:            rec.PeriodStart.Or(c),
		PeriodEnd:              rec.PeriodEnd.Or(c),
		TotalRevenueMinor:      int64(rec.TotalRevenue),
		OrderCount:             int(rec.OrderCount),
		AverageOrderValueMinor: int64(rec.AverageOrderValue),
		TotalQuantity:          int(rec.TotalQuantity),
		ProductQuantities:      make([]models.ProductQuantity, 0, len(rec.ProductQuantities)),
	}
	for i, pq := range rec.ProductQuantities {
		if pq.ProductID == nil {
			return models.RevenueBucket{}, fmt.Errorf("productQuantities[%d]: %w", i,
				pkgerrors.New(pkgerrors.CodeDecode, "product quantity has no productId"))
		}
		bucket.ProductQuantities = append(bucket.ProductQuantities, models.ProductQuantity{
			ProductID:   int64(*pq.ProductID),
			ProductName: pq.ProductName,
			Quantity:    int(pq.Quantity),
		})
	}
	return bucket, nil
}

// toBuckets maps a series in the order received and numbers it 1..N.
func toBuckets(recs []bucketRecord, period enums.ReportPeriod, c clock.Clock) ([]models.RevenueBucket, error) {
	buckets := make([]models.RevenueBucket, 0, len(recs))
	var errs error
	for i, rec := range recs {
		bucket, err := toBucket(rec, period, c)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("buckets[%d]: %w", i, err))
			continue
		}
		bucket.Number = len(buckets) + 1
		buckets = append(buckets, bucket)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, errs, "decode revenue buckets")
	}
	return buckets, nil
}
