package promotions

import (
	"fmt"

	"github.com/angelmondragon/stockdesk/pkg/clock"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/flex"
	"github.com/angelmondragon/stockdesk/pkg/models"
	"go.uber.org/multierr"
)

func toPromotion(rec promotionRecord, c clock.Clock) (models.Promotion, error) {
	if rec.ID == nil {
		return models.Promotion{}, pkgerrors.New(pkgerrors.CodeDecode, "promotion record has no id")
	}
	promo := models.Promotion{
		ID:              int64(*rec.ID),
		Name:            rec.Name,
		DiscountPercent: float64(rec.DiscountPercent),
		StartAt:         flex.OptionalTime(rec.StartAt, c),
		EndAt:           flex.OptionalTime(rec.EndAt, c),
		IsActive:        rec.IsActive,
		ProductIDs:      make([]int64, 0, len(rec.ProductIDs)),
	}
	for _, id := range rec.ProductIDs {
		promo.ProductIDs = append(promo.ProductIDs, int64(id))
	}
	return promo, nil
}

func toPromotions(recs []promotionRecord, c clock.Clock) ([]models.Promotion, error) {
	promos := make([]models.Promotion, 0, len(recs))
	var errs error
	for i, rec := range recs {
		promo, err := toPromotion(rec, c)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("promotions[%d]: %w", i, err))
			continue
		}
		promos = append(promos, promo)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, errs, "decode promotions")
	}
	return promos, nil
}
