package orders

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/stockdesk/internal/catalog"
	"github.com/angelmondragon/stockdesk/pkg/clock"
	"github.com/angelmondragon/stockdesk/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/models"
	"go.uber.org/multierr"
)

func toOrder(rec orderRecord, c clock.Clock) (models.Order, error) {
	if rec.ID == nil {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeDecode, "order record has no id")
	}
	order := models.Order{
		ID:           int64(*rec.ID),
		CustomerName: rec.CustomerName,
		// statuses the client does not know yet are kept verbatim
		Status:    enums.OrderStatus(strings.ToUpper(strings.TrimSpace(rec.Status))),
		Items:     make([]models.OrderItem, 0, len(rec.Items)),
		CreatedAt: rec.CreatedAt.Or(c),
		UpdatedAt: rec.UpdatedAt.Or(c),
	}
	for i, itemRec := range rec.Items {
		item, err := toOrderItem(itemRec, c)
		if err != nil {
			return models.Order{}, fmt.Errorf("order %d items[%d]: %w", order.ID, i, err)
		}
		order.Items = append(order.Items, item)
	}
	if rec.TotalPrice != nil {
		order.TotalPriceMinor = int64(*rec.TotalPrice)
	} else {
		order.RecomputeTotal()
	}
	return order, nil
}

func toOrderItem(rec itemRecord, c clock.Clock) (models.OrderItem, error) {
	if rec.ID == nil {
		return models.OrderItem{}, pkgerrors.New(pkgerrors.CodeDecode, "order item record has no id")
	}
	item := models.OrderItem{
		ID:             int64(*rec.ID),
		Quantity:       int(rec.Quantity),
		UnitPriceMinor: int64(rec.UnitPrice),
	}
	product, err := catalog.DecodeProduct(rec.Product, c)
	if err != nil {
		return models.OrderItem{}, err
	}
	item.Product = product
	switch {
	case rec.ProductID != nil:
		item.ProductID = int64(*rec.ProductID)
	case product != nil:
		item.ProductID = product.ID
	}
	return item, nil
}

func toOrders(recs []orderRecord, c clock.Clock) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(recs))
	var errs error
	for i, rec := range recs {
		order, err := toOrder(rec, c)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("orders[%d]: %w", i, err))
			continue
		}
		orders = append(orders, order)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDecode, errs, "decode orders")
	}
	return orders, nil
}
