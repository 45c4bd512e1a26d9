package promotions

import (
	"context"
	"fmt"

	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/clock"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/models"
)

// Service reads and updates promotions through the remote API.
type Service interface {
	ListActive(ctx context.Context) ([]models.Promotion, error)
	Update(ctx context.Context, update query.PromotionUpdate) (*models.Promotion, error)
}

type service struct {
	remote graphql.Executor
	clock  clock.Clock
}

// NewService wires the promotions service. A nil clock uses the wall clock.
func NewService(remote graphql.Executor, c clock.Clock) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote executor required")
	}
	return &service{remote: remote, clock: clock.OrSystem(c)}, nil
}

// ListActive asks the remote for promotions flagged active, then keeps those whose
// date window contains the current time. Neither check is assumed to imply the other.
func (s *service) ListActive(ctx context.Context) ([]models.Promotion, error) {
	req, err := query.Document("ActivePromotions", "promotions", query.Params{"isActive": true}, promotionSelection)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build promotions query")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	var recs []promotionRecord
	if _, err := graphql.DecodeField(data, "promotions", &recs); err != nil {
		return nil, err
	}
	promos, err := toPromotions(recs, s.clock)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	active := promos[:0]
	for _, promo := range promos {
		if promo.ActiveAt(now) {
			active = append(active, promo)
		}
	}
	return active, nil
}

func (s *service) Update(ctx context.Context, update query.PromotionUpdate) (*models.Promotion, error) {
	input, err := update.Input()
	if err != nil {
		return nil, err
	}
	req, err := query.Build(query.Shape{
		Kind:      query.KindMutation,
		Operation: "UpdatePromotion",
		Field:     "updatePromotion",
		Params:    query.Params{"id": update.ID, "input": input},
		Required:  []string{"id", "input"},
		InputType: "UpdatePromotionInput",
		Selection: promotionSelection,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build promotion mutation")
	}
	data, err := s.remote.Execute(ctx, req, graphql.TokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	var rec promotionRecord
	found, err := graphql.DecodeField(data, "updatePromotion", &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found").
			WithDetails(map[string]any{"id": update.ID})
	}
	promo, err := toPromotion(rec, s.clock)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}
