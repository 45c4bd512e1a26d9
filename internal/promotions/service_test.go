package promotions

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/clock"
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

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestListActiveKeepsBothChecks(t *testing.T) {
	exec := &stubExecutor{body: `{"promotions":[
		{"id":1,"name":"open","discountPercent":"10","isActive":true,"startAt":null,"endAt":null,"productIds":["4",5]},
		{"id":2,"name":"window","discountPercent":12.5,"isActive":true,"startAt":"2024-03-01T00:00:00Z","endAt":"1711843200000"},
		{"id":3,"name":"future","discountPercent":5,"isActive":true,"startAt":"2024-04-01"},
		{"id":4,"name":"expired","discountPercent":5,"isActive":true,"endAt":"2024-03-01T00:00:00Z"},
		{"id":5,"name":"stale flag","discountPercent":5,"isActive":false}
	]}`}
	svc, err := NewService(exec, clock.Fixed(now))
	require.NoError(t, err)

	promos, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, promos, 2)
	assert.Equal(t, "open", promos[0].Name)
	assert.Equal(t, []int64{4, 5}, promos[0].ProductIDs)
	assert.Nil(t, promos[0].StartAt)
	assert.Equal(t, "window", promos[1].Name)
	assert.Equal(t, 12.5, promos[1].DiscountPercent)

	assert.Equal(t, true, exec.requests[0].Variables["isActive"])
	assert.Contains(t, exec.requests[0].Query, "$isActive: Boolean")
}

func TestUpdateSendsExplicitNull(t *testing.T) {
	exec := &stubExecutor{body: `{"updatePromotion":{"id":9,"name":"Spring","discountPercent":"15","isActive":true,"startAt":null,"endAt":null}}`}
	svc, err := NewService(exec, clock.Fixed(now))
	require.NoError(t, err)

	promo, err := svc.Update(context.Background(), query.PromotionUpdate{
		ID:      9,
		StartAt: query.Null[time.Time](),
		EndAt:   query.Null[time.Time](),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), promo.ID)
	assert.Nil(t, promo.EndAt)

	raw, err := json.Marshal(exec.requests[0].Variables)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9,"input":{"startAt":null,"endAt":null}}`, string(raw))
}

func TestUpdateValidatesBeforeCalling(t *testing.T) {
	exec := &stubExecutor{}
	svc, err := NewService(exec, nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), query.PromotionUpdate{ID: 9})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, exec.requests)
}

func TestUpdateNotFound(t *testing.T) {
	exec := &stubExecutor{body: `{"updatePromotion":null}`}
	svc, err := NewService(exec, nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), query.PromotionUpdate{ID: 9, Name: query.Ptr("x")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
