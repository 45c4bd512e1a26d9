package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/angelmondragon/stockdesk/internal/query"
	"github.com/angelmondragon/stockdesk/pkg/clock"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// fakeRemote serves the orders list and delete documents from an in-memory table.
type fakeRemote struct {
	mu  sync.Mutex
	ids []int64
}

func newFakeRemote(n int) *fakeRemote {
	f := &fakeRemote{}
	for i := 1; i <= n; i++ {
		f.ids = append(f.ids, int64(i))
	}
	return f
}

func (f *fakeRemote) roundTrip(req *http.Request) (*http.Response, error) {
	var body struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	raw, _ := io.ReadAll(req.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var reply string
	switch {
	case strings.HasPrefix(body.Query, "query Orders"):
		page := int(body.Variables["page"].(float64))
		size := int(body.Variables["pageSize"].(float64))
		start := (page - 1) * size
		var items []string
		for i := start; i < start+size && i < len(f.ids); i++ {
			items = append(items, fmt.Sprintf(`{"id":"%d","customerName":"c%d","status":"PENDING","totalPrice":"100","items":[]}`, f.ids[i], f.ids[i]))
		}
		reply = fmt.Sprintf(`{"data":{"orders":{"totalCount":"%d","items":[%s]}}}`, len(f.ids), strings.Join(items, ","))
	case strings.HasPrefix(body.Query, "mutation DeleteOrder"):
		id, _ := body.Variables["id"].(float64)
		deleted := false
		for i, existing := range f.ids {
			if existing == int64(id) {
				f.ids = append(f.ids[:i], f.ids[i+1:]...)
				deleted = true
				break
			}
		}
		reply = fmt.Sprintf(`{"data":{"deleteOrder":%t}}`, deleted)
	default:
		reply = `{"errors":[{"message":"unknown operation"}]}`
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(reply)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestOrdersPagingSurvivesDelete(t *testing.T) {
	remote := newFakeRemote(25)
	client, err := graphql.NewClient("http://remote.test/graphql",
		graphql.WithHTTPClient(&http.Client{Transport: roundTripFunc(remote.roundTrip)}))
	require.NoError(t, err)

	svc, err := NewService(client, clock.Fixed(fixedNow))
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.List(ctx, query.Options{Page: 1, PageSize: 10})
	require.NoError(t, err)
	if first.Pagination.TotalPages != 3 || !first.Pagination.HasNext || first.Pagination.HasPrev {
		t.Fatalf("unexpected first page %+v", first.Pagination)
	}
	if len(first.Items) != 10 {
		t.Fatalf("expected 10 orders, got %d", len(first.Items))
	}

	require.NoError(t, svc.Delete(ctx, first.Items[0].ID))

	third, err := svc.List(ctx, query.Options{Page: 3, PageSize: 10})
	require.NoError(t, err)
	if third.Pagination.TotalCount != 24 || third.Pagination.TotalPages != 3 || third.Pagination.CurrentPage != 3 {
		t.Fatalf("unexpected third page %+v", third.Pagination)
	}
	if third.Pagination.HasNext || !third.Pagination.HasPrev {
		t.Fatalf("unexpected navigation flags %+v", third.Pagination)
	}
	if len(third.Items) != 4 {
		t.Fatalf("expected 4 orders on the last page, got %d", len(third.Items))
	}
}

func TestOrdersPageClampsAfterShrink(t *testing.T) {
	remote := newFakeRemote(21)
	client, err := graphql.NewClient("http://remote.test/graphql",
		graphql.WithHTTPClient(&http.Client{Transport: roundTripFunc(remote.roundTrip)}))
	require.NoError(t, err)
	svc, err := NewService(client, nil)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 21))

	list, err := svc.List(ctx, query.Options{Page: 3, PageSize: 10})
	require.NoError(t, err)
	if list.Pagination.CurrentPage != 2 || list.Pagination.TotalPages != 2 || len(list.Items) != 10 {
		t.Fatalf("expected clamp to page 2 with 10 items, got %+v (%d items)", list.Pagination, len(list.Items))
	}
}
