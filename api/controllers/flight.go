package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/stockdesk/pkg/graphql"
)

// FlightKey identifies a read so identical concurrent requests can share one remote call.
// Requests made with different tokens never share a key.
func FlightKey(r *http.Request) string {
	sum := sha256.Sum256([]byte(graphql.TokenFromContext(r.Context())))
	return r.URL.Path + "?" + r.URL.Query().Encode() + "#" + hex.EncodeToString(sum[:8])
}

// Shared runs fn once per FlightKey among concurrent callers.
//
// fn receives the first caller's context stripped of its cancellation, so one caller going away
// does not fail the others; the remote client's own timeout still bounds the call. Each caller
// stops waiting when its own request context is done.
func Shared(r *http.Request, group *singleflight.Group, fn func(ctx context.Context) (any, error)) (any, error) {
	ctx := r.Context()
	detached := context.WithoutCancel(ctx)
	ch := group.DoChan(FlightKey(r), func() (any, error) {
		return fn(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
