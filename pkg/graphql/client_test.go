package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/angelmondragon/stockdesk/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func newTestClient(t *testing.T, rt roundTripFunc, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: rt})}, opts...)
	client, err := NewClient("http://remote.test/graphql", opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestExecuteSendsDocumentAndBearerToken(t *testing.T) {
	var captured map[string]json.RawMessage
	var headers http.Header
	var url string

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		url = req.URL.String()
		headers = req.Header.Clone()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		return respond(http.StatusOK, `{"data":{"products":{"totalCount":"3"}}}`), nil
	})

	ctx := WithRequestID(context.Background(), "req-1")
	data, err := client.Execute(ctx, Request{
		Operation: "Products",
		Query:     "query Products($page: Int!) { products(page: $page) { totalCount } }",
		Variables: map[string]any{"page": 1},
	}, " token-123 ")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if url != "http://remote.test/graphql" {
		t.Fatalf("unexpected url %q", url)
	}
	if got := headers.Get("Authorization"); got != "Bearer token-123" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	if got := headers.Get("X-Request-Id"); got != "req-1" {
		t.Fatalf("unexpected request id %q", got)
	}
	if string(captured["variables"]) != `{"page":1}` {
		t.Fatalf("unexpected variables %s", captured["variables"])
	}
	if _, ok := captured["Operation"]; ok {
		t.Fatalf("operation name must not be sent")
	}
	if string(data) != `{"products":{"totalCount":"3"}}` {
		t.Fatalf("unexpected data %s", data)
	}
}

func TestExecuteOmitsVariablesAndAnonymousToken(t *testing.T) {
	var body string
	var auth string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
		auth = req.Header.Get("Authorization")
		return respond(http.StatusOK, `{"data":{}}`), nil
	})

	if _, err := client.Execute(context.Background(), Request{Query: "{ categories { id } }"}, ""); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if body != `{"query":"{ categories { id } }"}` {
		t.Fatalf("unexpected body %s", body)
	}
	if auth != "" {
		t.Fatalf("expected no authorization header, got %q", auth)
	}
}

func TestExecuteNon2xxIsTransportError(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusServiceUnavailable, "upstream down"), nil
	})

	_, err := client.Execute(context.Background(), Request{Query: "{ x }"}, "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	details, ok := typed.Details().(pkgerrors.TransportDetails)
	if !ok {
		t.Fatalf("expected transport details, got %T", typed.Details())
	}
	if details.Status != http.StatusServiceUnavailable || details.Body != "upstream down" {
		t.Fatalf("unexpected details %+v", details)
	}
}

func TestExecuteConnectionFailureIsTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, cause
	})

	_, err := client.Execute(context.Background(), Request{Query: "{ x }"}, "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}

func TestExecuteErrorsArrayIsProtocolErrorEvenWith200(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"data":{"products":null},"errors":[{"message":"Unknown argument"}]}`), nil
	})

	data, err := client.Execute(context.Background(), Request{Query: "{ x }"}, "")
	if data != nil {
		t.Fatalf("expected no data on protocol error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeProtocol {
		t.Fatalf("expected protocol error, got %v", err)
	}
	details := typed.Details().(pkgerrors.ProtocolDetails)
	if string(details.Errors) != `[{"message":"Unknown argument"}]` {
		t.Fatalf("expected raw errors to be attached, got %s", details.Errors)
	}
}

func TestExecuteEmptyErrorsArrayIsIgnored(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"data":{"ok":true},"errors":[]}`), nil
	})
	data, err := client.Execute(context.Background(), Request{Query: "{ ok }"}, "")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected data %s", data)
	}
}

func TestExecuteNeitherDataNorErrorsIsEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"data":null}`, ``} {
		client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, body), nil
		})
		data, err := client.Execute(context.Background(), Request{Query: "{ count }"}, "")
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", body, err)
		}
		if data != nil {
			t.Fatalf("body %q: expected nil data, got %s", body, data)
		}
	}
}

func TestExecuteMalformedBodyIsDecodeError(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"data":`), nil
	})
	_, err := client.Execute(context.Background(), Request{Query: "{ x }"}, "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestExecuteRequiresQuery(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	_, err := client.Execute(context.Background(), Request{Query: "  "}, "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExecuteRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, `{"errors":[{"message":"nope"}]}`), nil
	}, WithMetrics(metrics.NewRemoteMetrics(reg)))

	_, _ = client.Execute(context.Background(), Request{Operation: "Orders", Query: "{ x }"}, "")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() != "remote_request_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["operation"] == "Orders" && labels["outcome"] == metrics.OutcomeProtocol && m.GetCounter().GetValue() == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected protocol outcome to be counted")
	}
}

func TestExecuteHonoursCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithRequestTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Execute(context.Background(), Request{Query: "{ x }"}, "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeTransport) {
		t.Fatalf("expected transport error on timeout, got %v", err)
	}
}

func TestProbeJudgesStatusOnly(t *testing.T) {
	var body string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
		return respond(http.StatusOK, `{"errors":[{"message":"ignored"}]}`), nil
	})
	if err := client.Probe(context.Background()); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if body != `{"query":"{__typename}"}` {
		t.Fatalf("unexpected probe body %s", body)
	}

	failing := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusBadGateway, ""), nil
	})
	if err := failing.Probe(context.Background()); !pkgerrors.IsCode(err, pkgerrors.CodeTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestProbeTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithProbeTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Probe(context.Background()); err == nil {
		t.Fatal("expected probe to time out")
	}
}

func TestNewClientValidatesEndpoint(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected empty endpoint to fail")
	}
	if _, err := NewClient("not a url"); err == nil {
		t.Fatal("expected relative endpoint to fail")
	}
}

func TestExecuteFallsBackToDefaultToken(t *testing.T) {
	var auth string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		auth = req.Header.Get("Authorization")
		return respond(http.StatusOK, `{"data":{}}`), nil
	}, WithDefaultToken("service-token"))

	if _, err := client.Execute(context.Background(), Request{Query: "{ x }"}, ""); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if auth != "Bearer service-token" {
		t.Fatalf("expected default token, got %q", auth)
	}
	if _, err := client.Execute(context.Background(), Request{Query: "{ x }"}, "caller"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if auth != "Bearer caller" {
		t.Fatalf("expected caller token to win, got %q", auth)
	}
}
