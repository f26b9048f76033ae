package core

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/baxromumarov/geode/internal/ai"
	"github.com/baxromumarov/geode/internal/geode"
	"github.com/baxromumarov/geode/internal/httpx"
)

type stubFetcher struct {
	page  httpx.Page
	err   error
	calls int
}

func (f *stubFetcher) FetchPage(ctx context.Context, rawURL string) (httpx.Page, error) {
	f.calls++
	return f.page, f.err
}

type stubClient struct {
	completion string
	err        error
	gotText    string
	calls      int
}

func (c *stubClient) AnalyzeContent(ctx context.Context, text string) (string, error) {
	c.calls++
	c.gotText = text
	return c.completion, c.err
}

func (c *stubClient) Provider() string { return "stub" }

func decode(t *testing.T, body json.RawMessage) geode.Response {
	t.Helper()
	var got geode.Response
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, body)
	}
	return got
}

func TestRun_PassesExtractedTextToModel(t *testing.T) {
	fetcher := &stubFetcher{page: httpx.Page{HTML: "<script>x</script><p>Hello   World</p>", Status: 200}}
	client := &stubClient{completion: `{"analysis":{"primary_topic":"Greetings"},"diffs":["d"]}`}

	body, err := NewGeodeService(fetcher, client, 3000).Run(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if client.gotText != "Hello World" {
		t.Errorf("unexpected model input %q", client.gotText)
	}
	if string(body) != `{"analysis":{"primary_topic":"Greetings"},"diffs":["d"]}` {
		t.Errorf("model JSON should pass through, got %s", body)
	}
}

func TestRun_FetchFailureDegradesToEmptyText(t *testing.T) {
	fetcher := &stubFetcher{err: &httpx.FetchError{Status: 500, Err: errors.New("status 500")}}
	client := &stubClient{completion: `{"diffs":[]}`}

	body, err := NewGeodeService(fetcher, client, 3000).Run(context.Background(), "https://down.example")
	if err != nil {
		t.Fatalf("fetch failure must not fail the run: %v", err)
	}
	if client.calls != 1 {
		t.Errorf("model should still be called once, got %d", client.calls)
	}
	if client.gotText != "" {
		t.Errorf("expected empty text, got %q", client.gotText)
	}
	if len(body) == 0 {
		t.Errorf("expected a body")
	}
}

func TestRun_TruncatesToCap(t *testing.T) {
	fetcher := &stubFetcher{page: httpx.Page{HTML: "<p>" + strings.Repeat("z", 100) + "</p>"}}
	client := &stubClient{completion: `{}`}

	if _, err := NewGeodeService(fetcher, client, 40).Run(context.Background(), "u"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(client.gotText) != 40 {
		t.Errorf("expected 40 characters, got %d", len(client.gotText))
	}
}

func TestRun_UnparseableCompletionUsesFallback(t *testing.T) {
	fetcher := &stubFetcher{page: httpx.Page{HTML: "<p>hi</p>"}}
	client := &stubClient{completion: "I think this site is about cats."}

	body, err := NewGeodeService(fetcher, client, 3000).Run(context.Background(), "u")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := decode(t, body)
	if !reflect.DeepEqual(got, geode.FallbackPayload()) {
		t.Errorf("got %+v, want fallback", got)
	}
}

func TestRun_MockClientIgnoresURL(t *testing.T) {
	for _, url := range []string{"https://a.example", "not even a url"} {
		fetcher := &stubFetcher{err: errors.New("unreachable")}
		body, err := NewGeodeService(fetcher, ai.NewMockClient(), 3000).Run(context.Background(), url)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if got := decode(t, body); !reflect.DeepEqual(got, geode.MockPayload()) {
			t.Errorf("%s: got %+v, want mock payload", url, got)
		}
	}
}

func TestRun_ModelErrorIsReturned(t *testing.T) {
	fetcher := &stubFetcher{page: httpx.Page{HTML: "<p>hi</p>"}}
	client := &stubClient{err: errors.New("upstream 503")}

	if _, err := NewGeodeService(fetcher, client, 3000).Run(context.Background(), "u"); err == nil {
		t.Errorf("expected model error to be returned")
	}
}
