package preview

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/profile"
	"github.com/goliatone/go-formhtml/pkg/testsupport"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	store, err := formdef.LoadFS(nil)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	store.Add(formdef.Definition{ID: "contact", Title: "Contact <Us>", Fields: []formdef.Field{
		{Label: "Name", Name: "Name"},
		{Label: "State", Name: "State", OptionList: "state"},
	}})
	store.Add(formdef.Definition{ID: "locked", Profile: "locked", Fields: []formdef.Field{{Label: "Code", Name: "Code"}}})
	store.Add(formdef.Definition{ID: "broken", Fields: []formdef.Field{{Kind: "mystery", Name: "X"}}})

	profiles, err := profile.Parse([]byte(`
profiles:
  locked:
    postArray: Record
optionLists:
  state:
    - {value: CA, label: California}
`), "inline.yaml")
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}

	base := []Option{
		WithProfiles(profiles),
		WithBuilderOptions(
			fragment.WithClock(testsupport.FixedClock(time.Time{})),
			fragment.WithRandomSuffix(testsupport.FixedSuffix("abcd1234")),
		),
	}
	srv, err := New(store, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, target string) (int, string) {
	t.Helper()
	resp, err := http.Get(target)
	if err != nil {
		t.Fatalf("get %s: %v", target, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestServer_RendersForm(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts.URL+"/forms/contact?Name=Ada")
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, body)
	}
	testsupport.AssertContains(t, body,
		"<title>Contact &lt;Us&gt;</title>",
		`<form id="contact" name="contact" method="post">`,
		`name="FieldValues[Name]" value="Ada"`,
		`<option value="CA">California</option>`,
	)

	_, locked := get(t, ts.URL+"/forms/locked")
	testsupport.AssertContains(t, locked, `name="Record[Code]"`)
}

func TestServer_ListAndIndex(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts.URL+"/forms")
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	var got []formSummary
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []formSummary{{ID: "broken", Title: "broken"}, {ID: "contact", Title: "Contact <Us>"}, {ID: "locked", Title: "locked"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	_, index := get(t, ts.URL+"/")
	testsupport.AssertContains(t, index, `<a href="/forms/contact">Contact &lt;Us&gt;</a>`)
}

func TestServer_OptionLookup(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts.URL+"/options/state?q=cal")
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, body)
	}
	testsupport.AssertContains(t, body, `"list":"state"`, `{"value":"CA","label":"California"}`)

	if status, _ := get(t, ts.URL+"/options/county"); status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown list, got %d", status)
	}
	if status, _ := get(t, ts.URL+"/options/state?profile=missing"); status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown profile, got %d", status)
	}

	head, err := http.Head(ts.URL + "/options/state")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	head.Body.Close()
	if head.StatusCode != http.StatusOK || !strings.HasPrefix(head.Header.Get("Content-Type"), "application/json") {
		t.Fatalf("unexpected HEAD response %d %q", head.StatusCode, head.Header.Get("Content-Type"))
	}

	resp, err := http.Post(ts.URL+"/options/state", "text/plain", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for POST, got %d", resp.StatusCode)
	}
}

func TestServer_SubmitDecodesPostNames(t *testing.T) {
	ts := newTestServer(t)
	form := url.Values{
		"FieldValues[Name]":  {"Ada"},
		"Multiple[Tags][]":   {"", "a", "b"},
		"Record[Row][2][Id]": {"7"},
	}
	resp, err := http.Post(ts.URL+"/forms/contact", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var got struct {
		Form   string                    `json:"form"`
		Values map[string]map[string]any `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Form != "contact" || got.Values["FieldValues"]["Name"] != "Ada" {
		t.Fatalf("unexpected submission echo: %+v", got)
	}
	if _, ok := got.Values["Multiple"]["Tags"]; !ok {
		t.Fatalf("expected Multiple group: %+v", got.Values)
	}
}

func TestServer_ErrorsAndMetrics(t *testing.T) {
	var logs bytes.Buffer
	ts := newTestServer(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	if status, _ := get(t, ts.URL+"/forms/missing"); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	status, body := get(t, ts.URL+"/forms/broken")
	if status != http.StatusInternalServerError || !strings.Contains(body, "RENDER_FAILED") {
		t.Fatalf("expected render failure, got %d %s", status, body)
	}
	if status, _ := get(t, ts.URL+"/healthz"); status != http.StatusNoContent {
		t.Fatalf("expected 204 from healthz, got %d", status)
	}

	_, metrics := get(t, ts.URL+"/metrics")
	testsupport.AssertContains(t, metrics,
		`formhtml_preview_render_errors_total{form="broken"} 1`,
		`formhtml_preview_requests_total{method="GET",route="/forms/{id}",status="404"} 1`,
		"formhtml_preview_request_duration_seconds_bucket",
	)
	testsupport.AssertContains(t, logs.String(), "preview: render form", "form=broken")
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
}
