package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const testFeed = `<rss><channel>
  <title>Test Show</title>
  <item><title>Episode 1</title><pubDate>Thu, 06 Dec 2018 17:51:50 +0000</pubDate></item>
</channel></rss>`

func newTestServer(apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewServer(NewHandler(1024, "test"), apiKey)
}

func doRequest(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseFeed(t *testing.T) {
	r := newTestServer("")

	w := doRequest(r, http.MethodPost, "/parse", testFeed, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		Meta     map[string]any   `json:"meta"`
		Episodes []map[string]any `json:"episodes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Meta["title"] != "Test Show" {
		t.Errorf("Expected title 'Test Show', got: %v", result.Meta["title"])
	}
	if len(result.Episodes) != 1 || result.Episodes[0]["pubDate"] != "2018-12-06T17:51:50.000Z" {
		t.Errorf("Unexpected episodes: %v", result.Episodes)
	}
	if w.Header().Get("X-Feed-Episodes") != "1" {
		t.Errorf("Expected X-Feed-Episodes 1, got: %s", w.Header().Get("X-Feed-Episodes"))
	}
}

func TestParseFeedWithoutEpisodes(t *testing.T) {
	r := newTestServer("")

	w := doRequest(r, http.MethodPost, "/parse?episodes=false", testFeed, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "episodes") {
		t.Errorf("Expected episodes to be omitted, got: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/parse?episodes=maybe", testFeed, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid episodes flag, got %d", w.Code)
	}
}

func TestParseFeedErrors(t *testing.T) {
	r := newTestServer("")

	tests := []struct {
		body   string
		status int
		kind   string
	}{
		{`<rss><channel>`, http.StatusBadRequest, "ParseFailure"},
		{`<rss><channel><title>&madeupentity;</title></channel></rss>`, http.StatusBadRequest, "UndefinedEntity"},
		{`<rss></rss>`, http.StatusUnprocessableEntity, "MissingElement"},
		{`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`, http.StatusUnprocessableEntity, "MissingElement"},
	}

	for _, tt := range tests {
		w := doRequest(r, http.MethodPost, "/parse", tt.body, nil)
		if w.Code != tt.status {
			t.Errorf("Expected status %d for %s, got %d", tt.status, tt.body, w.Code)
			continue
		}
		var resp errorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if resp.Kind != tt.kind || resp.Error == "" {
			t.Errorf("Expected kind %s for %s, got: %+v", tt.kind, tt.body, resp)
		}
	}
}

func TestParseFeedTooLarge(t *testing.T) {
	r := newTestServer("")

	body := "<rss><channel><title>" + strings.Repeat("x", 2048) + "</title></channel></rss>"
	w := doRequest(r, http.MethodPost, "/parse", body, nil)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestServer("secret")

	if w := doRequest(r, http.MethodPost, "/parse", testFeed, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without key, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/parse", testFeed, map[string]string{"X-API-Key": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with wrong key, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/parse", testFeed, map[string]string{"X-API-Key": "secret"}); w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with X-API-Key, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/parse", testFeed, map[string]string{"Authorization": "Bearer secret"}); w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with bearer token, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("Expected health to stay public, got %d", w.Code)
	}
}

func TestRootAndHealth(t *testing.T) {
	r := newTestServer("")

	w := doRequest(r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"service":"podparse"`) {
		t.Errorf("Unexpected root response: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected health response: %d %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodOptions, "/parse", "", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for preflight, got %d", w.Code)
	}
}

func TestParseFeedNonFiniteCoordinates(t *testing.T) {
	r := newTestServer("")

	body := `<rss><channel>
  <title>Geo Show</title>
  <georss:point>NaN Inf</georss:point>
  <podcast:location geo="geo:NaN,Infinity">Nowhere</podcast:location>
</channel></rss>`
	w := doRequest(r, http.MethodPost, "/parse", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var result struct {
		Meta map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Expected a JSON body, got %q: %v", w.Body.String(), err)
	}
	if result.Meta["title"] != "Geo Show" {
		t.Errorf("Expected title 'Geo Show', got: %v", result.Meta["title"])
	}
	if _, ok := result.Meta["point"]; ok {
		t.Errorf("Expected point to be omitted, got: %v", result.Meta["point"])
	}
}
