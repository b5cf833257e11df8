package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
	"github.com/matzehuels/umlgraph/pkg/plantuml"
)

type stubRenderer struct {
	err error
}

func (s *stubRenderer) Name() string { return "stub" }

func (s *stubRenderer) Render(_ context.Context, text string, format plantuml.Format) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("<svg>" + string(format) + "</svg>"), nil
}

func newTestAPI(t *testing.T, r plantuml.Renderer) *httptest.Server {
	t.Helper()
	logger := newLogger(io.Discard, LogInfo)
	srv := httptest.NewServer(newAPIHandler(pipeline.NewRunner(nil, nil, logger), r, logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

func TestAPIHealth(t *testing.T) {
	srv := newTestAPI(t, &stubRenderer{})

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(headerRequestID) == "" {
		t.Error("response should carry a request ID")
	}
}

func TestAPIRequestIDPropagated(t *testing.T) {
	srv := newTestAPI(t, &stubRenderer{})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(headerRequestID, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(headerRequestID); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestAPIPlantUML(t *testing.T) {
	srv := newTestAPI(t, &stubRenderer{})

	resp, body := post(t, srv.URL+"/v1/plantuml", "application/json", vehiclesJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, "Car --> Vehicle") || !strings.HasSuffix(body, "@enduml") {
		t.Errorf("body =\n%s", body)
	}
}

func TestAPIPlantUMLTOML(t *testing.T) {
	srv := newTestAPI(t, &stubRenderer{})

	resp, body := post(t, srv.URL+"/v1/plantuml", "application/toml", `parents = ["B -> A"]`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "B --> A") {
		t.Errorf("body =\n%s", body)
	}
}

func TestAPIPlantUMLRender(t *testing.T) {
	srv := newTestAPI(t, &stubRenderer{})

	resp, body := post(t, srv.URL+"/v1/plantuml?render=svg", "application/json", vehiclesJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if body != "<svg>svg</svg>" {
		t.Errorf("body = %q", body)
	}
	if resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
}

func TestAPIErrors(t *testing.T) {
	failing := &stubRenderer{err: &errors.CollaboratorError{Collaborator: "stub", StatusCode: 503}}
	srv := newTestAPI(t, failing)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"bad shape", "/v1/plantuml", `{"parents": [["A", "B", "C"]]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad json", "/v1/plantuml", `{`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad render format", "/v1/plantuml?render=gif", vehiclesJSON, http.StatusBadRequest, errors.ErrCodeInvalidOption},
		{"renderer failure", "/v1/plantuml?render=svg", vehiclesJSON, http.StatusBadGateway, errors.ErrCodeCollaborator},
		{"bad graph format", "/v1/graph?format=gif", vehiclesJSON, http.StatusBadRequest, errors.ErrCodeInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv.URL+tt.path, "application/json", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, body)
			}
			var er errorResponse
			if err := json.Unmarshal([]byte(body), &er); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if er.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q", er.Code, tt.wantCode)
			}
			if er.RequestID == "" || er.RequestID != resp.Header.Get(headerRequestID) {
				t.Errorf("request_id = %q, header = %q", er.RequestID, resp.Header.Get(headerRequestID))
			}
		})
	}
}

func TestAPIGraph(t *testing.T) {
	srv := newTestAPI(t, &stubRenderer{})

	resp, body := post(t, srv.URL+"/v1/graph?format=dot&column=false", "application/json", vehiclesJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, `"Car" -> "Vehicle" [arrowhead=empty];`) {
		t.Errorf("body =\n%s", body)
	}
	if strings.Contains(body, "Methods") {
		t.Errorf("column=false should drop captions:\n%s", body)
	}
}

func TestAPIGraphDimensionalityWarning(t *testing.T) {
	srv := newTestAPI(t, &stubRenderer{})

	resp, body := post(t, srv.URL+"/v1/graph?format=json&dim=4d", "application/json", vehiclesJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	warning := resp.Header.Get("Warning")
	if !strings.HasPrefix(warning, `199 umlgraph "`) || !strings.Contains(warning, `\"4d\"`) {
		t.Errorf("Warning = %q, want escaped dimensionality warning", warning)
	}
	var g struct {
		Layout string `json:"layout"`
	}
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		t.Fatal(err)
	}
	if g.Layout != "dot" {
		t.Errorf("layout = %q, want dot", g.Layout)
	}
}

func TestWarningValue(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"plain", "using 2d", `199 umlgraph "using 2d"`},
		{"quoted value", `unsupported value "4d"`, `199 umlgraph "unsupported value \"4d\""`},
		{"backslash", `a\b`, `199 umlgraph "a\\b"`},
		{"newline", "a\nb", `199 umlgraph "a b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := warningValue(tt.msg); got != tt.want {
				t.Errorf("warningValue(%q) = %s, want %s", tt.msg, got, tt.want)
			}
		})
	}
}
