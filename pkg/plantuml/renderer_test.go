package plantuml

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/observability"
)

const sample = "@startuml\nclass A {\n}\n@enduml"

func TestServerRender(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	s, err := NewServer(srv.URL + "/plantuml/")
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	out, err := s.Render(context.Background(), sample, FormatSVG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(out) != "<svg/>" {
		t.Errorf("Render() = %q", out)
	}

	encoded, _ := Encode(sample)
	if want := "/plantuml/svg/" + encoded; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
}

func TestServerRenderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Syntax Error?"))
	}))
	defer srv.Close()

	calls := 0
	s := &Server{BaseURL: srv.URL, Client: &http.Client{Transport: countingTransport{&calls, http.DefaultTransport}}}
	_, err := s.Render(context.Background(), sample, FormatPNG)

	var ce *errors.CollaboratorError
	if !stderrors.As(err, &ce) {
		t.Fatalf("Render() error = %v, want *CollaboratorError", err)
	}
	if ce.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", ce.StatusCode)
	}
	if string(ce.Response) != "Syntax Error?" {
		t.Errorf("Response = %q, want raw body", ce.Response)
	}
	if !strings.HasPrefix(ce.Request, "GET "+srv.URL+"/png/") {
		t.Errorf("Request = %q, want attempted URL", ce.Request)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want exactly 1 (no retry)", calls)
	}
	if !errors.Is(err, errors.ErrCodeCollaborator) {
		t.Error("error should carry the collaborator code")
	}
}

func TestServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := &Server{BaseURL: url}
	_, err := s.Render(context.Background(), sample, FormatSVG)

	var ce *errors.CollaboratorError
	if !stderrors.As(err, &ce) {
		t.Fatalf("Render() error = %v, want *CollaboratorError", err)
	}
	if ce.StatusCode != 0 || ce.Cause == nil {
		t.Errorf("unreachable server: StatusCode = %d, Cause = %v", ce.StatusCode, ce.Cause)
	}
}

func TestNewServerValidation(t *testing.T) {
	if _, err := NewServer("ftp://example.com"); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("NewServer(ftp) error = %v, want INVALID_OPTION", err)
	}
	s, err := NewServer("")
	if err != nil {
		t.Fatalf("NewServer(\"\") error: %v", err)
	}
	if s.BaseURL != DefaultServerURL {
		t.Errorf("BaseURL = %q, want default", s.BaseURL)
	}
}

func TestLocalMissingExecutable(t *testing.T) {
	l := &Local{Executable: "umlgraph-test-no-such-plantuml"}
	_, err := l.Render(context.Background(), sample, FormatSVG)

	var ce *errors.CollaboratorError
	if !stderrors.As(err, &ce) {
		t.Fatalf("Render() error = %v, want *CollaboratorError", err)
	}
	if ce.Collaborator != "plantuml-local" {
		t.Errorf("Collaborator = %q", ce.Collaborator)
	}
	if ce.Request != "umlgraph-test-no-such-plantuml -pipe -tsvg" {
		t.Errorf("Request = %q", ce.Request)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"PNG", FormatPNG, false},
		{"txt", FormatTXT, false},
		{"", FormatSVG, false},
		{"gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

type countingTransport struct {
	n    *int
	next http.RoundTripper
}

func (c countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	*c.n++
	return c.next.RoundTrip(r)
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	paths []string
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, _, _, path string) {
	h.paths = append(h.paths, path)
}

func TestServerRenderHookPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	s, err := NewServer(srv.URL + "/plantuml")
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	if _, err := s.Render(context.Background(), sample, FormatSVG); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(hooks.paths) != 1 || hooks.paths[0] != "/plantuml/svg" {
		t.Errorf("OnRequest paths = %v, want [/plantuml/svg]", hooks.paths)
	}
}
