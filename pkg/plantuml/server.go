package plantuml

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/observability"
)

// DefaultServerURL is the public PlantUML service.
const DefaultServerURL = "https://www.plantuml.com/plantuml"

const (
	serverTimeout   = 30 * time.Second
	maxResponseSize = 32 << 20
)

// Server renders through a PlantUML web service:
// GET {BaseURL}/{format}/{encoded text}.
type Server struct {
	BaseURL string
	Client  *http.Client
}

// NewServer returns a Server for baseURL, or [DefaultServerURL] when empty.
func NewServer(baseURL string) (*Server, error) {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &Server{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: serverTimeout},
	}, nil
}

// Name implements Renderer.
func (s *Server) Name() string { return "plantuml-server" }

// Render implements Renderer. Any non-2xx status is returned as a
// CollaboratorError holding the request URL and the response body.
func (s *Server) Render(ctx context.Context, text string, format Format) ([]byte, error) {
	encoded, err := Encode(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode PlantUML text")
	}

	target := s.BaseURL + "/" + string(format) + "/" + encoded
	fail := func(status int, body []byte, cause error) error {
		return &errors.CollaboratorError{
			Collaborator: s.Name(),
			Request:      http.MethodGet + " " + target,
			StatusCode:   status,
			Response:     body,
			Cause:        cause,
		}
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fail(0, nil, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fail(0, nil, err)
	}

	// Hooks see the format path only; the encoded text would make every
	// diagram a distinct path.
	path := strings.TrimSuffix(u.Path, "/"+encoded)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, path)
	start := time.Now()

	resp, err := s.client().Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, path, err)
		return nil, fail(0, nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	hooks.OnResponse(ctx, req.Method, u.Host, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fail(resp.StatusCode, body, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fail(resp.StatusCode, body, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return body, nil
}

func (s *Server) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}
