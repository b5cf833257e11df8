package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlgraph/pkg/buildinfo"
	"github.com/matzehuels/umlgraph/pkg/errors"
	umlio "github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
	"github.com/matzehuels/umlgraph/pkg/plantuml"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodySize     = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	"txt":               "text/plain; charset=utf-8",
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		rf   rendererFlags
		cf   cacheFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram pipeline over HTTP",
		Long: `Serve the diagram pipeline over HTTP.

Endpoints:
  POST /v1/plantuml          description in, PlantUML text out
                             (?render=svg|png|txt renders through the
                             configured PlantUML renderer)
  POST /v1/graph             description in, diagram out
                             (?format=dot|svg|png|pdf|json, ?dim=2d|3d,
                             ?column=false)
  GET  /healthz              liveness and version

Descriptions are JSON, or TOML with Content-Type application/toml.
Every response carries an X-Request-ID header.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.renderer()
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, r, cf)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rf.register(cmd)
	cf.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, r plantuml.Renderer, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newAPIHandler(runner, r, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Debug("listening", "addr", addr, "renderer", r.Name())
	printInfo(c.out(), "Serving on %s", StyleLink.Render(listenURL(addr)))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// listenURL turns a listen address into a clickable URL.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// apiServer serves the HTTP API. Each request builds its own model, so
// handlers share nothing but the runner.
type apiServer struct {
	runner   *pipeline.Runner
	renderer plantuml.Renderer
	logger   *log.Logger
}

// newAPIHandler returns the API router.
func newAPIHandler(runner *pipeline.Runner, r plantuml.Renderer, logger *log.Logger) http.Handler {
	s := &apiServer{runner: runner, renderer: r, logger: logger}

	router := chi.NewRouter()
	router.Use(s.requestID)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", s.handleHealth)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/plantuml", s.handlePlantUML)
		r.Post("/graph", s.handleGraph)
	})
	return router
}

// requestID tags each request with an ID, taken from the client when given,
// and attaches a logger carrying it.
func (s *apiServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *apiServer) handlePlantUML(w http.ResponseWriter, r *http.Request) {
	d, err := readDescription(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Description: d, Logger: loggerFromContext(r.Context())}
	render := r.URL.Query().Get("render")
	if render != "" {
		f, err := plantuml.ParseFormat(render)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Renderer = s.renderer
		opts.PlantUMLFormat = string(f)
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if render == "" {
		writeBody(w, contentTypes["txt"], []byte(res.PlantUML))
		return
	}
	writeBody(w, contentTypes[opts.PlantUMLFormat], res.Rendered)
}

func (s *apiServer) handleGraph(w http.ResponseWriter, r *http.Request) {
	d, err := readDescription(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Description:         d,
		Formats:             []string{strings.ToLower(format)},
		Dimensionality:      q.Get("dim"),
		NoExplanatoryColumn: q.Get("column") == "false",
		RankDir:             q.Get("rankdir"),
		Logger:              loggerFromContext(r.Context()),
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, warn := range res.Warnings {
		w.Header().Add("Warning", warningValue(errors.UserMessage(warn)))
	}
	writeBody(w, contentTypes[opts.Formats[0]], res.Artifacts[opts.Formats[0]])
}

// warnTextEscaper turns a message into the body of an HTTP quoted-string.
var warnTextEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", " ", "\n", " ")

// warningValue formats msg as a 199 (miscellaneous) Warning header value.
func warningValue(msg string) string {
	return `199 umlgraph "` + warnTextEscaper.Replace(msg) + `"`
}

// readDescription decodes the request body as JSON, or TOML when the content
// type says so.
func readDescription(r *http.Request) (*umlio.Description, error) {
	body := io.LimitReader(r.Body, maxBodySize)
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		return umlio.ReadTOML(body)
	}
	return umlio.ReadJSON(body)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps err to a status: bad input is 400, a failed renderer 502,
// anything else 500.
func (s *apiServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOption, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeCollaborator:
		status = http.StatusBadGateway
	}

	logger := loggerFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError && code == "" {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      string(code),
		RequestID: w.Header().Get(headerRequestID),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBody(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
