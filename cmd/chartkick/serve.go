package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/oxtoacart/bpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/gochartkick/chartkick"
	"github.com/gochartkick/chartkick/chtml"
	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/msgs"
	"github.com/gochartkick/chartkick/msgs/pomsg"
	"github.com/gochartkick/chartkick/parsepasses"
)

type serveOptions struct {
	addr      string
	staticURL string
	staticDir string
	watch     bool
	messages  string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve [page.html]",
		Short: "Serve a page, rendered with the URL query as its context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":9813", "address on which to listen")
	cmd.Flags().StringVar(&opts.staticURL, "static-url", "/static", "base URL of chartkick.js")
	cmd.Flags().StringVar(&opts.staticDir, "static-dir", "", "directory served under the static URL")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "recompile the page when it changes")
	cmd.Flags().StringVar(&opts.messages, "messages", "", "directory of <locale>.po translations")
	return cmd
}

func runServe(page string, opts serveOptions) error {
	var bundle = chartkick.NewBundle().
		WatchFiles(opts.watch).
		AddTemplateFile(page).
		StaticURL(opts.staticURL)
	defer bundle.Close()

	var tofu, err = bundle.CompileToTofu()
	if err != nil {
		return err
	}

	var provider msgs.Provider
	if opts.messages != "" {
		if provider, err = pomsg.Dir(opts.messages); err != nil {
			return fmt.Errorf("loading messages: %w", err)
		}
	}

	if p, ok := tofu.Registry().Page(page); ok {
		log.Info().Str("page", page).Strs("context", parsepasses.DataRefs(p)).Msg("page compiled")
	}

	var srv = newServer(tofu, page, provider, prometheus.NewRegistry())
	var router = srv.routes()
	if opts.staticDir != "" && strings.HasPrefix(opts.staticURL, "/") {
		var prefix = strings.TrimSuffix(opts.staticURL, "/") + "/"
		router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(opts.staticDir))))
	}

	server := &http.Server{
		Handler:      withLogging(router),
		Addr:         opts.addr,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	log.Info().Str("addr", opts.addr).Str("page", page).Msg("started serving requests")
	return server.ListenAndServe()
}

// server renders a single page per request.
type server struct {
	tofu     *chtml.Tofu
	page     string
	messages msgs.Provider
	bufpool  *bpool.BufferPool
	registry *prometheus.Registry
	renders  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func newServer(tofu *chtml.Tofu, page string, messages msgs.Provider, registry *prometheus.Registry) *server {
	var s = &server{
		tofu:     tofu,
		page:     page,
		messages: messages,
		bufpool:  bpool.NewBufferPool(48),
		registry: registry,
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartkick_renders_total",
			Help: "Pages rendered.",
		}, []string{"page"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartkick_render_errors_total",
			Help: "Pages that failed to render.",
		}, []string{"page"}),
	}
	registry.MustRegister(s.renders, s.failures)
	return s
}

func (s *server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	router.HandleFunc("/", s.renderHandler()).Methods("GET")
	return router
}

func (s *server) renderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sublog = log.With().Str("page", s.page).Logger()

		// Render into a buffer first, so errors can still become a 500.
		buf := s.bufpool.Get()
		defer s.bufpool.Put(buf)

		var err = s.tofu.NewRenderer(s.page).
			WithMessages(s.bundle(r)).
			Execute(buf, queryContext(r))
		if err != nil {
			s.failures.WithLabelValues(s.page).Inc()
			sublog.Error().Err(err).Msg("failed to render page")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.renders.WithLabelValues(s.page).Inc()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		buf.WriteTo(w)
	}
}

// bundle picks messages from the "locale" query parameter, else the
// Accept-Language header.
func (s *server) bundle(r *http.Request) msgs.Bundle {
	if s.messages == nil {
		return nil
	}
	if locale := r.URL.Query().Get("locale"); locale != "" {
		return s.messages.Bundle(locale)
	}
	var tags, _, err = language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return nil
	}
	for _, tag := range tags {
		if b := s.messages.Bundle(tag.String()); b != nil {
			return b
		}
	}
	return nil
}

// queryContext converts the query string into a render context.  Values that
// parse as JSON are decoded; anything else is a string.
func queryContext(r *http.Request) data.Map {
	var m = make(data.Map)
	for k, v := range r.URL.Query() {
		if k == "locale" || len(v) == 0 {
			continue
		}
		if val, err := data.Unmarshal([]byte(v[0])); err == nil {
			m[k] = val
		} else {
			m[k] = data.String(v[0])
		}
	}
	return m
}

// Logging middleware ---------------------------------------------------------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type loggingHandler struct {
	handler http.Handler
	logger  zerolog.Logger
}

func (l *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t := time.Now()
	var rec = &statusRecorder{w, http.StatusOK}
	l.handler.ServeHTTP(rec, r)
	l.logger.Info().
		Stringer("url", r.URL).
		Int("status_code", rec.status).
		Int64("response_time", time.Since(t).Nanoseconds()).
		Msg("")
}

func withLogging(h http.Handler) *loggingHandler {
	return &loggingHandler{h, log}
}
