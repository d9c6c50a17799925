package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/always-cache/respond"
	"github.com/always-cache/respond/etag"
	"github.com/always-cache/respond/pkg/logging"
	"github.com/always-cache/respond/render"
	"github.com/always-cache/respond/resource"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

var (
	// CLI flags
	configFilenameFlag string
	portFlag           int
	rootFlag           string
	storeFlag          string
	dbFilenameFlag     string
	redisAddrFlag      string
	templatesFlag      string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to config file")
	flag.IntVar(&portFlag, "port", 0, "Port to listen on (overrides config)")
	flag.StringVar(&rootFlag, "root", "", "Directory to serve static resources from (store 'dir')")
	flag.StringVar(&storeFlag, "store", "", "Resource store to use: dir, sqlite or redis")
	flag.StringVar(&dbFilenameFlag, "db", "", "SQLite DB file name (use 'memory' for in-memory db)")
	flag.StringVar(&redisAddrFlag, "redis", "", "Redis address (store 'redis')")
	flag.StringVar(&templatesFlag, "templates", "", "Directory with *.html templates")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	config := defaultConfig()
	if configFilenameFlag != "" {
		var err error
		if config, err = getConfig(configFilenameFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	applyFlags(&config)

	logger, closeLog, err := logging.Setup(config.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Logger = logger.With().Str("version", version).Logger()

	repo, closeStore, err := openStore(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not open resource store")
	}
	defer func() {
		if err := multierr.Combine(closeStore(), closeLog()); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	config.Response.Resources = repo
	if config.Templates != "" {
		templates, err := render.ParseFS(os.DirFS(config.Templates), "*.html")
		if err != nil {
			log.Fatal().Err(err).Msg("Could not parse templates")
		}
		config.Response.Renderer = templates
	}
	respond.SetDefaultConfig(config.Response)

	log.Info().Msgf("Serving %s resources on port %d", config.Store, config.Port)
	err = http.ListenAndServe(fmt.Sprintf(":%d", config.Port), newRouter(config))
	if err != nil {
		log.Error().Err(err).Msg("Server stopped")
	}
}

func applyFlags(config *Config) {
	if portFlag != 0 {
		config.Port = portFlag
	}
	if rootFlag != "" {
		config.Root = rootFlag
	}
	if storeFlag != "" {
		config.Store = storeFlag
	}
	if dbFilenameFlag != "" {
		config.DB = dbFilenameFlag
	}
	if redisAddrFlag != "" {
		config.Redis = redisAddrFlag
	}
	if templatesFlag != "" {
		config.Templates = templatesFlag
	}
	if verbosityTraceFlag {
		config.Log.Level = "trace"
	}
	if logFilenameFlag != "" {
		config.Log.File = logFilenameFlag
	}
}

// openStore returns the configured resource repository and a function
// releasing it.
func openStore(config Config) (resource.Repository, func() error, error) {
	noop := func() error { return nil }
	switch config.Store {
	case "dir":
		return resource.NewDir(config.Root), noop, nil
	case "sqlite":
		dbFilename := config.DB
		if dbFilename == "memory" {
			dbFilename = ""
		}
		store, err := resource.NewSQLite(dbFilename)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: config.Redis})
		return resource.NewRedis(client, ""), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported resource store: %s", config.Store)
	}
}

func newRouter(config Config) http.Handler {
	conditional := etag.New(etag.Config{Logger: &log.Logger})
	wrap := func(h respond.Handler) http.Handler {
		return respond.Serve(conditional.Middleware(config.Rules.Middleware(h)))
	}

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Sent response")
	}))

	r.Method(http.MethodGet, "/static/*", wrap(respond.HandlerFunc(serveStatic)))
	r.Method(http.MethodGet, "/hello", wrap(config.Response.Builder(hello)))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func serveStatic(r *http.Request) (respond.Result, error) {
	name := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	return respond.Static(r.Context(), name, "")
}

func hello(r *http.Request, res *respond.Response) error {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "world"
	}
	if r.URL.Query().Has("template") {
		return res.Render(r.URL.Query().Get("template"), map[string]string{"Name": name})
	}
	res.SetContentType("text/plain")
	res.Writeln("Hello", name)
	if r.URL.Query().Has("debug") {
		id, _ := hlog.IDFromRequest(r)
		res.Debug("request id", id)
	}
	return nil
}
