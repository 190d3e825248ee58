package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/metricfilter/allowlist"
	"github.com/xmidt-org/metricfilter/allowlist/allowlistcfg"
	"github.com/xmidt-org/metricfilter/xmetrics"
	"github.com/xmidt-org/metricfilter/xviper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	applicationName = "metricfilter"

	// RequestCounter is the ad hoc counter incremented for each HTTP request served
	RequestCounter = "requests"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.String("listen", ":9090", "the address on which metrics are exposed")
	fs.Bool("debug", false, "enables development logging")
	return fs
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	if v.GetBool("debug") {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

// newOptions reads the registry Options from the prometheus section, if present.
func newOptions(v *viper.Viper) (*xmetrics.Options, error) {
	o := new(xmetrics.Options)
	if sub := v.Sub("prometheus"); sub != nil {
		if err := xviper.Unmarshal(sub, nil, o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func countRequests(c metrics.Counter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			c.Add(1.0)
			next.ServeHTTP(response, request)
		})
	}
}

func allowListHandler(logger *zap.Logger, f *allowlist.Filter) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
		names := f.Names()
		if names == nil {
			names = []string{}
		}

		response.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(response).Encode(map[string]interface{}{
			"allowAll": f.Len() == 0,
			"names":    names,
		})

		if err != nil {
			logger.Error("unable to write allow-list response", zap.Error(err))
		}
	})
}

// NewRouter builds the HTTP routes for the given registry.
func NewRouter(logger *zap.Logger, r xmetrics.Registry) *mux.Router {
	router := mux.NewRouter()
	router.Use(countRequests(r.NewCounter(RequestCounter)))

	router.Handle("/metrics", promhttp.HandlerFor(r, promhttp.HandlerOpts{
		ErrorLog:      zap.NewStdLog(logger),
		ErrorHandling: promhttp.ContinueOnError,
	})).Methods("GET")

	router.Handle("/allowlist", allowListHandler(logger, r.AllowList())).Methods("GET")
	return router
}

func newServer(v *viper.Viper, router *mux.Router) *http.Server {
	return &http.Server{
		Addr:              v.GetString("listen"),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func startServer(lc fx.Lifecycle, logger *zap.Logger, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			l, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}

			logger.Info("starting metrics server", zap.Stringer("address", l.Addr()))
			go func() {
				if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server exited", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: server.Shutdown,
	})
}

// appOptions wires the allow-list, registry, and HTTP server together.  v must already hold
// the application's configuration.
func appOptions(v *viper.Viper, logger *zap.Logger) fx.Option {
	return fx.Options(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Supply(v, logger),
		allowlistcfg.Provide(),
		xmetrics.Provide(),
		fx.Provide(
			newOptions,
			NewRouter,
			newServer,
		),
		fx.Invoke(startServer),
	)
}

func metricfilter(arguments []string) int {
	var (
		fs = newFlagSet()
		v  = viper.New()
	)

	if err := xviper.Configure(applicationName, arguments, fs, v); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to configure: %s\n", err)
		return 1
	}

	logger, err := newLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to create logger: %s\n", err)
		return 1
	}

	defer logger.Sync()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.Error("unable to read configuration", zap.Error(err))
			return 1
		}

		logger.Info("no configuration file found; using defaults")
	}

	app := fx.New(appOptions(v, logger))
	if err := app.Err(); err != nil {
		logger.Error("unable to create application", zap.Error(err))
		return 1
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		logger.Error("unable to start application", zap.Error(err))
		return 1
	}

	s := <-app.Done()
	logger.Info("shutting down", zap.Stringer("signal", s))

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		logger.Error("unable to shut down cleanly", zap.Error(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(metricfilter(os.Args))
}
