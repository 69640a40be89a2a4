package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/Drolfothesgnir/hintstack/api"
	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/display"
	"github.com/Drolfothesgnir/hintstack/sink"
	"github.com/Drolfothesgnir/hintstack/util"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGINT,
}

func main() {
	// reading .env config file
	config, err := util.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read config file")
	}

	if config.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// Configure the validator to use json tags for field names in errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}

	// catching interrupt signals for graceful shutdown
	// stop() or a signal catch makes context Done
	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	out, closeSink := newSink(ctx, config)
	defer closeSink()

	c := combiner.New(combiner.Options{
		MaxContentLength: config.MaxContentLength,
		Duration:         config.HintDuration,
	}, out)

	registry := display.NewRegistry(c, display.Options{AspectRatio: config.DefaultAspectRatio})

	// waitgroup which manages goroutines for the HTTP server and the tick loop
	waitGroup, ctx := errgroup.WithContext(ctx)

	waitGroup.Go(func() error {
		log.Info().Dur("interval", config.TickInterval).Msg("start display ticker")
		return registry.Run(ctx, config.TickInterval)
	})

	RunGinServer(ctx, waitGroup, config, registry)

	err = waitGroup.Wait()
	if err != nil {
		log.Fatal().Err(err).Msg("error from wait group")
	}
}

// newSink returns where payloads are sent and a function releasing it.
func newSink(ctx context.Context, config util.Config) (sink.Sink, func()) {
	if config.Sink == util.SinkLog {
		log.Info().Msg("payloads are logged, not published")
		return sink.NewLogSink(log.Logger), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  default "localhost:6379"
		Password: "",                  // "" for no password, ok for now
		DB:       0,                   // 0 for default database
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		// the client reconnects on its own; failed sends are logged per viewer
		log.Warn().Err(err).Str("addr", config.RedisAddress).Msg("redis is not reachable yet")
	}

	closeClient := func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("cannot close redis client")
		}
	}

	return sink.NewRedisSink(rdb, config.RedisChannelPrefix, config.PayloadTTL), closeClient
}

func RunGinServer(
	ctx context.Context,
	waitGroup *errgroup.Group,
	config util.Config,
	registry *display.Registry,
) {
	service, err := api.NewService(config, registry)
	if err != nil {
		log.Error().Err(err).Msg("cannot create HTTP service")
		return
	}

	waitGroup.Go(func() error {
		log.Info().Msgf("start HTTP server at %s", service.Addr())

		err := service.Start()

		if err != nil {
			//http.ErrServerClosed is returned once the server begins shutting down
			// which is normal
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			log.Error().Err(err).Msg("cannot start HTTP server")
		}

		return err
	})

	waitGroup.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("HTTP server: graceful shutdown")

		// give the server 5 secs to finish all its requests
		toCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := service.Shutdown(toCtx)

		if err != nil {
			log.Error().Err(err).Msg("cannot shutdown HTTP server gracefully")
		}

		log.Info().Msg("HTTP server is stopped")

		return err
	})
}
