package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saboracaiteria/br.canaa/pkg/config"
	"github.com/saboracaiteria/br.canaa/pkg/feed"
	"github.com/saboracaiteria/br.canaa/pkg/history"
	"github.com/saboracaiteria/br.canaa/pkg/ingress"
	"github.com/saboracaiteria/br.canaa/pkg/registry"

	"github.com/rs/zerolog/log"
)

func serve(configs []string) error {
	config, err := config.Process(configs)
	if err != nil {
		return err
	}

	serverConfig := config.Server

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rooms := registry.New(registry.Config{
		TickRate:   serverConfig.TickRate,
		MaxPlayers: serverConfig.MaxPlayers,
		Rules:      config.Rules(),
	})
	go rooms.Poll(ctx)

	mux := http.NewServeMux()

	if serverConfig.History.Enabled {
		matches, err := history.New(serverConfig.History.Limit)
		if err != nil {
			return err
		}
		defer matches.Close()

		go matches.Watch(ctx, rooms.Notices.Subscribe())
		mux.Handle("/api/matches", NoStore(matches))
	}

	redisSettings := serverConfig.Redis
	lifecycle := feed.New(feed.Settings{
		Address:  redisSettings.Address,
		Password: redisSettings.Password,
		DB:       redisSettings.DB,
		Channel:  redisSettings.Channel,
	})
	if lifecycle != nil {
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err := lifecycle.Ping(pingCtx)
		pingCancel()
		if err != nil {
			log.Warn().Err(err).Msg("room feed will retry on every notice")
		}
		go lifecycle.Watch(ctx, rooms.Notices.Subscribe())
		log.Info().Str("address", redisSettings.Address).Msg("publishing room feed")
	}

	wsIngress := ingress.NewWSIngress(rooms, serverConfig.MessageRate, serverConfig.MessageBurst)
	mux.Handle("/ws", wsIngress)
	mux.Handle("/ws/", wsIngress)
	mux.Handle("/api/rooms", NoStore(RoomsHandler(rooms)))

	errc := make(chan error, 1)
	go func() {
		errc <- wsIngress.Serve(ctx, serverConfig.Ingress.Web.Port, mux)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("failed to serve")
			return err
		}
	case sig := <-sigs:
		log.Info().Msgf("terminating: %v", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	wsIngress.Shutdown(shutdownCtx)

	return nil
}
