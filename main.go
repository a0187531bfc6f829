package main

import (
	"context"
	"github.com/litetable/litetable-sheet/internal/app"
	"github.com/litetable/litetable-sheet/internal/cdc_emitter"
	"github.com/litetable/litetable-sheet/internal/config"
	"github.com/litetable/litetable-sheet/internal/peer"
	"github.com/litetable/litetable-sheet/internal/replica"
	"github.com/litetable/litetable-sheet/internal/server"
	"github.com/litetable/litetable-sheet/internal/server/grpc"
	"github.com/litetable/litetable-sheet/internal/wal"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"os"
	"time"
)

func main() {
	application, err := initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	if err = application.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}
}

func initialize() (*app.App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.With().Str("replica", cfg.ReplicaID).Logger()

	var deps []app.Dependency

	replicaCfg := &replica.Config{
		ReplicaID: cfg.ReplicaID,
	}
	if cfg.Journal {
		// every applied update is journaled so a restart rebuilds the same table
		walManager, err := wal.New(&wal.Config{
			Path: cfg.Dir,
			Sync: cfg.JournalSync,
		})
		if err != nil {
			return nil, err
		}
		replicaCfg.Journal = walManager
	}

	replicaManager, err := replica.New(replicaCfg)
	if err != nil {
		return nil, err
	}
	// the replica goes first: it replays the journal before anyone can reach it
	deps = append(deps, replicaManager)

	cdcEmitter, err := cdc_emitter.New(&cdc_emitter.Config{
		Port:    cfg.CDCPort,
		Address: cfg.CDCAddress,
	})
	if err != nil {
		return nil, err
	}
	replicaManager.AddSink(cdcEmitter)
	deps = append(deps, cdcEmitter)

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Address: cfg.GRPCAddress,
		Port:    cfg.GRPCPort,
		Replica: replicaManager,
	})
	if err != nil {
		return nil, err
	}
	replicaManager.AddSink(grpcServer)
	deps = append(deps, grpcServer)

	pusher, err := peer.New(&peer.Config{
		ReplicaID: cfg.ReplicaID,
		Peers:     cfg.Peers,
		Interval:  cfg.PushInterval,
	})
	if err != nil {
		return nil, err
	}
	replicaManager.AddSink(pusher)
	deps = append(deps, pusher)

	httpServer, err := server.New(&server.Config{
		Address: cfg.HTTPAddress,
		Port:    cfg.HTTPPort,
		Replica: replicaManager,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, httpServer)

	application, err := app.CreateApp(&app.Config{
		ServiceName: "LiteTable Sheet",
		StopTimeout: 10 * time.Second,
	}, deps...)
	if err != nil {
		return nil, err
	}

	return application, nil
}
