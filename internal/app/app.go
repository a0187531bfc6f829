package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

//go:generate mockgen -destination=./app_mock.go -package=app -source=app.go

// Dependency is the interface that wraps the basic methods of a dependency required for the application.
type Dependency interface {
	// Start is anything a dependency needs to do before it's ready to be used
	Start() error
	// Stop is anything a dependency needs to do before it's ready to be stopped
	Stop() error
	// Name is the name of the dependency. It is used for logging and identification purposes, only.
	Name() string
}

type App struct {
	serviceName string
	// deps start in order and stop in reverse order.
	deps []Dependency
	// started counts the dependencies whose Start returned without error.
	started atomic.Int32
	// startDone is closed once the start loop returns.
	startDone chan struct{}
	// depFailChan signals that a dependency failed to start.
	depFailChan chan error
	// osSignalChan receives the OS signals that shut the application down.
	osSignalChan chan os.Signal
	stopCalled   atomic.Bool
	runCalled    atomic.Bool
	// stopTimeout bounds how long the application waits for dependencies to stop.
	stopTimeout time.Duration
}

type Config struct {
	ServiceName string
	StopTimeout time.Duration
}

func (c *Config) validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.StopTimeout == 0 {
		errs = append(errs, errors.New("stop timeout is required"))
	}
	return errors.Join(errs...)
}

// CreateApp creates a new application with the provided dependencies.
func CreateApp(cfg *Config, deps ...Dependency) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for i, dep := range deps {
		if dep == nil {
			return nil, fmt.Errorf("dependency %d is nil", i)
		}
	}

	return &App{
		serviceName:  cfg.ServiceName,
		deps:         deps,
		stopTimeout:  cfg.StopTimeout,
		startDone:    make(chan struct{}),
		depFailChan:  make(chan error, 1),
		osSignalChan: make(chan os.Signal, 1), // first signal we get shuts down the app
	}, nil
}

// Run starts the dependencies one after the other and blocks until ctx is cancelled, a
// dependency fails to start or the process is signalled. Started dependencies are then stopped.
func (a *App) Run(ctx context.Context) error {
	if !a.runCalled.CompareAndSwap(false, true) {
		return errors.New("run has already been called")
	}

	ctxCancel, cancel := context.WithCancel(ctx)
	defer cancel()

	// Dependencies start in order: the replica has to replay its journal before the servers
	// accept traffic for it.
	go func() {
		defer close(a.startDone)
		defer func() {
			if err := recover(); err != nil {
				a.depFailChan <- fmt.Errorf("panic in Start(): %v", err)
			}
		}()

		for _, dep := range a.deps {
			if ctxCancel.Err() != nil {
				return
			}
			log.Info().Msg("Starting dependency: " + dep.Name())
			if err := dep.Start(); err != nil {
				a.depFailChan <- fmt.Errorf("failure in Start() for dependency %s: %w", dep.Name(), err)
				return
			}
			a.started.Add(1)
		}
		log.Info().Msgf("%s started", a.serviceName)
	}()

	signal.Notify(a.osSignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(a.osSignalChan)

	var runErr error
	select {
	case <-ctxCancel.Done():
		log.Info().Msg("App Context cancelled: shutting down")
	case runErr = <-a.depFailChan:
		log.Error().Err(runErr).Msg("Dependency failed to start")
	case sig := <-a.osSignalChan:
		log.Info().Msg("OS Signal received: " + sig.String() + " shutdown beginning...")
	}
	cancel()

	if err := a.stop(); err != nil {
		log.Error().Err(err).Msg("Error stopping application")
		return errors.Join(runErr, err)
	}

	return runErr
}

// stop stops every started dependency in reverse start order.
func (a *App) stop() error {
	if !a.stopCalled.CompareAndSwap(false, true) {
		return errors.New("stop has already been called")
	}

	ctxTo, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		<-a.startDone

		var errs []error
		for i := int(a.started.Load()) - 1; i >= 0; i-- {
			dep := a.deps[i]
			log.Info().Msg("Stopping dependency: " + dep.Name())
			if err := dep.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failure in Stop() for dependency %s: %w", dep.Name(), err))
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctxTo.Done():
		return fmt.Errorf("stopping %s: %w", a.serviceName, ctxTo.Err())
	}
}
