package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	configinfra "socialblock.io/explorer/internal/infrastructure/config"
	"socialblock.io/explorer/internal/interfaces/cli"
	"socialblock.io/explorer/internal/interfaces/di"
)

func main() {
	var current atomic.Pointer[di.Container]

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM)
		<-sigChan

		if container := current.Load(); container != nil {
			log := container.Logger.Zerolog()
			log.Info().Msg("Received shutdown signal, shutting down gracefully...")
			if err := container.Shutdown(); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			}
		}
		os.Exit(0)
	}()

	cli.Execute(func(loader *configinfra.Loader) (*cli.CLIContainer, error) {
		container, err := di.Build(loader)
		if err != nil {
			return nil, err
		}
		current.Store(container)
		return container.GetCLIContainer(), nil
	})
}
