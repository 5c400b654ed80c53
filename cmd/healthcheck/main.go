// Command healthcheck is a synthetic prober for the authentication service.
// At a fixed interval it checks the standard health endpoint and then runs a
// full sign-up / sign-in / sign-out round trip with throwaway credentials,
// logging the outcome of each probe.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dsmelov/authsvc/internal/client/client"
	"github.com/dsmelov/authsvc/internal/client/config"
	"github.com/dsmelov/authsvc/internal/logging"
	"github.com/google/uuid"
)

func probe(ctx context.Context, c client.Client, logger logging.Logger) {

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := c.CheckHealth(ctx); err != nil {
		logger.Error(ctx, "Health check failed", "error", err.Error())
		return
	}

	// Throwaway credentials per probe so runs never collide.
	username := "probe-" + uuid.NewString()
	password := uuid.NewString()

	if _, err := c.SignUp(ctx, username, password); err != nil {
		logger.Error(ctx, "Sign-up probe failed", "error", err.Error())
		return
	}
	if _, err := c.SignIn(ctx, username, password); err != nil {
		logger.Error(ctx, "Sign-in probe failed", "error", err.Error())
		return
	}
	if err := c.SignOut(ctx); err != nil {
		logger.Error(ctx, "Sign-out probe failed", "error", err.Error())
		return
	}

	logger.Info(ctx, "Probe OK", "username", username)
}

func main() {

	logger := logging.NewDefault().With("module", "healthcheck")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	cfg := config.LoadConfig()

	c, err := client.NewAuthClient(cfg.ServerEndpointAddr)
	if err != nil {
		logger.Error(ctx, "Client init failed", "error", err.Error())
		os.Exit(1)
	}
	defer c.Close()

	ticker := time.NewTicker(cfg.OnlineCheckInterval)
	defer ticker.Stop()

	logger.Info(ctx, "Starting prober", "endpoint", cfg.ServerEndpointAddr, "interval", cfg.OnlineCheckInterval.String())

	for {
		select {
		case <-ticker.C:
			probe(ctx, c, logger)
		case <-ctx.Done():
			logger.Info(ctx, "Stopping prober")
			return
		}
	}
}
