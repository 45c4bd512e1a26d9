// Command probe checks that the configured remote endpoint answers. Exit status 0 means reachable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/stockdesk/pkg/config"
	"github.com/angelmondragon/stockdesk/pkg/graphql"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	timeout := flag.Duration("timeout", 0, "probe timeout; defaults to "+config.EnvProbeTimeout)
	endpoint := flag.String("endpoint", "", "remote endpoint; defaults to "+config.EnvRemoteEndpoint)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		if *endpoint == "" {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = &config.Config{}
	}
	if *endpoint != "" {
		cfg.Remote.Endpoint = *endpoint
	}
	probeTimeout := cfg.Remote.ProbeTimeout
	if *timeout > 0 {
		probeTimeout = *timeout
	}

	logg := logger.New(logger.Options{
		ServiceName: "probe",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      os.Stderr,
	})

	client, err := graphql.NewClient(cfg.Remote.Endpoint,
		graphql.WithProbeTimeout(probeTimeout),
		graphql.WithLogger(logg),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid remote endpoint: %v\n", err)
		os.Exit(1)
	}

	ctx := logg.WithField(context.Background(), "remote", cfg.Remote.Endpoint)
	start := time.Now()
	if err := client.Probe(ctx); err != nil {
		logg.Error(ctx, "remote unreachable", err)
		fmt.Println("unreachable")
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "duration_ms", time.Since(start).Milliseconds()), "remote reachable")
	fmt.Println("reachable")
}
