package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds HTTP server configuration
type Server struct {
	Addr      string
	PublicURL string
	Timeout   time.Duration
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       ":3000",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("DROVER_ADDR"),
		},
		&cli.StringFlag{
			Name:        "public-url",
			Usage:       "Public base URL at which the webhook receiver is reachable",
			Required:    true,
			Destination: &c.PublicURL,
			Sources:     cli.EnvVars("DROVER_PUBLIC_URL"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout for outbound GitHub and Jenkins calls",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("DROVER_HTTP_TIMEOUT"),
		},
	}
}
