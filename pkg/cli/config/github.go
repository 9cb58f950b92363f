package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub configuration
type GitHub struct {
	Token string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token with repo hook permission",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("DROVER_GITHUB_TOKEN"),
		},
	}
}
