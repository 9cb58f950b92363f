package config

import "github.com/urfave/cli/v3"

// Jenkins holds build system configuration
type Jenkins struct {
	BaseURL  string
	User     string
	APIToken string
}

// Flags returns CLI flags for Jenkins configuration
func (c *Jenkins) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jenkins-url",
			Usage:       "Jenkins base URL",
			Required:    true,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("DROVER_JENKINS_URL"),
		},
		&cli.StringFlag{
			Name:        "jenkins-user",
			Usage:       "Jenkins username",
			Required:    true,
			Destination: &c.User,
			Sources:     cli.EnvVars("DROVER_JENKINS_USER"),
		},
		&cli.StringFlag{
			Name:        "jenkins-api-token",
			Usage:       "Jenkins API token",
			Required:    true,
			Destination: &c.APIToken,
			Sources:     cli.EnvVars("DROVER_JENKINS_API_TOKEN"),
		},
	}
}
