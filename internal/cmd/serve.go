package cmd

import (
	"ramos/internal/config"
	"ramos/internal/server"
)

// ServeCmd starts the SSH server
type ServeCmd struct {
	Host string `help:"Host to bind to" default:"0.0.0.0"`
	Port string `help:"Port to listen on" default:"2222"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	srv, err := server.NewServer(s.Host, s.Port, config.GetDBPath(), cli.Container.BaseURL, cli.AppVersion)
	if err != nil {
		return err
	}
	return srv.Start()
}
