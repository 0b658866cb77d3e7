// Command server runs the local game backend. The UI shell talks to it
// over loopback HTTP and the websocket event stream.
package main

import (
	"log"
	"net"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/serverapp"
)

type options struct {
	Host       string `env:"ITHACA_HOST" envDefault:"127.0.0.1"`
	Port       string `env:"ITHACA_PORT" envDefault:"42100"`
	DataDir    string `env:"ITHACA_DATA_DIR" envDefault:"data"`
	ConfigPath string `env:"ITHACA_CONFIG" envDefault:"ithaca_config.yml"`
}

func main() {
	logger := log.New(os.Stderr, "", 0)

	var opts options
	if err := env.Parse(&opts); err != nil {
		logger.Fatalf("parse environment: %v", err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:  cfg,
		DataDir: opts.DataDir,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}

	addr := net.JoinHostPort(opts.Host, opts.Port)
	logger.Printf("ithaca listening on http://%s", addr)
	logger.Fatal(http.ListenAndServe(addr, handler))
}
