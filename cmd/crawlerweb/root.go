package main

import (
	"github.com/spf13/cobra"

	"github.com/kochabx/crawlerweb/conf"
	"github.com/kochabx/crawlerweb/config"
	khttp "github.com/kochabx/crawlerweb/core/net/http"
	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/request"
	"github.com/kochabx/crawlerweb/transport/http/metrics"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "crawlerweb",
		Short:        "Web front-end for the crawler-agent backend",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default: ./config.yaml or ./conf/config.yaml)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRequestCmd(opts),
		newRoutesCmd(),
	)
	return cmd
}

// load reads the config file. When no file was named and none is found the
// built-in defaults are used.
func (o *rootOptions) load(extra ...config.Option) (*conf.App, *config.Config, error) {
	app, c, err := conf.Load(o.configFile, extra...)
	if err == nil {
		return app, c, nil
	}
	if o.configFile == "" && errors.Code(err) == 404 {
		return conf.Default(), nil, nil
	}
	return nil, nil, err
}

// newRequester sends relative URLs to the configured backend and records
// every call in the backend latency histogram.
func newRequester(cfg *conf.App) *request.Requester {
	client := khttp.New(
		khttp.WithBaseURL(cfg.Backend.BaseURL),
		khttp.WithTimeout(cfg.Backend.Timeout),
		khttp.WithObserver(metrics.Prom.ObserveBackend),
	)
	return request.New(
		request.WithDoer(request.NewHTTPDoer(client)),
		request.WithTrace(cfg.Backend.Trace),
	)
}
