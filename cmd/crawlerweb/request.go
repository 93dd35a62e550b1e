package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kochabx/crawlerweb/request"
)

type requestOptions struct {
	url     string
	method  string
	data    string
	params  map[string]string
	baseURL string
	trace   bool
}

func newRequestCmd(root *rootOptions) *cobra.Command {
	opts := &requestOptions{}

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Send one request through the request wrapper and print its data",
		Example: `  crawlerweb request --url /api/documents/indices
  crawlerweb request --url /api/searchagent -X POST --data '{"query":"go","setting":"default.json"}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.load()
			if err != nil {
				return err
			}
			if opts.baseURL != "" {
				cfg.Backend.BaseURL = opts.baseURL
			}
			if opts.trace {
				cfg.Backend.Trace = true
			}
			request.SetDefault(newRequester(cfg))

			data, err := request.Do(cmd.Context(), opts.config())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.url, "url", "u", "", "target address, absolute or relative to the backend")
	f.StringVarP(&opts.method, "method", "X", http.MethodGet, "HTTP method")
	f.StringVarP(&opts.data, "data", "d", "", "request body, sent as JSON when it parses as JSON")
	f.StringToStringVarP(&opts.params, "param", "p", nil, "query parameter k=v, repeatable")
	f.StringVar(&opts.baseURL, "base-url", "", "backend base url, overrides the config")
	f.BoolVar(&opts.trace, "trace", false, "log the call at debug level")
	return cmd
}

func (o *requestOptions) config() request.Config {
	cfg := request.Config{
		URL:    o.url,
		Method: strings.ToUpper(o.method),
	}
	if o.data != "" {
		var v any
		if err := json.Unmarshal([]byte(o.data), &v); err == nil {
			cfg.Data = v
		} else {
			cfg.Data = o.data
		}
	}
	if len(o.params) > 0 {
		cfg.Params = make(map[string]any, len(o.params))
		for k, v := range o.params {
			cfg.Params[k] = v
		}
	}
	return cfg
}
