package httpclient

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
)

type Params struct {
	fx.In

	Config      *config.Config
	Logger      *zap.Logger
	APILogSaver APILogSaver `optional:"true"`
}

// NewHTTPClient builds the client from the forsign config section. Without
// an API key every call fails with apierror.ErrMissingCredential until
// SetCredential is called.
func NewHTTPClient(p Params) (HTTPClient, error) {
	opts := Options{
		BaseURL:        p.Config.ForSign.BaseURL,
		Timeout:        p.Config.ForSign.Timeout,
		ConnectTimeout: p.Config.ForSign.ConnectTimeout,
		UserAgent:      p.Config.ForSign.UserAgent,
	}

	if p.Config.ForSign.APIKey != "" {
		cred, err := NewAPIKeyCredential(p.Config.ForSign.APIKey)
		if err != nil {
			return nil, err
		}
		opts.Credential = cred
	} else {
		p.Logger.Warn("ForSign API key is not configured, API calls will be rejected")
	}

	p.Logger.Info("HTTP Client initialized",
		zap.String("base_url", opts.BaseURL),
		zap.Duration("timeout", opts.Timeout),
		zap.Bool("audit", p.APILogSaver != nil),
	)

	return NewClient(opts, p.APILogSaver, p.Logger), nil
}

var Module = fx.Module("httpclient",
	fx.Provide(NewHTTPClient),
)
