package lookup

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/randalmurphal/interpolate/pkg/interpolate"
	"github.com/randalmurphal/interpolate/pkg/interpolate/config"
)

// Configuration keys read by RegistryFromConfig.
const (
	ConfigKeyEnabled     = "enabled"
	ConfigKeyRoot        = "root"
	ConfigKeyTrimNewline = "trim_newline"
)

// Configuration keys read by HTTPFromConfig.
const (
	ConfigKeyTimeout        = "timeout"
	ConfigKeyMaxBodyBytes   = "max_body_bytes"
	ConfigKeyTrimSpace      = "trim_space"
	ConfigKeyHeaders        = "headers"
	ConfigKeyRetry          = "retry"
	ConfigKeyMaxAttempts    = "max_attempts"
	ConfigKeyInitialBackoff = "initial_backoff"
	ConfigKeyMaxBackoff     = "max_backoff"
)

// ErrUnknownLookup is returned when a configuration enables a lookup that
// does not exist.
var ErrUnknownLookup = errors.New("unknown lookup")

// RegistryFromConfig builds a registry from a lookups section:
//
//	enabled: [env, date, file, url]
//	file:
//	  root: /etc/app
//	  trim_newline: true
//	config:
//	  root: /etc/app
//	url:
//	  timeout: 5s
//	  headers:
//	    Authorization: Bearer token
//	  retry:
//	    max_attempts: 3
//
// Without enabled, the lookups of Defaults are registered, plus file, config
// and url when their section is present. dns is only registered when enabled
// names it.
func RegistryFromConfig(cfg config.Config) (*interpolate.Registry, error) {
	file := cfg.Sub(PrefixFile)
	available := defaultLookups()
	available[PrefixDNS] = DNS{}
	available[PrefixFile] = File{
		Root:        file.String(ConfigKeyRoot, ""),
		TrimNewline: file.Bool(ConfigKeyTrimNewline, false),
	}
	available[PrefixConfig] = Config{Root: cfg.Sub(PrefixConfig).String(ConfigKeyRoot, "")}
	available[PrefixHTTP] = HTTPFromConfig(cfg.Sub(PrefixHTTP))

	if !cfg.Has(ConfigKeyEnabled) {
		reg := Defaults()
		for _, p := range []string{PrefixFile, PrefixConfig, PrefixHTTP} {
			if cfg.Has(p) {
				reg.Register(p, available[p])
			}
		}
		return reg, nil
	}

	enabled := cfg.StringSlice(ConfigKeyEnabled, nil)
	if enabled == nil {
		return nil, fmt.Errorf("%s: must be a list of lookup names", ConfigKeyEnabled)
	}
	reg := interpolate.NewRegistry()
	for _, name := range enabled {
		r, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownLookup, name)
		}
		reg.Register(name, r)
	}
	return reg, nil
}

// HTTPFromConfig builds an HTTP lookup from a configuration section.
// Missing keys keep the zero-value behavior of HTTP; a retry section starts
// from DefaultRetry.
func HTTPFromConfig(cfg config.Config) HTTP {
	h := HTTP{
		MaxBodyBytes: int64(cfg.Int(ConfigKeyMaxBodyBytes, 0)),
		TrimSpace:    cfg.Bool(ConfigKeyTrimSpace, false),
	}
	if cfg.Has(ConfigKeyTimeout) {
		h.Client = &http.Client{Timeout: cfg.Duration(ConfigKeyTimeout, defaultHTTPClient.Timeout)}
	}
	if headers := cfg.StringMap(ConfigKeyHeaders); len(headers) > 0 {
		h.Header = make(http.Header, len(headers))
		for k, v := range headers {
			h.Header.Set(k, v)
		}
	}
	if cfg.Has(ConfigKeyRetry) {
		r := cfg.Sub(ConfigKeyRetry)
		h.Retry = DefaultRetry
		h.Retry.MaxAttempts = r.Int(ConfigKeyMaxAttempts, DefaultRetry.MaxAttempts)
		h.Retry.InitialBackoff = r.Duration(ConfigKeyInitialBackoff, DefaultRetry.InitialBackoff)
		h.Retry.MaxBackoff = r.Duration(ConfigKeyMaxBackoff, DefaultRetry.MaxBackoff)
	}
	return h
}
