package lookup

import "github.com/randalmurphal/interpolate/pkg/interpolate"

// Registry prefixes for the built-in lookups.
const (
	PrefixEnv           = "env"
	PrefixDate          = "date"
	PrefixBase64Encoder = "base64Encoder"
	PrefixBase64Decoder = "base64Decoder"
	PrefixURLEncoder    = "urlEncoder"
	PrefixURLDecoder    = "urlDecoder"
	PrefixLocalhost     = "localhost"
	PrefixRuntime       = "go"
	PrefixFile          = "file"
	PrefixConfig        = "config"
	PrefixDNS           = "dns"
	PrefixHTTP          = "url"
)

// Defaults returns a new registry holding the built-in lookups that only
// read process state: env, date, base64 and URL codecs, localhost and go.
func Defaults() *interpolate.Registry {
	return RegisterDefaults(interpolate.NewRegistry())
}

// RegisterDefaults adds the lookups of Defaults to reg and returns it.
// Existing registrations under the same prefixes are replaced.
func RegisterDefaults(reg *interpolate.Registry) *interpolate.Registry {
	return reg.RegisterMany(defaultLookups())
}

func defaultLookups() map[string]interpolate.Resolver {
	return map[string]interpolate.Resolver{
		PrefixEnv:           Env{},
		PrefixDate:          Date{},
		PrefixBase64Encoder: Base64Encoder{},
		PrefixBase64Decoder: Base64Decoder{},
		PrefixURLEncoder:    URLEncoder{},
		PrefixURLDecoder:    URLDecoder{},
		PrefixLocalhost:     Localhost{},
		PrefixRuntime:       Runtime{},
	}
}
