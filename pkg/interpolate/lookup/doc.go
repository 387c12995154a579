/*
Package lookup provides ready-made resolvers for the interpolate engine.

Each lookup is an interpolate.Resolver that is meant to be registered under a
prefix. The dispatcher strips the prefix, so a lookup only ever sees the part
of the key after the first ':'.

# Built-in Lookups

	Prefix          Resolver         Example key
	env             Env              ${env:HOME}
	date            Date             ${date:%Y-%m-%d} or ${date:2006-01-02}
	base64Encoder   Base64Encoder    ${base64Encoder:hello}
	base64Decoder   Base64Decoder    ${base64Decoder:aGVsbG8=}
	urlEncoder      URLEncoder       ${urlEncoder:a b&c}
	urlDecoder      URLDecoder       ${urlDecoder:a+b%26c}
	localhost       Localhost        ${localhost:name}
	go              Runtime          ${go:version}
	file            File             ${file:secrets/token}
	config          Config           ${config:app.yaml::db.host}
	dns             DNS              ${dns:address|example.com}
	url             HTTP             ${url:https://example.com/version}
	(any)           Store            ${vars:db_host}

Defaults returns a registry holding the lookups without side effects outside
the process. File, Config, DNS, HTTP and Store read external state and must be
registered explicitly:

	reg := lookup.Defaults().
		Register(lookup.PrefixFile, lookup.File{Root: "/etc/myapp"}).
		Register("vars", lookup.Store{Store: st, Namespace: "prod"})
	sub := interpolate.NewSubstitutor(interpolate.NewDispatcher(reg))

There is no sys lookup. Go processes have no system property table; the
facts such a table would carry are served by go (runtime) and env.

RegistryFromConfig builds the same registries from a configuration section,
and HTTPFromConfig configures the url lookup.

# Absent vs Error

Lookups report a key they cannot find (an unset environment variable, a
missing file, an unknown host) as absent, so the substitution falls back to
a default value or the missing-key policy. Malformed input (invalid base64,
a config key without "::") and I/O failures are returned as errors.
*/
package lookup
