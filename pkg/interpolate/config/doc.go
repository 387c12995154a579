/*
Package config provides type-safe access to decoded YAML and JSON documents.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values.
Keys are dotted paths, so nested sections read naturally. The package backs
two things in interpolate: loading Substitutor settings from a file, and the
"config" lookup that resolves keys out of a YAML or JSON document.

# Basic Usage

	cfg := config.New(map[string]any{
	    "marker": map[string]any{"prefix": "{{", "suffix": "}}"},
	    "missing": "empty",
	})

	prefix := cfg.String("marker.prefix", "${") // "{{"
	action := cfg.String("missing", "keep")     // "empty"
	strict := cfg.Bool("strict", false)         // false

# Paths

Lookup walks nested maps by key and slices by index:

	v, ok := cfg.Lookup("servers.0.host")

A key containing a literal dot is still found when it exists at the top level.

# File Loading

	cfg, err := config.FromFile("interpolate.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
