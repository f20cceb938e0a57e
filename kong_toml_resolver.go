package main

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gravitational/trace"
	"github.com/pelletier/go-toml"
)

// KongTOMLResolver is the kong resolver function for the TOML configuration
// file. A flag named "api-url" resolves from either a top-level "api-url"
// key or an "[api] url" section.
func KongTOMLResolver(r io.Reader) (kong.Resolver, error) {
	config, err := toml.LoadReader(r)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		name := flag.Name

		valueWithinSection := config.Get(strings.ReplaceAll(name, "-", "."))
		if valueWithinSection != nil {
			return valueWithinSection, nil
		}

		return config.Get(name), nil
	}

	return f, nil
}
