package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/activist-org/configstore/internal/config"
	"github.com/activist-org/configstore/internal/lookup"
)

var errMiss = errors.New("key not found")

func main() {
	kingpinApp := kingpin.New("configstore-lookup", "Resolve a dotted key path against the activist configuration document")
	key := kingpinApp.Arg("key", "Dotted key path, e.g. database.host").Required().String()
	defaultValues := kingpinApp.Flag("default", "Value substituted when the key misses; without it a miss exits non-zero").Strings()
	configFile := kingpinApp.Flag("config", "Explicit configuration file, bypassing the search paths").String()
	quiet := kingpinApp.Flag("quiet", "Suppress output; signal hit or miss through the exit code only").Short('q').Bool()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	var opts []config.StoreOption
	if *configFile != "" {
		opts = append(opts, config.WithFile(*configFile))
	}
	store := config.NewStore(opts...)
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "configstore-lookup: %v\n", err)
		os.Exit(1)
	}

	// the flag is repeatable so that an explicit --default "" is
	// distinguishable from no default at all; the last value wins
	var def *string
	if values := *defaultValues; len(values) > 0 {
		def = &values[len(values)-1]
	}

	output, found, err := resolveKey(store, *key, def)
	if err != nil {
		if !*quiet || !errors.Is(err, errMiss) {
			fmt.Fprintf(os.Stderr, "configstore-lookup: %s: %v\n", *key, err)
		}
		os.Exit(1)
	}

	if *quiet {
		if !found {
			os.Exit(1)
		}
		return
	}
	fmt.Println(output)
}

// miss marks a resolution that found neither a value nor a caller default.
type miss struct{}

// resolveKey runs the lookup module over the store and formats the single
// result for the terminal. A nil def means no default was given; a miss then
// yields errMiss instead of output. The found flag reports whether the key
// itself resolved, independent of any default substitution.
func resolveKey(store *config.Store, key string, def *string) (string, bool, error) {
	module := lookup.New(store)

	results, err := module.RunDefault([]string{key}, miss{})
	if err != nil {
		return "", false, err
	}

	value := results[0]
	if _, missed := value.(miss); missed {
		if def == nil {
			return "", false, errMiss
		}
		return *def, false, nil
	}

	output, err := formatValue(value)
	return output, err == nil, err
}

// formatValue prints scalars plainly and YAML-encodes structured values.
func formatValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprintf("%v", t), nil
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}
