// Package registry holds the static airport and airline code tables the
// protocol codec resolves against. The tables are read-only after
// startup; they can be extended (never shrunk) from an optional YAML
// file so new upstream carriers are a configuration concern, not a code
// change.
package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Registry struct {
	airports map[string]string
	airlines map[string]string
}

// New returns a registry seeded with the built-in code tables.
func New() *Registry {
	r := &Registry{
		airports: make(map[string]string, len(airportNames)),
		airlines: make(map[string]string, len(airlineNames)),
	}
	for code, name := range airportNames {
		r.airports[code] = name
	}
	for code, name := range airlineNames {
		r.airlines[code] = name
	}
	return r
}

type extraCodes struct {
	Airports map[string]string `yaml:"airports"`
	Airlines map[string]string `yaml:"airlines"`
}

// LoadExtra merges additional codes from a YAML file into the registry.
// Existing entries are kept; the file can only add.
func (r *Registry) LoadExtra(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry extra: %w", err)
	}

	var extra extraCodes
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("registry extra: %w", err)
	}

	for code, name := range extra.Airports {
		code = strings.ToUpper(code)
		if _, exists := r.airports[code]; !exists {
			r.airports[code] = name
		}
	}
	for code, name := range extra.Airlines {
		code = strings.ToUpper(code)
		if _, exists := r.airlines[code]; !exists {
			r.airlines[code] = name
		}
	}

	return nil
}

// Airport resolves an IATA airport code to its name.
func (r *Registry) Airport(code string) (string, bool) {
	name, ok := r.airports[strings.ToUpper(code)]
	return name, ok
}

// Airline resolves an IATA carrier code to its name.
func (r *Registry) Airline(code string) (string, bool) {
	name, ok := r.airlines[strings.ToUpper(code)]
	return name, ok
}

func (r *Registry) AirportCount() int { return len(r.airports) }
func (r *Registry) AirlineCount() int { return len(r.airlines) }
