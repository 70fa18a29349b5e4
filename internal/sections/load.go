package sections

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Sections []Section `yaml:"sections"`
}

// Parse reads a registry from YAML of the form
//
//	sections:
//	  - id: home
//	    label: Home
//	    route: /
func Parse(r io.Reader) (*Registry, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return New(f.Sections)
}

// Load reads a registry file. An empty path yields the default registry.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sections file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}
