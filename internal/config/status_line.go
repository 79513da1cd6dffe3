package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StatusLine selects what the status bar shows for the selected path. It
// also decides which form of the path Enter hands to the command.
type StatusLine int

const (
	StatusAbsolute StatusLine = iota
	StatusRelative
	StatusNone
)

var statusLineNames = map[StatusLine]string{
	StatusAbsolute: "absolute",
	StatusRelative: "relative",
	StatusNone:     "none",
}

// ParseStatusLine converts "absolute", "relative" or "none".
func ParseStatusLine(value string) (StatusLine, error) {
	for mode, name := range statusLineNames {
		if name == value {
			return mode, nil
		}
	}
	return StatusAbsolute, fmt.Errorf("must be one of \"absolute\", \"relative\", or \"none\": %q was given", value)
}

func (s StatusLine) String() string {
	if name, ok := statusLineNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StatusLine(%d)", int(s))
}

// Set implements pflag.Value.
func (s *StatusLine) Set(value string) error {
	mode, err := ParseStatusLine(value)
	if err != nil {
		return err
	}
	*s = mode
	return nil
}

// Type implements pflag.Value.
func (s *StatusLine) Type() string { return "type" }

// UnmarshalYAML accepts the same spellings as the command line.
func (s *StatusLine) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return s.Set(raw)
}
