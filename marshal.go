// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timex

import (
	"gopkg.in/yaml.v3"
)

// MarshalText implements encoding.TextMarshaler.
func (p Property) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string
// results in the zero value.
func (p *Property) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = Property{}
		return nil
	}
	np, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = np
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Property) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Property) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(s))
}
