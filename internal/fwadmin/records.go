// SPDX-License-Identifier: MPL-2.0

package fwadmin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

type (
	// ID is an identifier reported by the admin tool. The tool emits identifiers
	// as JSON numbers or strings; both decode to their textual form so they compare
	// and format uniformly. JSON null decodes to the empty string.
	ID string

	// Size is a fileset size as reported by the admin tool, kept as text.
	Size string

	// Properties holds a fileset's custom properties. Values are kept as text.
	Properties map[string]string

	// ClientRecord is a managed device or device group node in the server hierarchy.
	ClientRecord struct {
		ID       ID     `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		ParentID ID     `json:"parent_id"`
	}

	// Fileset is a deployable unit managed by the server.
	Fileset struct {
		ID               ID         `json:"id"`
		Name             string     `json:"name"`
		Type             string     `json:"type"`
		Size             Size       `json:"size"`
		ParentID         ID         `json:"parent_id"`
		CustomProperties Properties `json:"custom_properties,omitempty"`
	}

	// Association binds a fileset to a client or client group.
	Association struct {
		ID             ID   `json:"assoc_id"`
		ClientID       ID   `json:"client_id"`
		FilesetID      ID   `json:"fileset_id"`
		Kiosk          bool `json:"kiosk"`
		SoftwareUpdate bool `json:"sw_update"`
	}
)

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts strings, numbers and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("identifier %s is neither a string nor a number: %w", data, err)
		}
		*id = ID(n.String())
		return nil
	}
}

// UnmarshalJSON accepts strings, numbers and null.
func (s *Size) UnmarshalJSON(data []byte) error {
	var id ID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	*s = Size(id)
	return nil
}

// UnmarshalJSON decodes a JSON object whose values may be of any scalar type.
// Non-string values keep their JSON text (numbers, booleans); null becomes "".
func (p *Properties) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	props := make(Properties, len(raw))
	for k, v := range raw {
		var s string
		switch {
		case bytes.Equal(v, []byte("null")):
			s = ""
		case len(v) > 0 && v[0] == '"':
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
		default:
			s = string(v)
		}
		props[k] = s
	}
	*p = props
	return nil
}

// Get returns the value for key and whether it is present.
func (p Properties) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// String renders the properties in key order.
func (p Properties) String() string {
	if len(p) == 0 {
		return "{}"
	}
	keys := maps.Keys(p)
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, p[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// String returns "<id> (<name>) '<type>', parent=<parent_id>".
func (c ClientRecord) String() string {
	return fmt.Sprintf("%s (%s) '%s', parent=%s", c.ID, c.Name, c.Type, c.ParentID)
}

// String returns a one-line description of the fileset.
func (f Fileset) String() string {
	return fmt.Sprintf("%s - name: %s, type: %s, parent: %s, props: %s",
		f.ID, f.Name, f.Type, f.ParentID, f.CustomProperties)
}

// String returns a one-line description of the association.
func (a Association) String() string {
	s := fmt.Sprintf("%s - Client: %s, Fileset: %s", a.ID, a.ClientID, a.FilesetID)
	if a.Kiosk {
		s += " (Kiosk)"
	}
	return s
}
