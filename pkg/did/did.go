// Package did provides parsing and validation for decentralized
// identifiers as used on the ClawNet network.
//
// DID format: did:[method]:[method-specific-id]
//
// Examples:
//
//	did:claw:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK
//	did:web:agents.example.com
//
// ClawNet nodes mint did:claw identifiers; other methods appear when a
// node mirrors externally anchored identities.
package did

import (
	"fmt"
	"strings"
)

const scheme = "did"

// DefaultMethod is the DID method minted by ClawNet nodes.
const DefaultMethod = "claw"

// DID is a parsed decentralized identifier.
type DID struct {
	Method string // the DID method name, e.g. "claw"
	ID     string // the method-specific identifier
}

// Parse parses a DID string of the form did:method:method-specific-id.
func Parse(raw string) (*DID, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("DID %q must have the form did:method:id", raw)
	}
	if parts[0] != scheme {
		return nil, fmt.Errorf("unsupported scheme %q: expected %q", parts[0], scheme)
	}

	method, id := parts[1], parts[2]
	if err := validateMethod(method); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}
	return &DID{Method: method, ID: id}, nil
}

// String returns the canonical DID string.
func (d *DID) String() string {
	return fmt.Sprintf("%s:%s:%s", scheme, d.Method, d.ID)
}

// New builds a did:claw DID from a method-specific identifier.
func New(id string) (*DID, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return &DID{Method: DefaultMethod, ID: id}, nil
}

// MustParse parses a DID and panics on error. Useful in tests and init blocks.
func MustParse(raw string) *DID {
	d, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// validateMethod checks the method name: lowercase letters and digits only.
func validateMethod(method string) error {
	if method == "" {
		return fmt.Errorf("DID method must not be empty")
	}
	for i := 0; i < len(method); i++ {
		c := method[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return fmt.Errorf("DID method %q contains invalid character %q", method, c)
		}
	}
	return nil
}

// validateID checks the method-specific identifier. Colons are permitted
// (nested identifiers), whitespace and URL metacharacters are not.
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("DID identifier must not be empty")
	}
	if strings.ContainsAny(id, " \t\n\\?#/") {
		return fmt.Errorf("DID identifier %q contains invalid characters", id)
	}
	return nil
}
