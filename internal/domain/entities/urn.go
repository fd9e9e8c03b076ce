package entities

import (
	"fmt"
	"strings"
)

// URNPrefix is the scheme and namespace shared by every catalog URN.
const URNPrefix = "urn:li:"

// URN uniquely identifies a catalog object: urn:li:<entityType>:<key>.
// The key may itself embed URNs, e.g.
// urn:li:dataset:(urn:li:dataPlatform:hive,db.orders,PROD).
type URN string

// NewURN builds a URN for the given type and key.
func NewURN(t EntityType, key string) URN {
	return URN(URNPrefix + string(t) + ":" + key)
}

// ParseURN validates s and returns it as a URN.
// The type segment is not checked against the known entity types.
func ParseURN(s string) (URN, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, URNPrefix)
	if !ok {
		return "", NewValidationError("urn", fmt.Sprintf("%q must start with %q", s, URNPrefix))
	}
	typ, key, ok := strings.Cut(rest, ":")
	if !ok || typ == "" {
		return "", NewValidationError("urn", fmt.Sprintf("%q has no entity type segment", s))
	}
	if key == "" {
		return "", NewValidationError("urn", fmt.Sprintf("%q has an empty key", s))
	}
	if strings.HasPrefix(key, "(") && !strings.HasSuffix(key, ")") {
		return "", NewValidationError("urn", fmt.Sprintf("%q has an unterminated tuple key", s))
	}
	return URN(s), nil
}

// EntityType returns the type segment. It may name an unknown type.
func (u URN) EntityType() EntityType {
	rest := strings.TrimPrefix(string(u), URNPrefix)
	typ, _, _ := strings.Cut(rest, ":")
	return EntityType(typ)
}

// Key returns everything after the type segment.
func (u URN) Key() string {
	rest := strings.TrimPrefix(string(u), URNPrefix)
	_, key, _ := strings.Cut(rest, ":")
	return key
}

// TupleParts splits a parenthesised key into its comma separated parts,
// keeping nested tuples intact. A plain key yields a single part.
func (u URN) TupleParts() []string {
	key := u.Key()
	if !strings.HasPrefix(key, "(") || !strings.HasSuffix(key, ")") {
		return []string{key}
	}
	inner := key[1 : len(key)-1]

	var parts []string
	depth, start := 0, 0
	for i, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, inner[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, inner[start:])
}

// String returns the URN text.
func (u URN) String() string {
	return string(u)
}
