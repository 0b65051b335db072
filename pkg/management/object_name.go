package management

import (
	"fmt"
	"sort"
	"strings"
)

// ObjectName identifies a registered bean, in the form
// domain:key=value[,key=value...]. Values may be quoted.
type ObjectName struct {
	domain string
	props  []KeyProperty
}

// KeyProperty is one key=value pair of an ObjectName, value as written.
type KeyProperty struct {
	Key   string
	Value string
}

// ParseObjectName parses s. Pattern names (containing unescaped wildcards)
// are rejected since they cannot identify a single bean.
func ParseObjectName(s string) (ObjectName, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return ObjectName{}, malformed(s, "missing domain separator ':'")
	}
	domain := s[:colon]
	if strings.ContainsAny(domain, "*?") {
		return ObjectName{}, malformed(s, "domain pattern not allowed")
	}
	if strings.ContainsRune(domain, '\n') {
		return ObjectName{}, malformed(s, "invalid character in domain")
	}

	rest := s[colon+1:]
	if rest == "" {
		return ObjectName{}, malformed(s, "key properties cannot be empty")
	}

	parts, err := splitProperties(rest)
	if err != nil {
		return ObjectName{}, malformed(s, err.Error())
	}

	seen := make(map[string]bool, len(parts))
	props := make([]KeyProperty, 0, len(parts))
	for _, part := range parts {
		if part == "*" {
			return ObjectName{}, malformed(s, "property list pattern not allowed")
		}
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			return ObjectName{}, malformed(s, fmt.Sprintf("missing '=' in %q", part))
		}
		key, value := part[:eq], part[eq+1:]
		if err := checkKey(key); err != nil {
			return ObjectName{}, malformed(s, err.Error())
		}
		if err := checkValue(value); err != nil {
			return ObjectName{}, malformed(s, err.Error())
		}
		if seen[key] {
			return ObjectName{}, malformed(s, fmt.Sprintf("duplicate key %q", key))
		}
		seen[key] = true
		props = append(props, KeyProperty{Key: key, Value: value})
	}

	return ObjectName{domain: domain, props: props}, nil
}

// MustParseObjectName is like ParseObjectName but panics on error.
func MustParseObjectName(s string) ObjectName {
	n, err := ParseObjectName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func malformed(s, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrMalformedObjectName, s, reason)
}

// splitProperties splits on commas outside quoted values.
func splitProperties(s string) ([]string, error) {
	var parts []string
	start := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		case c == ',' && !inQuote:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	return append(parts, s[start:]), nil
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if strings.ContainsAny(key, ":,=*?\"\n") {
		return fmt.Errorf("invalid character in key %q", key)
	}
	return nil
}

func checkValue(value string) error {
	if value == "" {
		return fmt.Errorf("empty value")
	}
	if value[0] == '"' {
		return checkQuoted(value)
	}
	if strings.ContainsAny(value, "*?") {
		return fmt.Errorf("value pattern not allowed in %q", value)
	}
	if strings.ContainsAny(value, ":,=\"\n") {
		return fmt.Errorf("invalid character in value %q", value)
	}
	return nil
}

func checkQuoted(value string) error {
	if len(value) < 2 || value[len(value)-1] != '"' {
		return fmt.Errorf("unterminated quoted value %s", value)
	}
	body := value[1 : len(value)-1]
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			if i+1 >= len(body) {
				return fmt.Errorf("dangling escape in %s", value)
			}
			i++
			switch body[i] {
			case '"', '\\', '*', '?', 'n':
			default:
				return fmt.Errorf("invalid escape \\%c in %s", body[i], value)
			}
		case '"', '\n':
			return fmt.Errorf("invalid character in quoted value %s", value)
		case '*', '?':
			return fmt.Errorf("value pattern not allowed in %s", value)
		}
	}
	return nil
}

// Domain returns the domain part.
func (n ObjectName) Domain() string { return n.domain }

// KeyProperty returns the value for key as written.
func (n ObjectName) KeyProperty(key string) (string, bool) {
	for _, p := range n.props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// KeyProperties returns the key properties in declaration order.
func (n ObjectName) KeyProperties() []KeyProperty {
	return append([]KeyProperty(nil), n.props...)
}

// IsZero reports whether n is the zero ObjectName.
func (n ObjectName) IsZero() bool { return len(n.props) == 0 }

// String returns the name with key properties in declaration order.
func (n ObjectName) String() string {
	return n.domain + ":" + joinProps(n.props)
}

// Canonical returns the name with key properties sorted by key. Two names
// refer to the same bean iff their canonical forms are equal.
func (n ObjectName) Canonical() string {
	sorted := n.KeyProperties()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return n.domain + ":" + joinProps(sorted)
}

func joinProps(props []KeyProperty) string {
	var sb strings.Builder
	for i, p := range props {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}
