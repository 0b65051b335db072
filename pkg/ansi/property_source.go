package ansi

import "strings"

type mappedElements struct {
	prefix   string
	elements []Element
}

var mappings = []mappedElements{
	{"AnsiStyle.", styleElements()},
	{"AnsiColor.", colorElements()},
	{"AnsiBackground.", backgroundElements()},
	{"Ansi.", styleElements()},
	{"Ansi.", colorElements()},
	{"Ansi.BG_", backgroundElements()},
}

func styleElements() []Element {
	out := make([]Element, 0, len(styleNames))
	for s := range styleNames {
		out = append(out, s)
	}
	return out
}

func colorElements() []Element {
	out := make([]Element, 0, len(colorNames))
	for c := range colorNames {
		out = append(out, c)
	}
	return out
}

func backgroundElements() []Element {
	out := make([]Element, 0, len(backgroundNames))
	for b := range backgroundNames {
		out = append(out, b)
	}
	return out
}

// PropertySource resolves keys such as "AnsiColor.RED", "Ansi.BOLD" or
// "Ansi.BG_BLUE" to ANSI elements. It satisfies env.PropertySource.
type PropertySource struct {
	name   string
	encode bool
}

// NewPropertySource creates a source. When encode is true, Property returns
// the escape sequence (subject to the current Mode); otherwise it returns the
// element name.
func NewPropertySource(name string, encode bool) *PropertySource {
	return &PropertySource{name: name, encode: encode}
}

// Name returns the source name.
func (p *PropertySource) Name() string { return p.name }

// Element looks up the element for key.
func (p *PropertySource) Element(key string) (Element, bool) {
	if key == "" {
		return nil, false
	}
	for _, m := range mappings {
		if !strings.HasPrefix(key, m.prefix) {
			continue
		}
		name := key[len(m.prefix):]
		for _, e := range m.elements {
			if e.String() == name {
				return e, true
			}
		}
	}
	return nil, false
}

// Property resolves key to an encoded escape or an element name.
func (p *PropertySource) Property(key string) (string, bool) {
	e, ok := p.Element(key)
	if !ok {
		return "", false
	}
	if p.encode {
		return Encode(e), true
	}
	return e.String(), true
}
