package attrs

import "strings"

// AttrList is the parsed form of a `[...]` attribute list attached to a
// block or inline macro: a mix of positional values,
// named values, and the `#id`/`.role`/`%option` shorthands.
type AttrList struct {
	Positional []string
	Named      map[string]string
	ID         string
	Roles      []string
	Options    []string
}

// First returns the first positional entry (conventionally the block
// style, or an image's alt text), or "" if there is none.
func (a *AttrList) First() string {
	if len(a.Positional) == 0 {
		return ""
	}

	return a.Positional[0]
}

// NamedValue returns a named attribute's value.
func (a *AttrList) NamedValue(name string) (string, bool) {
	v, ok := a.Named[name]

	return v, ok
}

// LiteralPositional builds an AttrList whose single positional entry
// keeps text byte-for-byte, surrounding quote characters included -
// used for xref link text, where quotes are literal content rather
// than value quoting.
func LiteralPositional(text string) *AttrList {
	a := &AttrList{Named: make(map[string]string)}
	if text != "" {
		a.Positional = append(a.Positional, text)
	}

	return a
}

// splitTopLevel splits s on commas that are not inside a quoted
// substring, trimming surrounding whitespace from each field.
func splitTopLevel(s string) []string {
	var fields []string
	var buf strings.Builder
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote != 0:
			buf.WriteByte(c)
			if c == inQuote && (i == 0 || s[i-1] != '\\') {
				inQuote = 0
			}
		case c == '"' || c == '\'':
			inQuote = c
			buf.WriteByte(c)
		case c == ',':
			fields = append(fields, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(buf.String()))

	return fields
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}

	return s
}

// splitTopLevelEquals splits "name=value" on the first unquoted '='.
func splitTopLevelEquals(s string) (string, string, bool) {
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote && (i == 0 || s[i-1] != '\\') {
				inQuote = 0
			}

			continue
		}
		if c == '"' || c == '\'' {
			inQuote = c

			continue
		}
		if c == '=' {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
		}
	}

	return "", "", false
}

// ParseAttrList parses the raw text between `[` and `]` (exclusive) of
// a block or inline attribute list.
//
// Shorthand entries (applicable to the first field only, following
// asciidoctor's block shorthand syntax) are recognized anywhere a
// `#id`, `.role`, or `%option` run appears glued together without
// intervening commas, e.g. "quote#disclaimer.center%incremental".
func ParseAttrList(raw string) *AttrList {
	a := &AttrList{Named: make(map[string]string)}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return a
	}

	for i, field := range splitTopLevel(raw) {
		if field == "" {
			continue
		}
		if name, value, ok := splitTopLevelEquals(field); ok {
			value = unquote(value)
			switch name {
			case "id":
				a.ID = value
			case "role":
				a.Roles = append(a.Roles, strings.Fields(value)...)
			case "options", "opts":
				a.Options = append(a.Options, strings.Split(value, ",")...)
			default:
				a.Named[name] = value
			}

			continue
		}

		if i == 0 {
			a.parseShorthand(field)

			continue
		}
		a.Positional = append(a.Positional, unquote(field))
	}

	return a
}

// parseShorthand splits the first positional field into a base value
// plus any glued #id/.role/%option shorthand suffixes.
func (a *AttrList) parseShorthand(field string) {
	base := strings.Builder{}
	i := 0
	for i < len(field) && field[i] != '#' && field[i] != '.' && field[i] != '%' {
		base.WriteByte(field[i])
		i++
	}
	if base.Len() > 0 {
		a.Positional = append(a.Positional, unquote(base.String()))
	}
	for i < len(field) {
		marker := field[i]
		j := i + 1
		for j < len(field) && field[j] != '#' && field[j] != '.' && field[j] != '%' {
			j++
		}
		val := field[i+1 : j]
		switch marker {
		case '#':
			a.ID = val
		case '.':
			a.Roles = append(a.Roles, val)
		case '%':
			a.Options = append(a.Options, val)
		}
		i = j
	}
}
