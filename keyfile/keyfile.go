// Package keyfile reads the desktop-style key/value documents used for
// saved launch configurations: named groups in square brackets, key=value
// lines, semicolon-separated lists, and backslash escapes.
package keyfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type group struct {
	name string
	keys map[string]string
}

// File is a parsed key/value document. Group order is preserved; key
// presence is observable independently of a key's value.
type File struct {
	groups []*group
	index  map[string]*group
}

// Load reads and parses the document at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a document from raw bytes.
func Parse(data []byte) (*File, error) {
	f := &File{index: make(map[string]*group)}

	var current *group
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, fmt.Errorf("line %d: malformed group header %q", i+1, trimmed)
			}
			name := trimmed[1 : len(trimmed)-1]
			if name == "" {
				return nil, fmt.Errorf("line %d: empty group name", i+1)
			}
			current = &group{name: name, keys: make(map[string]string)}
			if _, dup := f.index[name]; !dup {
				f.groups = append(f.groups, current)
				f.index[name] = current
			} else {
				current = f.index[name]
			}
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, fmt.Errorf("line %d: expected key=value, got %q", i+1, trimmed)
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: key before any group", i+1)
		}
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", i+1)
		}
		current.keys[key] = line[eq+1:]
	}

	return f, nil
}

// HasGroup reports whether the document contains the named group.
func (f *File) HasGroup(name string) bool {
	_, ok := f.index[name]
	return ok
}

// HasKey reports whether the named group contains the key.
func (f *File) HasKey(groupName, key string) bool {
	g, ok := f.index[groupName]
	if !ok {
		return false
	}
	_, ok = g.keys[key]
	return ok
}

// String returns the unescaped value of a key. The second result is false
// when the group or key is absent.
func (f *File) String(groupName, key string) (string, bool) {
	g, ok := f.index[groupName]
	if !ok {
		return "", false
	}
	raw, ok := g.keys[key]
	if !ok {
		return "", false
	}
	return unescape(raw), true
}

// Integer returns the integer value of a key, or 0 when the key is absent
// or not a number.
func (f *File) Integer(groupName, key string) int {
	raw, ok := f.String(groupName, key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// Boolean returns the boolean value of a key; absent or unrecognized
// values read as false.
func (f *File) Boolean(groupName, key string) bool {
	raw, ok := f.String(groupName, key)
	if !ok {
		return false
	}
	switch strings.TrimSpace(raw) {
	case "true", "1":
		return true
	}
	return false
}

// StringList returns the semicolon-separated list value of a key. The
// second result is false when the group or key is absent.
func (f *File) StringList(groupName, key string) ([]string, bool) {
	g, ok := f.index[groupName]
	if !ok {
		return nil, false
	}
	raw, ok := g.keys[key]
	if !ok {
		return nil, false
	}

	var list []string
	var elem strings.Builder
	escaped := false
	for _, r := range raw {
		switch {
		case escaped:
			if r != ';' {
				elem.WriteRune('\\')
			}
			elem.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ';':
			list = append(list, unescape(elem.String()))
			elem.Reset()
		default:
			elem.WriteRune(r)
		}
	}
	if elem.Len() > 0 {
		list = append(list, unescape(elem.String()))
	}
	return list, true
}

// unescape decodes the keyfile value escapes: \s \n \t \r \\.
func unescape(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	escaped := false
	for _, r := range raw {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				b.WriteRune(r)
			}
			continue
		}
		switch r {
		case 's':
			b.WriteRune(' ')
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '\\':
			b.WriteRune('\\')
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
		escaped = false
	}
	return b.String()
}

// Uncompress decodes a second, C-string style escape layer used by the
// WorkingDirectory and Command keys on top of the keyfile escapes.
func Uncompress(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		switch s[i] {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := 0
			digits := 0
			for digits < 3 && i < len(s) && s[i] >= '0' && s[i] <= '7' {
				n = n*8 + int(s[i]-'0')
				i++
				digits++
			}
			b.WriteByte(byte(n))
			continue
		default:
			b.WriteByte(s[i])
		}
		i++
	}
	return b.String()
}
