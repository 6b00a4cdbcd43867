// Package key implements the KEY executor's key-path mini-grammar (spec
// §6): a dot/bracket path over an object/array, e.g. "a.b[2].c", with an
// optional leading delimiter character overriding '.' (grounded on
// original_source/Source/PurC/executors/exe_key.c's delimiter-splitting
// semantics: the first character, if not a letter/underscore, is taken as
// the path's own delimiter instead of the default '.').
package key

import (
	"strconv"
	"strings"
)

// Segment is one step of a key path: either a named field or an array
// index.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// Path is the parsed form of one key-path expression.
type Path struct {
	Delim    byte
	Segments []Segment
}

// Parse tokenizes and parses a key-path string.
func Parse(s string) (*Path, error) {
	if s == "" {
		return &Path{Delim: '.'}, nil
	}
	delim := byte('.')
	if c := s[0]; !isIdentStart(c) {
		delim = c
		s = s[1:]
	}
	p := &Path{Delim: delim}
	for _, raw := range splitPath(s, delim) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if idx, err := strconv.Atoi(strings.Trim(raw, "[]")); err == nil && strings.HasPrefix(raw, "[") {
			p.Segments = append(p.Segments, Segment{Index: idx, IsIndex: true})
			continue
		}
		p.Segments = append(p.Segments, Segment{Name: raw})
	}
	return p, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitPath splits on delim at the top level, keeping bracketed index
// segments ("[N]") as their own tokens regardless of delim.
func splitPath(s string, delim byte) []string {
	var out []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == delim:
			out = append(out, cur.String())
			cur.Reset()
		case c == '[':
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				cur.WriteByte(c)
				continue
			}
			out = append(out, s[i:i+j+1])
			i += j
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// String renders the path back to its canonical textual form, satisfying
// the round-trip law Parse(p.String()) produces an equal Path.
func (p *Path) String() string {
	var sb strings.Builder
	if p.Delim != '.' {
		sb.WriteByte(p.Delim)
	}
	for i, seg := range p.Segments {
		if seg.IsIndex {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
			continue
		}
		if i > 0 {
			sb.WriteByte(p.Delim)
		}
		sb.WriteString(seg.Name)
	}
	return sb.String()
}
