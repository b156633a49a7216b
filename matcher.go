package httpdate

import (
	"github.com/pkg/errors"
)

const (
	// matchNotYetFound means no pattern has completed, but at least one
	// still can with more input.
	matchNotYetFound = -1
	// matchCantFind means no pattern can match the input seen so far.
	matchCantFind = -2
)

// matcher is an anchored multi-pattern matcher, a trie compiled once and
// then walked one byte at a time. The walker keeps its own cursor so a
// single matcher can be shared read-only by any number of parses.
type matcher struct {
	name     string
	foldCase bool
	patterns []string
	nodes    []matchNode
}

type matchNode struct {
	edges []matchEdge
	id    int // pattern ending here, or -1
}

type matchEdge struct {
	c  byte
	to uint16
}

func compileMatcher(name string, foldCase bool, patterns []string) (*matcher, error) {
	m := &matcher{
		name:     name,
		foldCase: foldCase,
		patterns: patterns,
		nodes:    []matchNode{{id: -1}},
	}
	for id, pat := range patterns {
		if len(pat) == 0 {
			return nil, errors.Errorf("matcher %s: pattern %d is empty", name, id)
		}
		cur := 0
		for i := 0; i < len(pat); i++ {
			if m.nodes[cur].id >= 0 {
				return nil, errors.Errorf("matcher %s: pattern %q is shadowed by %q",
					name, pat, patterns[m.nodes[cur].id])
			}
			c := m.fold(pat[i])
			next, ok := m.child(cur, c)
			if !ok {
				if len(m.nodes) > 0xFFFF {
					return nil, errors.Errorf("matcher %s: too many patterns", name)
				}
				next = len(m.nodes)
				m.nodes = append(m.nodes, matchNode{id: -1})
				m.nodes[cur].edges = append(m.nodes[cur].edges, matchEdge{c: c, to: uint16(next)})
			}
			cur = next
		}
		switch {
		case m.nodes[cur].id >= 0:
			return nil, errors.Errorf("matcher %s: duplicate pattern %q", name, pat)
		case len(m.nodes[cur].edges) > 0:
			return nil, errors.Errorf("matcher %s: pattern %q is a prefix of another pattern", name, pat)
		}
		m.nodes[cur].id = id
	}
	return m, nil
}

func (m *matcher) fold(c byte) byte {
	if m.foldCase && c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func (m *matcher) child(node int, c byte) (int, bool) {
	for _, e := range m.nodes[node].edges {
		if e.c == c {
			return int(e.to), true
		}
	}
	return 0, false
}

// next feeds one byte. The cursor is zero at the start of a field. It
// returns the cursor to use with the following byte and either a pattern
// index, matchNotYetFound or matchCantFind.
func (m *matcher) next(cursor uint16, c byte) (uint16, int) {
	if int(cursor) >= len(m.nodes) {
		return 0, matchCantFind
	}
	to, ok := m.child(int(cursor), m.fold(c))
	if !ok {
		return 0, matchCantFind
	}
	if id := m.nodes[to].id; id >= 0 {
		return 0, id
	}
	return uint16(to), matchNotYetFound
}
