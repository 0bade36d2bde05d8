package headers

import (
	"bytes"
	"iter"
	"regexp"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
var fieldNameRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+$`)

type field struct {
	name  string
	value string
}

// Headers is an ordered header block. Lookups ignore case, but names are
// written back out with the casing they were added with.
type Headers struct {
	fields []field
	index  map[string]int
}

func isValidFieldValue(val []byte) bool {
	for _, c := range val {
		switch {
		case c == '\t', c == ' ':
		case 0x21 <= c && c <= 0x7E:
		case c >= 0x80:
		default:
			return false
		}
	}
	return true
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Add appends a header. Repeated names are folded into the first occurrence,
// separated by a comma. Invalid names or values are dropped so that a value
// can never split the header block.
func (h *Headers) Add(key, value string) {
	if !fieldNameRegex.MatchString(key) || !isValidFieldValue([]byte(value)) {
		return
	}

	nk := normalizeKey(key)
	if i, ok := h.index[nk]; ok {
		h.fields[i].value += ", " + value
		return
	}
	h.index[nk] = len(h.fields)
	h.fields = append(h.fields, field{name: key, value: value})
}

// Set replaces any existing value for key, keeping its position.
func (h *Headers) Set(key, value string) {
	if i, ok := h.index[normalizeKey(key)]; ok {
		if !isValidFieldValue([]byte(value)) {
			return
		}
		h.fields[i].value = value
		return
	}
	h.Add(key, value)
}

func (h *Headers) Get(key string) string {
	if i, ok := h.index[normalizeKey(key)]; ok {
		return h.fields[i].value
	}
	return ""
}

// All iterates over the headers in insertion order.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range h.fields {
			if !yield(f.name, f.value) {
				return
			}
		}
	}
}

// ParseLine parses a single field line and adds it to the headers.
func (h *Headers) ParseLine(data []byte) error {
	colonPos := bytes.IndexByte(data, ':')
	if colonPos == -1 {
		return ErrMalformedHeader
	}

	// leading whitespace in header key is allowed
	hkey := bytes.TrimLeft(data[:colonPos], " \t")
	hvalue := bytes.Trim(data[colonPos+1:], " \t")

	if !bytes.Equal(hkey, bytes.TrimRight(hkey, " \t")) {
		// space between key and colon, invalid
		return ErrMalformedHeader
	}

	if !fieldNameRegex.Match(hkey) || !isValidFieldValue(hvalue) {
		return ErrMalformedHeader
	}

	h.Add(string(hkey), string(hvalue))
	return nil
}

func (h *Headers) Size() int {
	return len(h.fields)
}

func NewHeaders() *Headers {
	return &Headers{
		index: map[string]int{},
	}
}
