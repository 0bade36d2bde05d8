package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Target
	}{
		{"localhost:8080/index.html", Target{Host: "localhost", Port: 8080, Path: "/index.html"}},
		{"localhost:8080", Target{Host: "localhost", Port: 8080, Path: "/"}},
		{"localhost:8080/", Target{Host: "localhost", Port: 8080, Path: "/"}},
		{"example.com/a/b", Target{Host: "example.com", Port: 80, Path: "/a/b"}},
		{"example.com", Target{Host: "example.com", Port: 80, Path: "/"}},
		{"example.com:", Target{Host: "example.com", Port: 80, Path: "/"}},
		{"http://127.0.0.1:9000/x", Target{Host: "127.0.0.1", Port: 9000, Path: "/x"}},
		{"127.0.0.1:9000?q=1", Target{Host: "127.0.0.1", Port: 9000, Path: "/?q=1"}},
		{"[::1]:8080/v6", Target{Host: "::1", Port: 8080, Path: "/v6"}},
		{"[::1]", Target{Host: "::1", Port: 80, Path: "/"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDefaultsPortAndPath(t *testing.T) {
	for _, in := range []string{"a", "b.local", "10.0.0.1", "http://host"} {
		got, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, 80, got.Port, in)
		assert.Equal(t, "/", got.Path, in)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("localhost:http/x")
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, err = Parse("localhost:99999")
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, err = Parse(":8080/x")
	assert.ErrorIs(t, err, ErrMissingHost)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrMissingHost)

	_, err = Parse("[::1/x")
	assert.ErrorIs(t, err, ErrMissingHost)
}

func TestTargetHostPort(t *testing.T) {
	tg := Target{Host: "::1", Port: 8080, Path: "/"}
	assert.Equal(t, "[::1]:8080", tg.HostPort())
	assert.Equal(t, "[::1]:8080/", tg.String())
}
