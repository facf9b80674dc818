package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "https", in: "https://example.com/v", want: true},
		{name: "http", in: "http://example.com/v", want: true},
		{name: "no scheme", in: "example.com/v", want: false},
		{name: "ftp", in: "ftp://example.com/v", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsValidURL(tt.in))
		})
	}
}

func TestIsTimeLike(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "minutes and seconds", in: "0:10", want: true},
		{name: "bare seconds", in: "45", want: true},
		{name: "unbounded values still pass", in: "99:99", want: true},
		{name: "empty", in: "", want: false},
		{name: "word", in: "soon", want: false},
		{name: "mixed digits and letters", in: "10s", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsTimeLike(tt.in))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "bare seconds", in: "45", want: 45 * time.Second},
		{name: "mm:ss", in: "0:10", want: 10 * time.Second},
		{name: "mm:ss with minutes", in: "1:20", want: 80 * time.Second},
		{name: "hh:mm:ss", in: "1:02:03", want: 3723 * time.Second},
		{name: "unbounded components", in: "99:99", want: (99*60 + 99) * time.Second},
		{name: "too many components", in: "1:2:3:4", wantErr: true},
		{name: "empty component", in: "1::3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("missing URL", func(t *testing.T) {
		_, _, err := Parse(nil)
		require.ErrorIs(t, err, ErrMissingURL)
	})

	t.Run("invalid URL never becomes a job", func(t *testing.T) {
		_, _, err := Parse([]string{"not-a-url"})
		require.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("url only", func(t *testing.T) {
		req, warnings, err := Parse([]string{"https://example.com/v"})
		require.NoError(t, err)
		require.Empty(t, warnings)
		require.True(t, req.FullVideo())
		require.Nil(t, req.End)
	})

	t.Run("start and end", func(t *testing.T) {
		req, warnings, err := Parse([]string{"https://example.com/v", "0:10", "0:50"})
		require.NoError(t, err)
		require.Empty(t, warnings)
		require.NotNil(t, req.Start)
		require.NotNil(t, req.End)
		require.Equal(t, 10*time.Second, *req.Start)
		require.Equal(t, 50*time.Second, *req.End)
	})

	t.Run("start only", func(t *testing.T) {
		req, warnings, err := Parse([]string{"https://example.com/v", "1:20"})
		require.NoError(t, err)
		require.Empty(t, warnings)
		require.Equal(t, 80*time.Second, *req.Start)
		require.Nil(t, req.End)
	})

	t.Run("bad start leaves start unset and skips end", func(t *testing.T) {
		req, warnings, err := Parse([]string{"https://example.com/v", "soon", "0:50"})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		require.Equal(t, "soon", warnings[0].Token)
		// The third token is never interpreted as an end marker without an
		// accepted start, even though it is time-like.
		require.Nil(t, req.Start)
		require.Nil(t, req.End)
	})

	t.Run("bad end warns but keeps start", func(t *testing.T) {
		req, warnings, err := Parse([]string{"https://example.com/v", "0:10", "later"})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		require.Equal(t, "later", warnings[0].Token)
		require.Equal(t, 10*time.Second, *req.Start)
		require.Nil(t, req.End)
	})
}
