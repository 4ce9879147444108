package checker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "https url", raw: "https://example.com", want: nil},
		{name: "http url with path", raw: "http://example.com/a/b?q=1", want: nil},
		{name: "surrounding whitespace", raw: "  https://example.com  ", want: nil},
		{name: "empty", raw: "", want: ErrEmptyURL},
		{name: "whitespace only", raw: "   \t", want: ErrEmptyURL},
		{name: "missing scheme", raw: "example.com", want: ErrInvalidURL},
		{name: "missing host", raw: "https://", want: ErrInvalidURL},
		{name: "scheme only", raw: "mailto:someone", want: ErrInvalidURL},
		{name: "garbage", raw: "not a url at all", want: ErrInvalidURL},
		{name: "relative path", raw: "/just/a/path", want: ErrInvalidURL},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tc.raw)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestInvalidDetail(t *testing.T) {
	t.Parallel()

	require.Equal(t, DetailEmptyURL, invalidDetail(ErrEmptyURL))
	require.Equal(t, DetailInvalidURL, invalidDetail(ErrInvalidURL))
}
