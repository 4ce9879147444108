package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead_SkipsHeaderKeepsRows(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"URL,Notes",
		"https://a.example,first",
		"https://b.example",
		"",
		"   ",
		"no-scheme.example,whatever",
	}, "\n")

	rows, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://a.example",
		"https://b.example",
		"",
		"",
		"no-scheme.example",
	}, rows)
}

func TestRead_QuotedFirstField(t *testing.T) {
	t.Parallel()

	in := "URL\n\"https://a.example/path?x=1,y=2\",note\n"
	rows, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example/path?x=1,y=2"}, rows)
}

func TestRead_MissingHeader(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader(""))
	require.Error(t, err)
}

func TestRead_HeaderOnly(t *testing.T) {
	t.Parallel()

	rows, err := Read(strings.NewReader("URL\n"))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.csv")
	require.NoError(t, os.WriteFile(path, []byte("URL\nhttps://a.example\n"), 0o600))

	rows, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example"}, rows)
}

func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
