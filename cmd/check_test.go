package cmd

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckCommand_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "urls.csv")
	outputPath := filepath.Join(dir, "results.csv")
	input := strings.Join([]string{
		"URL",
		srv.URL,
		"",
		srv.URL + "/missing",
		"not-a-url",
	}, "\n")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{
		"check",
		"--input", inputPath,
		"--output", outputPath,
		"--concurrency", "2",
	})
	require.NoError(t, root.Execute())

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5, "header plus one row per input URL")
	require.Equal(t, []string{"Status Code or Error", "URL", "Error"}, records[0])

	statusByURL := map[string]string{}
	for _, rec := range records[1:] {
		statusByURL[rec[1]] = rec[0]
	}
	require.Equal(t, "200", statusByURL[srv.URL])
	require.Equal(t, "404", statusByURL[srv.URL+"/missing"])
	require.Equal(t, "Invalid", statusByURL["not-a-url"])
	require.Equal(t, "Invalid", statusByURL[""])
}

func TestCheckCommand_MissingInputFails(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{
		"check",
		"--input", filepath.Join(t.TempDir(), "nope.csv"),
		"--output", filepath.Join(t.TempDir(), "out.csv"),
	})
	require.Error(t, root.Execute())
}
