package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{progName}, args...))

	return out.String(), err
}

func TestCompressDecompressCommands(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.txt")
	content := []byte(strings.Repeat("command line round trip ", 30))
	require.NoError(t, os.WriteFile(input, content, 0o644))

	for _, algorithm := range []string{"rle", "huffman", "lz77", "zstd"} {
		t.Run(algorithm, func(t *testing.T) {
			out, err := runApp(t, "compress", "-a", algorithm, input)
			require.NoError(t, err)
			compressed := filepath.Join(dir, "compressed-notes.txt")
			require.Contains(t, out, compressed)

			restored := filepath.Join(dir, "restored.txt")
			_, err = runApp(t, "decompress", "-a", algorithm, "-o", restored, compressed)
			require.NoError(t, err)

			got, err := os.ReadFile(restored)
			require.NoError(t, err)
			require.Equal(t, content, got)
		})
	}
}

func TestCompressCommand_Options(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "runs.dat")
	require.NoError(t, os.WriteFile(input, []byte("aaaa"), 0o644))

	_, err := runApp(t, "compress", "-a", "huffman", input)
	require.Error(t, err)

	_, err = runApp(t, "compress", "-a", "huffman", "--variant", "raw", "--strict", input)
	require.Error(t, err)

	output := filepath.Join(dir, "out.lz")
	_, err = runApp(t, "compress", "-a", "lz77", "--variant", "raw", "--window", "4", "--lookahead", "2", "-o", output, input)
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 'a', 0, 1, 0, 1, 'a', 0, 0, 0, 0, 'a'}, got)

	_, err = runApp(t, "compress", "-a", "lz77", "--variant", "raw", "--window", "0", input)
	require.Error(t, err)

	_, err = runApp(t, "compress")
	require.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(input, []byte(strings.Repeat("a,b,c\n1,2,3\n", 40)), 0o644))

	csvPath := filepath.Join(dir, "report.csv")
	chartPath := filepath.Join(dir, "report.svg")
	out, err := runApp(t, "bench", "--csv", csvPath, "--chart", chartPath, input)
	require.NoError(t, err)
	require.Contains(t, out, "CODEC")
	require.Contains(t, out, "huffman")

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(csvData), "codec,variant,"))

	svg, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	require.Contains(t, string(svg), "<svg")
}
