package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runRQ(t, binaryPath, home, "", "item", "add", "img/harbour.jpg", "--user", "maria")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runRQ(t, binaryPath, home, "rate 5 lovely light\nquit\n", "review", "--user", "ana")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "payload: img/harbour.jpg")
	assert.Contains(t, stdout, "reviewed 1")

	stdout, stderr, err = runRQ(t, binaryPath, home, "", "item", "list", "--user", "maria")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "5.0 (1 review)")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "rq-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rq")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build rq binary: %s", string(output))
	return binaryPath
}

func runRQ(t *testing.T, binaryPath, home, input string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Stdin = strings.NewReader(input)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
