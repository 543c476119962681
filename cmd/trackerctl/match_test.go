package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoster = `
students:
  - name: Kavindu Perera
    username: kavindu
    role: PM
    team:
      - name: Nimal Silva
        role: Developer
    aliases:
      - bitbucket: darkknight42
        person: Nimal Silva
  - name: Ann Lee
    username: annlee
    role: QA
`

func runMatch(t *testing.T, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRoster), 0o600))

	cmd := newMatchCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--roster", path))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestMatchCommand(t *testing.T) {
	out := runMatch(t, "darkknight42 <dk@mail.com>", "--group", "kavindu")
	assert.Equal(t, "kavindu\tspecial-case\tNimal Silva\n", out)

	out = runMatch(t, "Ann Lee <ann@uni.lk>")
	assert.Equal(t, "kavindu\tunmatched\tAnn Lee\nannlee\texact\tAnn Lee\n", out)
}

func TestMatchCommandUnknownGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRoster), 0o600))

	cmd := newMatchCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"someone", "--roster", path, "--group", "nobody"})
	assert.Error(t, cmd.Execute())
}
