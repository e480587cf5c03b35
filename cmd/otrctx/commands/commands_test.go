package commands_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otrctx/cmd/otrctx/commands"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("OTRCTX_HOME", "")
	t.Setenv("OTRCTX_LOG_LEVEL", "")
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTLVEncodeDecode(t *testing.T) {
	home := t.TempDir()

	out, err := run(t, "--home", home, "tlv", "encode", "1:414243")
	require.NoError(t, err)
	assert.Equal(t, "00010003414243\n", out)

	out, err = run(t, "--home", home, "tlv", "decode", "0001000341424300080000ff")
	require.NoError(t, err)
	assert.Equal(t, "type=1 (DISCONNECTED) len=3 data=414243\ntype=8 (SYMKEY) len=0 data=\nignored 1 trailing bytes\n", out)

	_, err = run(t, "--home", home, "tlv", "encode", "nocolon")
	assert.Error(t, err)
	_, err = run(t, "--home", home, "tlv", "encode", "70000:00")
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	out, err := run(t, "--home", t.TempDir(), "fingerprint", strings.Repeat("ab", 32))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Fingerprint: "))
	fields := strings.Fields(strings.TrimPrefix(out, "Fingerprint: "))
	assert.Len(t, fields, 5)

	_, err = run(t, "--home", t.TempDir(), "fingerprint", "zz")
	assert.Error(t, err)
}

func TestInstagLifecycle(t *testing.T) {
	home := t.TempDir()

	out, err := run(t, "--home", home, "instag", "generate", "alice@example.org", "xmpp")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "alice@example.org/xmpp "))

	out, err = run(t, "--home", home, "instag", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice@example.org/xmpp")

	_, err = run(t, "--home", home, "instag", "forget", "alice@example.org", "xmpp")
	require.NoError(t, err)
	_, err = run(t, "--home", home, "instag", "forget", "alice@example.org", "xmpp")
	assert.Error(t, err)

	out, err = run(t, "--home", home, "instag", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no instance tags")
}

func TestSessionDemo(t *testing.T) {
	out, err := run(t, "--home", t.TempDir(), "--log-level", "error", "session", "demo", "--peer", "carol")
	require.NoError(t, err)
	assert.Contains(t, out, "carol/me@example.org/xmpp#00001002")
	assert.Contains(t, out, "ENCRYPTED")
	assert.Contains(t, out, "after the phone ends its session")
	assert.Contains(t, out, "FINISHED")
}
