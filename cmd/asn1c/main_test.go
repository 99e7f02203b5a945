package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	app.Writer, app.ErrWriter = &out, io.Discard
	t.Cleanup(func() { app.Writer, app.ErrWriter = os.Stdout, os.Stderr })
	e := app.Run(append([]string{"asn1c"}, args...))
	return out.String(), e
}

func TestEncode(t *testing.T) {
	test := func(expected string, args ...string) {
		t.Run(expected, func(t *testing.T) {
			out, e := run(t, append([]string{"encode"}, args...)...)
			require.NoError(t, e)
			assert.Equal(t, expected+"\n", out)
		})
	}
	test("20", "--type", "Links-to-log", "--value", "downlink")
	test("40", "--type", "Links-to-log", "--rule", "aper", "--value", "2")
	test("80b180", "--type", "Links-to-log", "--value", "99")
	test("0a0102", "-t", "Criticality", "--rule", "DER", "--value", "notify")
	test("<TypeOfError><missing/></TypeOfError>", "-t", "TypeOfError", "--rule", "xer", "--value", "missing")
}

func TestDecode(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	out, e := run(t, "decode", "--type", "Links-to-log", "80 b1 80")
	require.NoError(e)
	assert.Equal("99\nextension value, 3 octets, 17 bits\n", out)

	out, e = run(t, "decode", "--type", "Links-to-log", "--rule", "ber", "--offset", "1", "ff0a0102")
	require.NoError(e)
	assert.Equal("2 (both-uplink-and-downlink)\nroot value, 3 octets, 24 bits\n", out)

	_, e = run(t, "decode", "--type", "Links-to-log", "--rule", "der", "0a020001")
	assert.Error(e)
	_, e = run(t, "decode", "--type", "Links-to-log", "zz")
	assert.Error(e)
}

func TestCheckAndList(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	out, e := run(t, "check", "-t", "Criticality", "--value", "ignore")
	require.NoError(e)
	assert.Equal("1 (ignore)\n", out)

	_, e = run(t, "check", "-t", "Criticality", "--value", "7")
	assert.Error(e)
	_, e = run(t, "check", "-t", "Nope", "--value", "7")
	assert.Error(e)

	out, e = run(t, "list")
	require.NoError(e)
	assert.Contains(out, "Registration-Request ::= ENUMERATED { start(0), stop(1), ..., partial-stop(2), add(3) }\n")
	assert.Contains(out, "Criticality ::= ENUMERATED { reject(0), ignore(1), notify(2) }\n")
}

func TestDefinitionsFile(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	filename := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(os.WriteFile(filename, []byte(`
- name: Direction
  extensible: true
  root: [north, south, east, west]
`), 0o644))

	out, e := run(t, "--file", filename, "encode", "-t", "Direction", "--value", "west")
	require.NoError(e)
	assert.Equal("60\n", out)

	require.NoError(os.WriteFile(filename, []byte(`
- name: Criticality
  root: [a]
`), 0o644))
	_, e = run(t, "-f", filename, "list")
	assert.Error(e)
}
