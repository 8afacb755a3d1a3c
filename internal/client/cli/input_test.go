package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("admin@forensicvideo.com\n"))

	got, err := ReadLine(reader, "Email", &out)
	require.NoError(t, err)
	assert.Equal(t, "admin@forensicvideo.com", got)
	assert.Equal(t, "Email: ", out.String())
}

func TestReadLine_TrimsWhitespace(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  spaced out  \n"))
	got, err := ReadLine(reader, "Name", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "spaced out", got)
}

func TestReadLine_PartialLineAtEOF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("no-newline"))
	got, err := ReadLine(reader, "Email", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)
}

func TestReadLine_EmptyInputReturnsError(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))
	_, err := ReadLine(reader, "Email", io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadPassword_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) { return []byte("admin123"), nil }

	var out bytes.Buffer
	got, err := ReadPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "admin123", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestReadPassword_PropagatesError(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	boom := errors.New("not a terminal")
	readPassword = func(fd int) ([]byte, error) { return nil, boom }

	_, err := ReadPassword(io.Discard)
	assert.ErrorIs(t, err, boom)
}
