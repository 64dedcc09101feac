package decode

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boorusync/pkg/errors"
)

// fakeDJXL writes an executable shell script standing in for djxl.
func fakeDJXL(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "djxl")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestDecode(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		// Stand-in "decoder" prefixes the input with a marker.
		d := NewJXL(fakeDJXL(t, `{ printf 'JPEG:'; cat "$1"; } > "$2"`))
		out, err := d.Decode(ctx, []byte("jxl-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "JPEG:jxl-bytes", string(out))
	})

	t.Run("non-zero exit", func(t *testing.T) {
		d := NewJXL(fakeDJXL(t, "echo 'bad codestream' >&2\nexit 3"))
		_, err := d.Decode(ctx, []byte("x"))

		var perr *errors.ProcessError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 3, perr.ExitCode)
		assert.Equal(t, "bad codestream", perr.Output)
	})

	t.Run("no output file", func(t *testing.T) {
		d := NewJXL(fakeDJXL(t, "exit 0"))
		_, err := d.Decode(ctx, []byte("x"))

		var perr *errors.ProcessError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Error(), "did not produce output file")
	})

	t.Run("missing binary", func(t *testing.T) {
		d := NewJXL(filepath.Join(t.TempDir(), "no-such-djxl"))
		_, err := d.Decode(ctx, []byte("x"))

		var perr *errors.ProcessError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestNewJXLDefault(t *testing.T) {
	assert.Equal(t, "djxl", NewJXL(" ").Path)
}

func TestJPEGFilename(t *testing.T) {
	assert.Equal(t, "dog.jpg", JPEGFilename("dog.jxl"))
	assert.Equal(t, "archive.tar.jpg", JPEGFilename("archive.tar.gz"))
	assert.Equal(t, "noext.jpg", JPEGFilename("noext"))
}
