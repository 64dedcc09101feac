// Package decode converts media the origin cannot search into a format it
// can, using external codec tools.
package decode

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/agentstation/boorusync/pkg/constants"
	pkgerrors "github.com/agentstation/boorusync/pkg/errors"
	"github.com/agentstation/boorusync/pkg/logging"
)

// JXL decodes JPEG XL images to JPEG with the libjxl djxl tool.
type JXL struct {
	// Path is the djxl executable, looked up on PATH when it has no
	// directory component.
	Path string
}

// NewJXL returns a decoder running the djxl binary at path, or the default
// binary name when path is empty.
func NewJXL(path string) *JXL {
	if strings.TrimSpace(path) == "" {
		path = constants.DefaultDJXLPath
	}
	return &JXL{Path: path}
}

// Decode writes data to a private temp directory, runs
// "djxl input.jxl output.jpg" there and returns the JPEG bytes. A non-zero
// exit or a missing output file is a ProcessError.
func (d *JXL) Decode(ctx context.Context, data []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "boorusync-jxl-")
	if err != nil {
		return nil, pkgerrors.WrapIO("create", "temp dir", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("dir", dir).Msg("Failed to remove temp dir")
		}
	}()

	in := filepath.Join(dir, "input.jxl")
	out := filepath.Join(dir, "output.jpg")
	if err := os.WriteFile(in, data, constants.FilePermissions); err != nil {
		return nil, pkgerrors.WrapIO("write", in, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.Path, in, out)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		perr := &pkgerrors.ProcessError{
			Operation: "decode jxl",
			Command:   d.Path,
			Output:    processOutput(stderr.String(), stdout.String()),
			ExitCode:  -1,
			Err:       err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr.ExitCode = exitErr.ExitCode()
		}
		return nil, perr
	}

	jpeg, err := os.ReadFile(out)
	if err != nil {
		return nil, &pkgerrors.ProcessError{
			Operation: "decode jxl",
			Command:   d.Path,
			Output:    processOutput(stderr.String(), stdout.String()),
			Err:       pkgerrors.New("djxl succeeded but did not produce output file"),
		}
	}

	logging.FromContext(ctx).Debug().
		Int("input_bytes", len(data)).
		Int("output_bytes", len(jpeg)).
		Msg("Decoded jxl to jpeg")
	return jpeg, nil
}

// processOutput prefers stderr, falling back to stdout.
func processOutput(stderr, stdout string) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	return strings.TrimSpace(stdout)
}

// JPEGFilename replaces the extension of name with ".jpg".
func JPEGFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}
