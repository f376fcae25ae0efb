package chart

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/coordviz/parcoords/pkg/errors"
)

// converterBin is the external tool used for SVG conversion.
// Install librsvg to get it: brew install librsvg (macOS),
// apt install librsvg2-bin (Linux).
const converterBin = "rsvg-convert"

// ToPDF converts a rendered SVG chart to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts a rendered SVG chart to PNG at the given scale factor.
// A scale of 2.0 produces a 2x resolution image.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(converterBin); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires %s (install librsvg)", format, converterBin)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(converterBin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"%s: %s", converterBin, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
