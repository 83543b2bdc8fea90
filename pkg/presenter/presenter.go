// Package presenter renders the banner and the informational texts of the CLI.
package presenter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
)

// Name is the product name shown in the banner and version text.
const Name = "SnapHero"

// Presenter writes presentation text to out. It holds no state that
// affects captures.
type Presenter struct {
	out     io.Writer
	version string

	isTerminal func() bool
	lookPath   func(file string) (string, error)
	figlet     func(path string, args ...string) ([]byte, error)
}

// New creates a Presenter writing to out.
func New(out io.Writer, version string) *Presenter {
	return &Presenter{
		out:     out,
		version: version,
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		lookPath: exec.LookPath,
		figlet: func(path string, args ...string) ([]byte, error) {
			return exec.Command(path, args...).Output()
		},
	}
}

// Banner prints the startup banner. figlet is used when stdout is a
// terminal and figlet is on PATH; any failure falls back to plain text.
func (p *Presenter) Banner() {
	if p.isTerminal() {
		if banner, err := p.renderFiglet(); err == nil {
			p.out.Write(banner)
			fmt.Fprintln(p.out)
			return
		}
	}
	fmt.Fprintf(p.out, "=== %s v%s ===\n\n", Name, p.version)
}

func (p *Presenter) renderFiglet() ([]byte, error) {
	path, err := p.lookPath("figlet")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	title, err := p.figlet(path, "-f", "slant", Name)
	if err != nil {
		return nil, fmt.Errorf("figlet title: %w", err)
	}
	buf.Write(title)

	sub, err := p.figlet(path, "-f", "small", "v"+p.version)
	if err != nil {
		return nil, fmt.Errorf("figlet version: %w", err)
	}
	buf.Write(sub)
	return buf.Bytes(), nil
}

// Version prints the version line.
func (p *Presenter) Version() {
	fmt.Fprintf(p.out, "%s v%s\n", Name, p.version)
}

// Manual prints the complete option reference.
func (p *Presenter) Manual() {
	fmt.Fprintf(p.out, manualText, p.version)
}

// Examples prints practical usage examples.
func (p *Presenter) Examples() {
	fmt.Fprint(p.out, examplesText)
}
