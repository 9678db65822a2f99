package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// scriptSource is a fully buffered script. It stays on the stack until a
// read finds it empty, so the command read from its last line still counts
// as running inside it.
type scriptSource struct {
	path  string
	lines []string
	next  int
}

func (s *scriptSource) exhausted() bool { return s.next >= len(s.lines) }

// inputStack feeds lines to the console: the newest script first, then the
// scripts beneath it, then the interactive stream.
type inputStack struct {
	interactive *bufio.Reader
	scripts     []*scriptSource
	maxDepth    int
	logger      log.FieldLogger
}

func newInputStack(r io.Reader, maxDepth int, logger log.FieldLogger) *inputStack {
	return &inputStack{
		interactive: bufio.NewReader(r),
		maxDepth:    maxDepth,
		logger:      logger,
	}
}

// depth returns the number of scripts on the stack.
func (in *inputStack) depth() int { return len(in.scripts) }

// readLine returns the next line without its terminator. Lines have no
// length limit, and an unterminated final line is still returned. It
// returns errEndOfInput once the interactive stream is exhausted.
func (in *inputStack) readLine() (string, error) {
	for len(in.scripts) > 0 {
		top := in.scripts[len(in.scripts)-1]
		if !top.exhausted() {
			line := top.lines[top.next]
			top.next++
			return line, nil
		}
		in.scripts = in.scripts[:len(in.scripts)-1]
		in.logger.WithFields(log.Fields{
			"path":  top.path,
			"depth": len(in.scripts),
		}).Debug("script finished")
	}

	line, err := in.interactive.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line == "":
		return "", errEndOfInput
	case err != nil && !errors.Is(err, io.EOF):
		return "", fmt.Errorf("%w: %w", errReadInput, err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// push reads the script at path and places its lines ahead of everything
// still pending. A script that is still on the stack cannot be pushed
// again.
func (in *inputStack) push(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving script %s: %w", path, err)
	}
	for _, s := range in.scripts {
		if s.path == abs {
			return fmt.Errorf("%w: %s", ErrScriptRecursion, path)
		}
	}
	if len(in.scripts) >= in.maxDepth {
		return fmt.Errorf("%w: limit is %d", ErrScriptDepth, in.maxDepth)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	in.scripts = append(in.scripts, &scriptSource{path: abs, lines: splitLines(string(data))})
	in.logger.WithFields(log.Fields{
		"path":  abs,
		"depth": len(in.scripts),
	}).Debug("script started")
	return nil
}

// splitLines splits text into lines, accepting LF and CRLF endings. A final
// terminator does not produce a trailing empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
