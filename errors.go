package fringe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFitted is returned by operations that need a learned model
// before any successful Fit has recorded a trace file.
var ErrNotFitted = errors.New("no trace file recorded: run Fit first")

// MissingOutputError reports an expected flexfringe output file that is
// absent or not a regular file.
type MissingOutputError struct {
	Path string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("no output file found: %s", e.Path)
}

// toolInfo holds install metadata for a known external tool.
type toolInfo struct {
	Install string // download or install instructions
}

// knownTools maps tool binary names to their install metadata.
var knownTools = map[string]toolInfo{
	toolFlexfringe: {Install: "https://github.com/tudelft-cda-lab/FlexFringe"},
	toolDot:        {Install: "https://graphviz.org/download/"},
}

// ErrToolUnavailable is returned when a required executable is not
// found on PATH. It includes install instructions when the tool is
// known.
type ErrToolUnavailable struct {
	Name string
	Info *toolInfo
}

func NewErrToolUnavailable(name string) ErrToolUnavailable {
	e := ErrToolUnavailable{Name: name}
	if info, ok := knownTools[name]; ok {
		e.Info = &info
	}
	return e
}

func (e ErrToolUnavailable) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is required but not installed.", e.Name)
	if e.Info != nil && e.Info.Install != "" {
		fmt.Fprintf(&b, "\nInstall: %s", e.Info.Install)
	}
	return b.String()
}
