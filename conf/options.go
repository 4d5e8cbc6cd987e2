package conf

import (
	"io/ioutil"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"svlang/eval"
	"svlang/logging"
)

// tomlOptionsFile represents the options file as it is encoded in TOML
type tomlOptionsFile struct {
	Elaboration *tomlElaboration `toml:"elaboration"`
}

// tomlElaboration represents the elaboration options table
type tomlElaboration struct {
	LogLevel   string `toml:"log-level,omitempty"`
	MaxSteps   int    `toml:"max-steps,omitempty"`
	MaxDepth   int    `toml:"max-depth,omitempty"`
	ScriptMode bool   `toml:"script-mode"`
	StrictX    bool   `toml:"strict-x"`
}

// Options holds the tool-level knobs the semantic core consumes: the
// diagnostic log level and the constant evaluation limits
type Options struct {
	LogLevel int
	Eval     eval.Options
}

// DefaultOptions returns the options used when no file overrides them
func DefaultOptions() *Options {
	return &Options{
		LogLevel: logging.LogLevelVerbose,
		Eval:     eval.DefaultOptions(),
	}
}

// Load reads and validates an options file.  Missing tables and fields keep
// their defaults.
func Load(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening options file")
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "reading options file")
	}

	return Parse(buff)
}

// Parse deserializes options from TOML bytes
func Parse(buff []byte) (*Options, error) {
	tof := &tomlOptionsFile{}
	if err := toml.Unmarshal(buff, tof); err != nil {
		return nil, errors.Wrap(err, "unmarshaling options")
	}

	opts := DefaultOptions()
	if tof.Elaboration == nil {
		return opts, nil
	}

	te := tof.Elaboration
	opts.LogLevel = parseLogLevel(te.LogLevel)

	if te.MaxSteps < 0 || te.MaxDepth < 0 {
		return nil, errors.New("evaluation limits must be non-negative")
	}
	if te.MaxSteps > 0 {
		opts.Eval.MaxSteps = te.MaxSteps
	}
	if te.MaxDepth > 0 {
		opts.Eval.MaxDepth = te.MaxDepth
	}
	opts.Eval.ScriptMode = te.ScriptMode
	opts.Eval.StrictX = te.StrictX

	return opts, nil
}

// parseLogLevel maps a level name to its logging constant; everything
// unrecognized (including empty) defaults to verbose
func parseLogLevel(name string) int {
	switch name {
	case "silent":
		return logging.LogLevelSilent
	case "error":
		return logging.LogLevelError
	case "warning":
		return logging.LogLevelWarning
	default:
		return logging.LogLevelVerbose
	}
}
