package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svlang/logging"
)

func TestParseOptions(t *testing.T) {
	t.Run("full table", func(t *testing.T) {
		opts, err := Parse([]byte(`
[elaboration]
log-level = "warning"
max-steps = 5000
max-depth = 32
script-mode = true
strict-x = true
`))
		require.NoError(t, err)

		assert.Equal(t, logging.LogLevelWarning, opts.LogLevel)
		assert.Equal(t, 5000, opts.Eval.MaxSteps)
		assert.Equal(t, 32, opts.Eval.MaxDepth)
		assert.True(t, opts.Eval.ScriptMode)
		assert.True(t, opts.Eval.StrictX)
	})

	t.Run("missing table keeps defaults", func(t *testing.T) {
		opts, err := Parse([]byte(``))
		require.NoError(t, err)

		def := DefaultOptions()
		assert.Equal(t, def.LogLevel, opts.LogLevel)
		assert.Equal(t, def.Eval, opts.Eval)
	})

	t.Run("partial table keeps remaining defaults", func(t *testing.T) {
		opts, err := Parse([]byte("[elaboration]\nmax-steps = 10\n"))
		require.NoError(t, err)

		assert.Equal(t, 10, opts.Eval.MaxSteps)
		assert.Equal(t, DefaultOptions().Eval.MaxDepth, opts.Eval.MaxDepth)
	})

	t.Run("unknown log level defaults to verbose", func(t *testing.T) {
		opts, err := Parse([]byte("[elaboration]\nlog-level = \"chatty\"\n"))
		require.NoError(t, err)
		assert.Equal(t, logging.LogLevelVerbose, opts.LogLevel)
	})

	t.Run("negative limits rejected", func(t *testing.T) {
		_, err := Parse([]byte("[elaboration]\nmax-steps = -1\n"))
		assert.Error(t, err)
	})

	t.Run("malformed toml rejected", func(t *testing.T) {
		_, err := Parse([]byte("[elaboration\n"))
		assert.Error(t, err)
	})
}
