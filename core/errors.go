package core

import "fmt"

// ConfigError reports a source checkout that cannot be exported, detected
// before any archiving begins.
type ConfigError struct {
	Path string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("source directory does not exist: %s", e.Path)
}

// ExternalToolError reports a helper process or the compressor exiting
// non-zero. It is terminal; nothing is retried.
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
