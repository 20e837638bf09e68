package opts

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/acipher/pkg/config"
	"github.com/walteh/acipher/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigFile string
	Debug      bool

	// Streams, swapped out in tests
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	// Set up before any command runs
	Config  *config.Config
	Console *log.Logger
	Logger  zerolog.Logger
}
