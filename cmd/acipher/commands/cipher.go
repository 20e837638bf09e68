package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/acipher/cmd/acipher/opts"
	"github.com/walteh/acipher/pkg/affine"
	"github.com/walteh/acipher/pkg/log"
	"github.com/walteh/acipher/pkg/stream"
	"github.com/walteh/acipher/pkg/transcript"
	"gitlab.com/tozd/go/errors"
)

type cipherFlags struct {
	decode   bool
	writeLog bool
	logDir   string
	verbose  bool
}

// NewCipherCmd creates the root command, which encodes or decodes a file
func NewCipherCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &cipherFlags{}

	cmd := &cobra.Command{
		Use:   "acipher [flags] FILE_PATH KEY1 KEY2",
		Short: "Encode or decode text with an affine cipher",
		Long: `acipher maps every letter x of FILE_PATH to (KEY1*x + KEY2) mod 26, keeping case.
Anything that is not an ASCII letter is copied unchanged. Output goes to stdout.

Please note:
  - FILE_PATH must be a readable file, or - for standard input
  - KEY1 must be an odd number between 1 and 12 or between 14 and 25
  - KEY2 can be any integer; it is reduced mod 26 (put -- before a negative KEY2)
  - KEY1 and KEY2 may come from --config instead, leaving only FILE_PATH`,
		Example: `  acipher message.txt 5 8
  acipher -d -w secret.txt 5 8
  acipher message.txt 7 -- -3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return UsageError(errors.Errorf("expected FILE_PATH KEY1 KEY2, got %d argument(s)", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCipher(cmd, opts, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.decode, "decode", "d", false, "activate decipher mode")
	cmd.Flags().BoolVarP(&flags.writeLog, "write-log", "w", false, "also write the output to message-<unix-time>.txt")
	cmd.Flags().StringVar(&flags.logDir, "log-dir", "", "directory for the log file (default: working directory)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a run summary to stderr")

	return cmd
}

func runCipher(cmd *cobra.Command, opts *opts.RootOpts, flags *cipherFlags, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	key, err := resolveKey(opts, args)
	if err != nil {
		return err
	}
	if key.IsNeutral() {
		console.Warning("You chose the neutral key combination, the message will not be ciphered.")
	}

	mode := opts.Config.Mode()
	if cmd.Flags().Changed("decode") {
		mode = affine.Encode
		if flags.decode {
			mode = affine.Decode
		}
	}

	writeLog := opts.Config.WriteLog
	if cmd.Flags().Changed("write-log") {
		writeLog = flags.writeLog
	}

	logDir := opts.Config.LogDir
	if cmd.Flags().Changed("log-dir") {
		logDir = flags.logDir
	}

	input, err := openInput(opts, args[0])
	if err != nil {
		return err
	}
	defer input.Close()

	var sink *transcript.Sink
	driverOpts := stream.Options{
		Transformer: affine.NewTransformer(key, mode),
		Output:      opts.Stdout,
	}
	if writeLog {
		sink, err = transcript.Open(ctx, logDir, opts.Now())
		if err != nil {
			return err
		}
		driverOpts.Log = sink
		driverOpts.OnLogError = func(err error) {
			console.Warningf("Log file stopped: %v. Output continues on stdout only.", err)
		}
	}

	logger.Debug().
		Str("input", args[0]).
		Str("mode", mode.String()).
		Str("key", key.String()).
		Bool("write_log", writeLog).
		Msg("starting run")

	driver, err := stream.New(driverOpts)
	if err != nil {
		return errors.Errorf("creating stream driver: %w", err)
	}

	res, runErr := driver.Run(ctx, input)

	if sink != nil {
		if err := sink.Close(); err != nil {
			console.Warningf("Log file may be incomplete: %v", err)
		}
	}

	if runErr != nil {
		return errors.Errorf("running %s: %w", mode, runErr)
	}

	if flags.verbose {
		op := log.RunOperation{
			Input:     args[0],
			Mode:      mode.String(),
			Key:       key.String(),
			Bytes:     res.Bytes,
			Letters:   res.Upper + res.Lower,
			LogFailed: res.LogFailed,
		}
		if sink != nil {
			op.LogPath = sink.Path()
		}
		console.Header(fmt.Sprintf("%s with key %s", mode, key))
		console.LogRunOperation(ctx, op)
	}

	return nil
}

func resolveKey(opts *opts.RootOpts, args []string) (affine.Key, error) {
	if len(args) == 3 {
		return affine.ParseKey(args[1], args[2])
	}
	if !opts.Config.HasKey() {
		return affine.Key{}, UsageError(errors.Errorf("missing arguments: KEY1 and KEY2 are required unless the config file sets them"))
	}
	return opts.Config.Key()
}

// openInput opens path for reading; "-" is standard input, which is never closed.
func openInput(opts *opts.RootOpts, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(opts.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening input file %s: %w", path, err)
	}
	return f, nil
}
