package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/acipher/cmd/acipher/opts"
	"github.com/walteh/acipher/pkg/affine"
	"github.com/walteh/acipher/pkg/crack"
	"github.com/walteh/acipher/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const previewWidth = 48

// NewCrackCmd creates a new crack command
func NewCrackCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		sampleSize  int
		contains    string
		top         int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "crack [flags] FILE_PATH",
		Short: "Try every key against a ciphertext",
		Long: `Crack decodes the start of FILE_PATH with all 312 keys and ranks the results by how
closely their letter frequencies match English. It will:
1. Read a sample of the input (--sample bytes)
2. Decode it with every valid key pair
3. Keep candidates containing --contains, if given
4. Print the best --top candidates`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return UsageError(errors.Errorf("expected FILE_PATH, got %d argument(s)", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.FromContext(ctx)

			input, err := openInput(opts, args[0])
			if err != nil {
				return err
			}
			defer input.Close()

			sample, err := crack.ReadSample(input, sampleSize)
			if err != nil {
				return err
			}

			console.Header(fmt.Sprintf("trying %d keys on %s", len(affine.AllKeys()), args[0]))

			candidates, err := crack.Run(ctx, sample, crack.Options{
				Contains:    contains,
				Concurrency: concurrency,
			})
			if err != nil {
				return errors.Errorf("searching keys: %w", err)
			}

			console.Infof("Decoded a %d byte sample, %d candidate(s) kept", len(sample), len(candidates))

			if len(candidates) == 0 {
				console.Warningf("No key produced a plaintext containing %q", contains)
				return nil
			}

			if top > 0 && len(candidates) > top {
				candidates = candidates[:top]
			}

			data := pterm.TableData{{"RANK", "KEY1", "KEY2", "SCORE", "PLAINTEXT"}}
			for i, c := range candidates {
				data = append(data, []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(c.Key.A()),
					strconv.Itoa(c.Key.B()),
					formatScore(c.Score),
					preview(c.Text),
				})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(opts.Stdout).Render(); err != nil {
				return errors.Errorf("rendering candidates: %w", err)
			}

			best := candidates[0].Key
			console.Successf("Best key: KEY1=%d KEY2=%d", best.A(), best.B())
			return nil
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample", crack.DefaultSampleSize, "bytes of input to try each key on")
	cmd.Flags().StringVar(&contains, "contains", "", "only show plaintexts containing this text (case-insensitive)")
	cmd.Flags().IntVar(&top, "top", 5, "number of candidates to show, 0 for all")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "keys tried in parallel")

	return cmd
}

func formatScore(s float64) string {
	if math.IsInf(s, 1) {
		return "-"
	}
	return fmt.Sprintf("%.1f", s)
}

// preview flattens control characters so one candidate stays on one table row.
// Invalid UTF-8 becomes U+FFFD; the cut is made on runes so the row stays valid.
func preview(text []byte) string {
	runes := []rune(strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, string(text)))
	if len(runes) > previewWidth {
		return string(runes[:previewWidth]) + "…"
	}
	return string(runes)
}
