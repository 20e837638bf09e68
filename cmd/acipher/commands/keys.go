package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/acipher/cmd/acipher/opts"
	"github.com/walteh/acipher/pkg/affine"
	"gitlab.com/tozd/go/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewKeysCmd creates a new keys command
func NewKeysCmd(opts *opts.RootOpts) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the valid keys",
		Long: `Keys prints every multiplier KEY1 accepted by acipher together with its inverse mod 26.
With --all it prints each of the 312 key pairs and the cipher alphabet it produces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{}

			if all {
				data = append(data, []string{"KEY1", "KEY2", "INVERSE", "CIPHER ALPHABET"})
				for _, k := range affine.AllKeys() {
					data = append(data, []string{
						strconv.Itoa(k.A()),
						strconv.Itoa(k.B()),
						strconv.Itoa(k.Inverse()),
						affine.NewTransformer(k, affine.Encode).TransformString(alphabet),
					})
				}
			} else {
				data = append(data, []string{"KEY1", "INVERSE", "CIPHER ALPHABET (KEY2=0)"})
				for _, a := range affine.ValidMultipliers() {
					k := affine.MustKey(int64(a), 0)
					data = append(data, []string{
						strconv.Itoa(a),
						strconv.Itoa(k.Inverse()),
						affine.NewTransformer(k, affine.Encode).TransformString(alphabet),
					})
				}
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(opts.Stdout).Render(); err != nil {
				return errors.Errorf("rendering key table: %w", err)
			}

			if !all {
				fmt.Fprintf(opts.Stdout, "\n%d multipliers x %d shifts = %d keys\n",
					len(affine.ValidMultipliers()), affine.AlphabetSize, len(affine.AllKeys()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every key pair")

	return cmd
}
