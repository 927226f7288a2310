package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/docview-mcp/internal/transform"
)

// newFmtCmd runs a single transform over a file (or stdin) and prints the
// result, without starting any server.
func newFmtCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Apply a transform to a file or stdin and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := transform.Default()
			fn, err := registry.Get(name)
			if err != nil {
				return fmt.Errorf("unknown transform %q (available: %s)",
					name, strings.Join(registry.Names(), ", "))
			}

			var input []byte
			if len(args) == 1 {
				input, err = os.ReadFile(args[0])
			} else {
				input, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			out, err := fn(string(input))
			if err != nil {
				return fmt.Errorf("%s transform failed: %w", name, err)
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "transform", "t", "json", "transform to apply")
	return cmd
}
