/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

// guidCmd represents the guid command
var guidCmd = &cobra.Command{
	Use:   "guid <id>",
	Short: "Show both forms of a class identifier",
	Long: `Convert a class identifier between its canonical form and the byte order
it is stored in, and report the class it names.

Example:
  stylegraph guid f3435801-5779-11d0-98bf-00805f7ced21
  stylegraph guid 015843f37957d01198bf00805f7ced21`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := guid.ParseAny(args[0])
		if err != nil {
			return err
		}
		reg, err := registry()
		if err != nil {
			return err
		}
		return describeGUID(cmd.OutOrStdout(), reg, id)
	},
}

func init() {
	rootCmd.AddCommand(guidCmd)
}

func describeGUID(w io.Writer, reg *codec.Registry, id guid.GUID) error {
	class := "unknown"
	if info, ok := reg.Lookup(id); ok {
		class = info.Name
		if !info.Supported {
			class += " (unsupported)"
		}
	}
	_, err := fmt.Fprintf(w, "canonical: %s\nwire:      %s\nclass:     %s\n", id, id.WireHex(), class)
	return err
}
