/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/stylegraph/pkg/codec"
)

// classesCmd represents the classes command
var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List known class identifiers",
	Long: `List every class identifier the decoder knows: the supported classes it
can decode and the catalogued classes it recognises but rejects.

Examples:
  stylegraph classes
  stylegraph classes --supported
  stylegraph classes --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		supportedOnly, _ := cmd.Flags().GetBool("supported")

		reg, err := registry()
		if err != nil {
			return err
		}

		classes := reg.Classes()
		if supportedOnly {
			filtered := classes[:0]
			for _, c := range classes {
				if c.Supported {
					filtered = append(filtered, c)
				}
			}
			classes = filtered
		}
		return printClasses(cmd.OutOrStdout(), classes, format)
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
	classesCmd.Flags().StringP("format", "f", "table", "Output format: table or json")
	classesCmd.Flags().Bool("supported", false, "Only list classes that can be decoded")
}

func printClasses(w io.Writer, classes []codec.ClassInfo, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(classes)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tWIRE\tNAME\tSUPPORTED\tVERSIONS")
		for _, c := range classes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", c.ID, c.Wire, c.Name, c.Supported, joinInts(c.Versions))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}

func joinInts(v []int) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
