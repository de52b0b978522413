/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/stylegraph/pkg/api"
	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/library"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local record library",
	Long: `Store raw records in the local library and decode them on demand.

The library lives in the configured data directory (--data-dir overrides it).

Examples:
  stylegraph library put --name roads roads.bin
  stylegraph library list
  stylegraph library get 2k8TQhJqzVWwJ6Ui2PZfnpUq1Hm
  stylegraph library decode`,
}

var libraryPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Store a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		hexInput, _ := cmd.Flags().GetBool("hex")
		if name == "" {
			name = filepath.Base(args[0])
		}

		buf, err := readRecord(args[0], cmd.InOrStdin(), hexInput, 0, 0)
		if err != nil {
			return err
		}

		return withLibrary(cmd, func(lib api.ManagedLibrary) error {
			id, err := lib.Put(name, buf)
			if err != nil {
				return err
			}
			cmd.Printf("%s\n", id)
			return nil
		})
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(cmd, func(lib api.ManagedLibrary) error {
			entries, err := lib.List()
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), entries)
		})
	},
}

var libraryGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Decode a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid record id %q: %w", args[0], err)
		}
		raw, _ := cmd.Flags().GetBool("raw")
		tree, _ := cmd.Flags().GetBool("tree")

		return withLibrary(cmd, func(lib api.ManagedLibrary) error {
			if raw {
				entry, err := lib.Get(id)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(entry.Data)
				return err
			}

			obj, err := lib.Decode(id)
			if err != nil {
				return fmt.Errorf("%s: %w", codec.Classify(err), err)
			}
			if tree {
				return printTree(cmd.OutOrStdout(), obj, resolvedMaxDepth(cmd))
			}
			return printSnapshot(cmd.OutOrStdout(), obj)
		})
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid record id %q: %w", args[0], err)
		}
		return withLibrary(cmd, func(lib api.ManagedLibrary) error {
			if err := lib.Delete(id); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", id)
			return nil
		})
	},
}

var libraryDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode every stored record",
	Long: `Decode every record in the library. A record that fails to decode is
reported with its outcome and does not stop the batch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		return withLibrary(cmd, func(lib api.ManagedLibrary) error {
			report, err := lib.DecodeAll()
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report, format)
		})
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryPutCmd, libraryListCmd, libraryGetCmd, libraryDeleteCmd, libraryDecodeCmd)

	libraryPutCmd.Flags().StringP("name", "n", "", "Display name (defaults to the file name)")
	libraryPutCmd.Flags().Bool("hex", false, "Input is hex text rather than raw bytes")

	libraryGetCmd.Flags().Bool("raw", false, "Write the stored bytes instead of decoding them")
	libraryGetCmd.Flags().Bool("tree", false, "Print the object hierarchy instead of the snapshot")

	libraryDecodeCmd.Flags().StringP("format", "f", "table", "Output format: table or json")

	for _, c := range []*cobra.Command{libraryGetCmd, libraryDecodeCmd} {
		c.Flags().Int("version", 1, "Version given to an unversioned root object")
		c.Flags().Int("max-depth", 64, "Maximum object nesting")
		c.Flags().Bool("trace", false, "Log every field read at trace level")
		c.Flags().Bool("strict", false, "Reject bytes left over after the root object")
	}
}

// withLibrary opens the configured library for the duration of fn.
func withLibrary(cmd *cobra.Command, fn func(api.ManagedLibrary) error) error {
	reg, err := registry()
	if err != nil {
		return err
	}
	dir := settings.Library.DataDir
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	lib, err := container.GetLibraryFactory().OpenLibrary(dir, reg, logger, decodeOptions(cmd)...)
	if err != nil {
		return err
	}
	defer lib.Close()

	return fn(lib)
}

func printEntries(w io.Writer, entries []library.EntryInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.ID, e.Name, e.Size, e.Created.Format(time.RFC3339))
	}
	return tw.Flush()
}

func printReport(w io.Writer, report *library.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tOUTCOME\tDETAIL")
		for _, r := range report.Results {
			detail := r.Class
			if r.Error != "" {
				detail = r.Error
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Outcome, detail)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d records: %d ok, %d unsupported, %d unknown, %d malformed, %d error\n",
			report.Total,
			report.Counts[codec.OutcomeOK],
			report.Counts[codec.OutcomeUnsupported],
			report.Counts[codec.OutcomeUnknown],
			report.Counts[codec.OutcomeMalformed],
			report.Counts[codec.OutcomeError])
		return err
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}
