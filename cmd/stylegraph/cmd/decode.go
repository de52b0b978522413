/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/stylegraph/pkg/codec"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a single record",
	Long: `Decode one persisted record and print its snapshot as JSON.

The file holds the raw record bytes, or hex text with --hex. Use "-" to read
standard input. --offset and --length select a byte range of the input when
the record is embedded in a larger blob.

Examples:
  stylegraph decode renderer.bin
  stylegraph decode --hex --tree renderer.hex
  stylegraph decode --offset 128 --length 93 --strict --trace blob.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hexInput, _ := cmd.Flags().GetBool("hex")
		offset, _ := cmd.Flags().GetInt("offset")
		length, _ := cmd.Flags().GetInt("length")
		tree, _ := cmd.Flags().GetBool("tree")

		buf, err := readRecord(args[0], cmd.InOrStdin(), hexInput, offset, length)
		if err != nil {
			return err
		}

		reg, err := registry()
		if err != nil {
			return err
		}

		obj, err := codec.Decode(buf, reg, decodeOptions(cmd)...)
		if err != nil {
			logger.Debug().Str("outcome", string(codec.Classify(err))).Int("size", len(buf)).Msg("decode failed")
			return fmt.Errorf("%s: %w", codec.Classify(err), err)
		}

		if tree {
			return printTree(cmd.OutOrStdout(), obj, resolvedMaxDepth(cmd))
		}
		return printSnapshot(cmd.OutOrStdout(), obj)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().Bool("hex", false, "Input is hex text rather than raw bytes")
	decodeCmd.Flags().Int("offset", 0, "Byte offset of the record within the input")
	decodeCmd.Flags().Int("length", 0, "Record length in bytes (0 reads to the end)")
	decodeCmd.Flags().Int("version", 1, "Version given to an unversioned root object")
	decodeCmd.Flags().Int("max-depth", 64, "Maximum object nesting")
	decodeCmd.Flags().Bool("trace", false, "Log every field read at trace level")
	decodeCmd.Flags().Bool("strict", false, "Reject bytes left over after the root object")
	decodeCmd.Flags().Bool("tree", false, "Print the object hierarchy instead of the snapshot")
}

// readRecord loads path ("-" for stdin) and returns the selected byte range.
func readRecord(path string, stdin io.Reader, hexInput bool, offset, length int) ([]byte, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if hexInput {
		raw, err = hex.DecodeString(strings.Join(strings.Fields(string(raw)), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
	}

	if offset < 0 || length < 0 {
		return nil, errors.New("offset and length must not be negative")
	}
	if offset > len(raw) {
		return nil, fmt.Errorf("offset %d is past the end of the %d byte input", offset, len(raw))
	}
	raw = raw[offset:]
	if length > 0 {
		if length > len(raw) {
			return nil, fmt.Errorf("length %d exceeds the %d bytes after offset %d", length, len(raw), offset)
		}
		raw = raw[:length]
	}
	if len(raw) == 0 {
		return nil, errors.New("no record bytes to decode")
	}
	return raw, nil
}

// printSnapshot writes obj as JSON. A null root prints an empty class and a
// null snapshot.
func printSnapshot(w io.Writer, obj codec.Object) error {
	var out struct {
		Class    string         `json:"class"`
		Snapshot codec.Snapshot `json:"snapshot"`
	}
	if obj != nil {
		out.Class = obj.ClassName()
		out.Snapshot = obj.Snapshot()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTree(w io.Writer, obj codec.Object, maxDepth int) error {
	if obj == nil {
		_, err := fmt.Fprintln(w, "(null)")
		return err
	}
	return codec.Walk(obj, maxDepth, func(o codec.Object, depth int) error {
		_, err := fmt.Fprintf(w, "%s%s (%s)\n", strings.Repeat("  ", depth), o.ClassName(), o.ClassID())
		return err
	})
}
