package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Resolve metadata for a paper URL",
	Long: `Resolve prints the metadata record for a URL. A cached record is used when
one exists; otherwise the URL is fetched and the result cached.

Override flags supply values for fields the source does not provide. A
fetched value always wins over an override.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("title", "", "title to use when the source has none")
	resolveCmd.Flags().String("authors", "", "authors to use when the source has none")
	resolveCmd.Flags().String("abstract", "", "abstract to use when the source has none")
	resolveCmd.Flags().String("canonical-id", "", "canonical ID to use when the source has none")
	resolveCmd.Flags().Bool("bust-cache", false, "ignore any cached record and refetch")
	resolveCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}
	bust, _ := cmd.Flags().GetBool("bust-cache")

	ov := types.Overrides{
		Title:       stringFlag(cmd, "title"),
		Authors:     stringFlag(cmd, "authors"),
		Abstract:    stringFlag(cmd, "abstract"),
		CanonicalID: stringFlag(cmd, "canonical-id"),
	}

	r, store, err := openResolver()
	if err != nil {
		return err
	}
	defer store.Close()

	res := r.Resolve(cmd.Context(), args[0], ov, bust)
	if res.FetchErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", res.FetchErr)
	}
	return writeRecord(os.Stdout, res.Metadata, format)
}

// stringFlag returns the flag value only when it was set on the command
// line, so an explicit empty override differs from no override.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return types.String(v)
}

func checkFormat(format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
	return nil
}

func writeRecord(w io.Writer, md types.MetadataResult, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(md); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(md); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}
