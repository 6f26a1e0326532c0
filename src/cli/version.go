package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bakmodel/src/version"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the bakmodel version",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				return enc.Encode(struct {
					Version string `json:"version"`
					Commit  string `json:"commit,omitempty"`
				}{version.Version, version.Commit})
			case "table", "":
				fmt.Fprintln(stdout, version.String())
				return nil
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}
