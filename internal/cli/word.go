package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordduel-go/internal/api/response"
)

func newWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word <word>",
		Short: "Check a word against the server's dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.WordLookup

			if err := client.Get(fmt.Sprintf("/api/v1/words/%s", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
