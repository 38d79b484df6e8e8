package main

import (
	"bigbraintime/internal/site"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func variantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variants",
		Short: "Lists the embedded page variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range site.Names() {
				content, err := site.Load(name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					name, content.Launch.UTC().Format(time.RFC3339), content.Precision)
			}

			return nil
		},
	}

	return cmd
}
