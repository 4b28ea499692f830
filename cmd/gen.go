package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copybench/copybench/internal/config"
	"github.com/copybench/copybench/internal/sample"
	"github.com/copybench/copybench/internal/utils"
)

func newGenCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "gen [path]",
		Short: "Write a sample text file to benchmark with",
		Long: `Write deterministic newline-terminated text to path, which defaults to
` + config.DefaultInput + ` in the working directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultInput
			if len(args) > 0 {
				path = args[0]
			}

			sizeFlag, _ := cmd.Flags().GetString("size")
			size, err := utils.ParseSize(sizeFlag)
			if err != nil {
				return fmt.Errorf("invalid size: %w", err)
			}

			n, err := sample.WriteFile(path, size)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s to %s\n", utils.ConvertBytesToHumanReadable(n), path)
			return nil
		},
	}
	c.Flags().StringP("size", "s", "8MB", "File size (e.g. 500KB, 8MB)")
	return c
}
