package cmd

import (
	"fmt"
	"reshort/internal/youtube"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with YouTube",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := youtube.Authorize(); err != nil {
			return err
		}

		fmt.Println("Authenticated with YouTube")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
