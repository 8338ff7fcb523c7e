package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reshort/internal/model"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Batch   model.BatchSnapshot `json:"batch"`
			Uploads int64               `json:"uploads"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		batch := result.Batch
		if batch.Status == "" || batch.Status == model.BatchIdle {
			fmt.Println("no batch running")
		} else {
			fmt.Printf("%s batch: %s\n", batch.Kind, batch.Status)
			fmt.Printf("  %s\n", batch.Message)
			if batch.Status == model.BatchRunning {
				fmt.Printf("  progress: %.0f%%, running for %s\n",
					batch.Percent, time.Since(batch.StartedAt).Round(time.Second))
			}
			if batch.Kind == model.BatchUpload {
				fmt.Printf("  uploaded: %d/%d\n", batch.Succeeded, batch.Total)
			}
		}

		fmt.Printf("total uploads recorded: %d\n", result.Uploads)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
