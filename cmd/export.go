package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"recbox/core/wav"
	"recbox/db"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a recording as a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, gdb, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		rec, err := repo.Get(args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("recording %s not found", args[0])
		}

		format, err := wav.ParseL16Mime(rec.MimeType)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = filepath.Join(cfg.ExportDir, rec.ID+".wav")
		}
		if err := os.WriteFile(out, wav.Encode(rec.Payload, format), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("Exported %q (%ds) to %s\n", rec.Name, rec.Duration, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file path (default <export dir>/<id>.wav)")
	rootCmd.AddCommand(exportCmd)
}
