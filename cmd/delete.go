package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"recbox/db"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, gdb, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		// Deleting an unknown id is a no-op success.
		if err := repo.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
