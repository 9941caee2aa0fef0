package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"recbox/db"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a recording",
	Args:  cobra.ExactArgs(2),
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

		// Name edits are a full replace via put.
		rec.Name = args[1]
		if err := repo.Put(rec); err != nil {
			return err
		}
		fmt.Printf("Renamed %s to %q\n", rec.ID, rec.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
