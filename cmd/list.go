package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"recbox/db"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored recordings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, gdb, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		recs, err := repo.ListAll()
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No recordings.")
			return nil
		}

		fmt.Printf("%-36s  %-28s  %8s  %s\n", "ID", "NAME", "DURATION", "CREATED")
		for _, rec := range recs {
			fmt.Printf("%-36s  %-28s  %7ds  %s\n",
				rec.ID, rec.Name, rec.Duration, rec.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
