package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/upliftr/upliftr/internal/store"
)

func newLeadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Inspect locally recorded enquiries",
	}

	cmd.AddCommand(newLeadsListCmd())
	cmd.AddCommand(newLeadsCountCmd())
	return cmd
}

func openLeadsDB() (*store.DB, error) {
	return store.Open(filepath.Join(paths.Data, "upliftr.db"), log)
}

func newLeadsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded enquiries in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLeadsDB()
			if err != nil {
				return err
			}
			defer db.Close()

			enquiries, err := store.NewEnquiryStore(db).List()
			if err != nil {
				return err
			}

			if len(enquiries) == 0 {
				fmt.Println("No enquiries recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tNAME\tEMAIL\tPROJECT")
			for _, e := range enquiries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					e.ID, e.CreatedAt.Format(time.RFC3339), e.FullName, e.Email, e.ProjectType)
			}
			return w.Flush()
		},
	}
}

func newLeadsCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of recorded enquiries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openLeadsDB()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := store.NewEnquiryStore(db).Count()
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
}
