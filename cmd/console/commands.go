package console

import (
	"fmt"

	"github.com/jmehdipour/rc-admin/internal/console"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController(cmd)
		if err != nil {
			return err
		}
		if err := ctl.LoadList(cmd.Context()); err != nil {
			return err
		}
		return console.PrintTable(cmd.OutOrStdout(), ctl.State())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <customer-id>",
	Short: "Delete one customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController(cmd)
		if err != nil {
			return err
		}
		if err := ctl.DeleteOne(cmd.Context(), args[0]); err != nil {
			return err
		}
		if st := ctl.State(); st.Status == console.StatusDeleted {
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		}
		return nil
	},
}

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every listed customer, one at a time, stopping at the first failure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController(cmd)
		if err != nil {
			return err
		}
		if err := ctl.LoadList(cmd.Context()); err != nil {
			return err
		}
		if ctl.State().Empty {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to delete")
			return nil
		}

		err = ctl.DeleteAll(cmd.Context())
		st := ctl.State()
		fmt.Fprintln(cmd.OutOrStdout(), st.Status)
		if err != nil {
			return fmt.Errorf("%d left: %w", len(st.Rows), err)
		}
		return console.PrintTable(cmd.OutOrStdout(), st)
	},
}
