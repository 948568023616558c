package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and print a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		s := newStore()
		if err := s.Login(ctx, args[0], loginPassword); err != nil {
			return err
		}
		st := s.Snapshot()
		if ok, err := emit(cmd.OutOrStdout(), map[string]interface{}{"token": st.Token, "role": st.Role}); ok {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), okStyle.Render(fmt.Sprintf("logged in as %s (%s)", args[0], st.Role)))
		fmt.Fprintf(cmd.OutOrStdout(), "export CONSULTORIO_TOKEN=%s\n", st.Token)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("password")
}
