package main

import (
	"context"
	"fmt"

	"consultorio/models"
	"consultorio/views/payment"

	"github.com/spf13/cobra"
)

var payReq models.PreferenceRequest

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Create a checkout preference and print its payment link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		panel := payment.New(newStore(), payReq)
		if err := panel.Load(ctx); err != nil {
			return err
		}
		url, err := panel.CheckoutURL()
		if err != nil {
			return err
		}
		if ok, err := emit(cmd.OutOrStdout(), map[string]string{"id": panel.PreferenceID(), "url": url}); ok {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "preference %s\n%s\n", panel.PreferenceID(), url)
		return nil
	},
}

func init() {
	payCmd.Flags().StringVar(&payReq.Description, "description", "", "item description (server default when empty)")
	payCmd.Flags().Float64Var(&payReq.Price, "price", 0, "unit price (server default when zero)")
	payCmd.Flags().StringVar(&payReq.CurrencyID, "currency", "", "ISO currency, e.g. ARS")
	payCmd.Flags().StringVar(&payReq.Reference, "reference", "", "external reference, e.g. a reservation id")
}
