package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/channel"
)

var (
	visibleTextCarrierFile string
	hasHiddenCarrierFile   string
)

var visibleTextCmd = &cobra.Command{
	Use:   "visible-text",
	Short: "Print the visible text of a carrier, stripped of any hidden message",
	RunE:  runVisibleText,
}

var hasHiddenCmd = &cobra.Command{
	Use:   "has-hidden-message",
	Short: "Report whether a carrier contains a hidden message",
	RunE:  runHasHidden,
}

func init() {
	rootCmd.AddCommand(visibleTextCmd, hasHiddenCmd)

	visibleTextCmd.Flags().StringVar(&visibleTextCarrierFile, "carrier-file", "", "File containing carrier text (default: stdin)")
	hasHiddenCmd.Flags().StringVar(&hasHiddenCarrierFile, "carrier-file", "", "File containing carrier text (default: stdin)")
}

func runVisibleText(cmd *cobra.Command, args []string) error {
	carrier, err := readInput(visibleTextCarrierFile)
	if err != nil {
		return fmt.Errorf("failed to read carrier text: %w", err)
	}
	fmt.Println(channel.VisibleText(carrier))
	return nil
}

func runHasHidden(cmd *cobra.Command, args []string) error {
	carrier, err := readInput(hasHiddenCarrierFile)
	if err != nil {
		return fmt.Errorf("failed to read carrier text: %w", err)
	}
	fmt.Println(channel.HasHiddenMessage(carrier))
	return nil
}
