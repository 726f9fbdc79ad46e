package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/agent"
	"github.com/waterscape-project/waterscape/channel"
)

var (
	decodeIdentityPath string
	decodeSenderPath   string
	decodeCarrierFile  string
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Recover an encrypted message hidden in carrier text",
	Long: `Extract the hidden envelope from carrier text, verify it was signed
by the expected sender, decrypt it, and print the recovered secret.`,
	Example: `  waterscape decode --identity bob.json --sender alice.pub.json --carrier-file carrier.txt`,
	RunE:    runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&decodeIdentityPath, "identity", "", "Receiver's private identity file (required)")
	decodeCmd.Flags().StringVar(&decodeSenderPath, "sender", "", "Expected sender's public identity file (required)")
	decodeCmd.Flags().StringVar(&decodeCarrierFile, "carrier-file", "", "File containing carrier text (default: stdin)")
	_ = decodeCmd.MarkFlagRequired("identity")
	_ = decodeCmd.MarkFlagRequired("sender")
}

func runDecode(cmd *cobra.Command, args []string) error {
	receiver, err := agent.LoadIdentity(decodeIdentityPath)
	if err != nil {
		return fmt.Errorf("failed to load receiver identity: %w", err)
	}
	defer receiver.Zeroize()

	sender, err := loadPublicIdentity(decodeSenderPath)
	if err != nil {
		return err
	}

	carrier, err := readInput(decodeCarrierFile)
	if err != nil {
		return fmt.Errorf("failed to read carrier text: %w", err)
	}

	secret, err := channel.Decode(receiver, sender, carrier)
	if err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}

	fmt.Println(secret)
	return nil
}
