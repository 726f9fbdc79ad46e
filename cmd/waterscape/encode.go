package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/agent"
	"github.com/waterscape-project/waterscape/channel"
)

var (
	encodeIdentityPath  string
	encodeRecipientPath string
	encodeCoverFile     string
	encodeSecret        string
	encodeOutput        string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Hide an encrypted message inside cover text",
	Long: `Encrypt secret for recipient and hide the resulting envelope inside
cover text using zero-width Unicode steganography. The visible text of
the carrier is unchanged from cover.

The secret can be provided as a command line argument or read from
stdin if --secret is omitted.`,
	Example: `  waterscape encode --identity alice.json --recipient bob.pub.json \
    --cover-file cover.txt --secret "meet at dawn"`,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVar(&encodeIdentityPath, "identity", "", "Sender's private identity file (required)")
	encodeCmd.Flags().StringVar(&encodeRecipientPath, "recipient", "", "Recipient's public identity file (required)")
	encodeCmd.Flags().StringVar(&encodeCoverFile, "cover-file", "", "File containing cover text (default: stdin)")
	encodeCmd.Flags().StringVarP(&encodeSecret, "secret", "m", "", "Secret message (default: stdin)")
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Output file for carrier text (default: stdout)")
	_ = encodeCmd.MarkFlagRequired("identity")
	_ = encodeCmd.MarkFlagRequired("recipient")
}

func runEncode(cmd *cobra.Command, args []string) error {
	sender, err := agent.LoadIdentity(encodeIdentityPath)
	if err != nil {
		return fmt.Errorf("failed to load sender identity: %w", err)
	}
	defer sender.Zeroize()

	recipient, err := loadPublicIdentity(encodeRecipientPath)
	if err != nil {
		return err
	}

	cover, err := readInput(encodeCoverFile)
	if err != nil {
		return fmt.Errorf("failed to read cover text: %w", err)
	}

	secret := encodeSecret
	if secret == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		secret = string(data)
	}

	carrier, err := channel.Encode(sender, recipient, cover, secret)
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}

	return writeCarrier(carrier, encodeOutput)
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeCarrier(carrier, path string) error {
	if path == "" {
		fmt.Println(carrier)
		return nil
	}
	if err := os.WriteFile(path, []byte(carrier), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Carrier saved to: %s\n", path)
	return nil
}
