package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/agent"
)

var (
	keygenName     string
	keygenOutput   string
	keygenCombined bool
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new agent identity",
	Long: `Generate a new agent identity: an Ed25519 signing keypair and an
X25519 exchange keypair, written to a private identity file.

By default the exchange keypair is generated independently of the
signing keypair. With --combined, the exchange keypair is instead
derived from the signing seed, so the identity can be managed as a
single Ed25519 key.`,
	Example: `  # Generate an identity with independent keys
  waterscape keygen --name alice --output alice.json

  # Generate a combined identity
  waterscape keygen --name alice --output alice.json --combined`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVarP(&keygenName, "name", "n", "", "Agent name (required)")
	keygenCmd.Flags().StringVarP(&keygenOutput, "output", "o", "", "Output identity file (required)")
	keygenCmd.Flags().BoolVar(&keygenCombined, "combined", false, "Derive the exchange key from the signing key")
	_ = keygenCmd.MarkFlagRequired("name")
	_ = keygenCmd.MarkFlagRequired("output")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	var (
		id  *agent.AgentIdentity
		err error
	)
	if keygenCombined {
		id, err = agent.NewCombined(keygenName)
	} else {
		id, err = agent.New(keygenName)
	}
	if err != nil {
		return fmt.Errorf("failed to generate identity: %w", err)
	}
	defer id.Zeroize()

	if err := agent.SaveIdentity(id, keygenOutput); err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}

	pub := id.Public()
	fmt.Printf("Identity generated:\n")
	fmt.Printf("  Name:        %s\n", pub.Name)
	fmt.Printf("  Fingerprint: %s\n", pub.Fingerprint())
	fmt.Printf("  Saved to:    %s\n", keygenOutput)
	return nil
}
