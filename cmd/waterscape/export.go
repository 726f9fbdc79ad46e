package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/agent"
)

var (
	exportIdentityPath string
	exportOutput       string
)

var exportCmd = &cobra.Command{
	Use:   "export-public",
	Short: "Export the public identity for an identity file",
	Long: `Export the shareable public identity (name, signing key, exchange
key) for a private identity file, as JSON. Share this with peers so
they can encode messages to you and verify messages from you.`,
	Example: `  waterscape export-public --identity alice.json --output alice.pub.json`,
	RunE:    runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportIdentityPath, "identity", "", "Private identity file (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	_ = exportCmd.MarkFlagRequired("identity")
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := agent.LoadIdentity(exportIdentityPath)
	if err != nil {
		return fmt.Errorf("failed to load identity: %w", err)
	}
	defer id.Zeroize()

	data, err := json.MarshalIndent(id.Public(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal public identity: %w", err)
	}

	if exportOutput == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Public identity saved to: %s\n", exportOutput)
	return nil
}

func loadPublicIdentity(path string) (agent.PublicIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return agent.PublicIdentity{}, fmt.Errorf("failed to read public identity file: %w", err)
	}
	var pub agent.PublicIdentity
	if err := json.Unmarshal(data, &pub); err != nil {
		return agent.PublicIdentity{}, fmt.Errorf("failed to parse public identity file: %w", err)
	}
	return pub, nil
}
