package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/agent"
)

var (
	contactAddRegistryPath  string
	contactAddIdentityPath  string
	contactListRegistryPath string

	contactRemoveRegistryPath string
	contactRemoveName         string
)

var contactAddCmd = &cobra.Command{
	Use:   "contact-add",
	Short: "Add a peer's public identity to a contact registry file",
	Long: `Register a peer's public identity file in a contact registry file,
keyed by the peer's name. contact-list prints each registered peer's
name and fingerprint, and contact-remove drops a peer by name. The
encode and decode commands take public identity files directly and do
not read the registry.`,
	Example: `  waterscape contact-add --registry contacts.json --identity bob.pub.json`,
	RunE:    runContactAdd,
}

var contactListCmd = &cobra.Command{
	Use:   "contact-list",
	Short: "List the peers registered in a contact registry file",
	RunE:  runContactList,
}

var contactRemoveCmd = &cobra.Command{
	Use:   "contact-remove",
	Short: "Remove a peer from a contact registry file by name",
	RunE:  runContactRemove,
}

func init() {
	rootCmd.AddCommand(contactAddCmd, contactListCmd, contactRemoveCmd)

	contactAddCmd.Flags().StringVar(&contactAddRegistryPath, "registry", "", "Contact registry file (required)")
	contactAddCmd.Flags().StringVar(&contactAddIdentityPath, "identity", "", "Peer's public identity file (required)")
	_ = contactAddCmd.MarkFlagRequired("registry")
	_ = contactAddCmd.MarkFlagRequired("identity")

	contactListCmd.Flags().StringVar(&contactListRegistryPath, "registry", "", "Contact registry file (required)")
	_ = contactListCmd.MarkFlagRequired("registry")

	contactRemoveCmd.Flags().StringVar(&contactRemoveRegistryPath, "registry", "", "Contact registry file (required)")
	contactRemoveCmd.Flags().StringVar(&contactRemoveName, "name", "", "Peer name to remove (required)")
	_ = contactRemoveCmd.MarkFlagRequired("registry")
	_ = contactRemoveCmd.MarkFlagRequired("name")
}

func runContactAdd(cmd *cobra.Command, args []string) error {
	registry, err := agent.LoadRegistry(contactAddRegistryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	pub, err := loadPublicIdentity(contactAddIdentityPath)
	if err != nil {
		return err
	}
	registry.Register(pub)

	if err := agent.SaveRegistry(registry, contactAddRegistryPath); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	fmt.Printf("Added contact %q (%s) to %s\n", pub.Name, pub.Fingerprint(), contactAddRegistryPath)
	return nil
}

func runContactList(cmd *cobra.Command, args []string) error {
	registry, err := agent.LoadRegistry(contactListRegistryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	contacts := registry.List()
	if len(contacts) == 0 {
		fmt.Println("(no contacts)")
		return nil
	}
	for _, contact := range contacts {
		fmt.Printf("%-20s %s\n", contact.Name, contact.Fingerprint())
	}
	return nil
}

func runContactRemove(cmd *cobra.Command, args []string) error {
	registry, err := agent.LoadRegistry(contactRemoveRegistryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if !registry.Remove(contactRemoveName) {
		return fmt.Errorf("no contact named %q in %s", contactRemoveName, contactRemoveRegistryPath)
	}

	if err := agent.SaveRegistry(registry, contactRemoveRegistryPath); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	fmt.Printf("Removed contact %q from %s\n", contactRemoveName, contactRemoveRegistryPath)
	return nil
}
