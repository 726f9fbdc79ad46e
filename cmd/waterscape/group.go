package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/waterscape-project/waterscape/agent"
	"github.com/waterscape-project/waterscape/channel"
)

var (
	groupNewCreatorPath string
	groupNewName        string
	groupNewMemberPaths []string
	groupNewOutput      string

	groupEncodeIdentityPath string
	groupEncodeGroupPath    string
	groupEncodeCoverFile    string
	groupEncodeSecret       string
	groupEncodeOutput       string

	groupDecodeGroupPath   string
	groupDecodeCarrierFile string
)

var groupNewCmd = &cobra.Command{
	Use:   "group-new",
	Short: "Derive a new group and write it to a file",
	Long: `Derive a group's symmetric key from a creator's signing seed and a
group name, and write the resulting group (name, advisory member list,
and raw symmetric key) to a file. Share that file with every member out
of band, or use group-invite to seal it to one member's exchange key.`,
	Example: `  waterscape group-new --creator alice.json --name book-club \
    --member bob.pub.json --member carol.pub.json --output book-club.json`,
	RunE: runGroupNew,
}

var groupEncodeCmd = &cobra.Command{
	Use:   "group-encode",
	Short: "Hide an encrypted message for a group inside cover text",
	RunE:  runGroupEncode,
}

var groupDecodeCmd = &cobra.Command{
	Use:   "group-decode",
	Short: "Recover a group message hidden in carrier text",
	RunE:  runGroupDecode,
}

func init() {
	rootCmd.AddCommand(groupNewCmd, groupEncodeCmd, groupDecodeCmd)

	groupNewCmd.Flags().StringVar(&groupNewCreatorPath, "creator", "", "Creator's private identity file (required)")
	groupNewCmd.Flags().StringVar(&groupNewName, "name", "", "Group name (required)")
	groupNewCmd.Flags().StringArrayVar(&groupNewMemberPaths, "member", nil, "Member public identity file (repeatable, advisory only)")
	groupNewCmd.Flags().StringVarP(&groupNewOutput, "output", "o", "", "Output group file (required)")
	_ = groupNewCmd.MarkFlagRequired("creator")
	_ = groupNewCmd.MarkFlagRequired("name")
	_ = groupNewCmd.MarkFlagRequired("output")

	groupEncodeCmd.Flags().StringVar(&groupEncodeIdentityPath, "identity", "", "Sender's private identity file (required)")
	groupEncodeCmd.Flags().StringVar(&groupEncodeGroupPath, "group", "", "Group file (required)")
	groupEncodeCmd.Flags().StringVar(&groupEncodeCoverFile, "cover-file", "", "File containing cover text (default: stdin)")
	groupEncodeCmd.Flags().StringVarP(&groupEncodeSecret, "secret", "m", "", "Secret message (default: stdin)")
	groupEncodeCmd.Flags().StringVarP(&groupEncodeOutput, "output", "o", "", "Output file for carrier text (default: stdout)")
	_ = groupEncodeCmd.MarkFlagRequired("identity")
	_ = groupEncodeCmd.MarkFlagRequired("group")

	groupDecodeCmd.Flags().StringVar(&groupDecodeGroupPath, "group", "", "Group file (required)")
	groupDecodeCmd.Flags().StringVar(&groupDecodeCarrierFile, "carrier-file", "", "File containing carrier text (default: stdin)")
	_ = groupDecodeCmd.MarkFlagRequired("group")
}

func runGroupNew(cmd *cobra.Command, args []string) error {
	creator, err := agent.LoadIdentity(groupNewCreatorPath)
	if err != nil {
		return fmt.Errorf("failed to load creator identity: %w", err)
	}
	defer creator.Zeroize()

	members := make([]agent.PublicIdentity, 0, len(groupNewMemberPaths))
	for _, path := range groupNewMemberPaths {
		pub, err := loadPublicIdentity(path)
		if err != nil {
			return err
		}
		members = append(members, pub)
	}

	group := agent.NewGroup(creator, groupNewName, members...)
	if err := agent.SaveGroup(group, groupNewOutput); err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}

	fmt.Printf("Group created:\n")
	fmt.Printf("  Name:    %s\n", group.Name)
	fmt.Printf("  Key:     %s\n", hex.EncodeToString(group.Key[:]))
	fmt.Printf("  Members: %d\n", len(group.Members))
	fmt.Printf("  Saved to: %s\n", groupNewOutput)
	return nil
}

func runGroupEncode(cmd *cobra.Command, args []string) error {
	sender, err := agent.LoadIdentity(groupEncodeIdentityPath)
	if err != nil {
		return fmt.Errorf("failed to load sender identity: %w", err)
	}
	defer sender.Zeroize()

	group, err := agent.LoadGroup(groupEncodeGroupPath)
	if err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}

	cover, err := readInput(groupEncodeCoverFile)
	if err != nil {
		return fmt.Errorf("failed to read cover text: %w", err)
	}

	secret := groupEncodeSecret
	if secret == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		secret = string(data)
	}

	carrier, err := channel.GroupEncode(sender, group, cover, secret)
	if err != nil {
		return fmt.Errorf("failed to group-encode: %w", err)
	}

	return writeCarrier(carrier, groupEncodeOutput)
}

func runGroupDecode(cmd *cobra.Command, args []string) error {
	group, err := agent.LoadGroup(groupDecodeGroupPath)
	if err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}

	carrier, err := readInput(groupDecodeCarrierFile)
	if err != nil {
		return fmt.Errorf("failed to read carrier text: %w", err)
	}

	secret, err := channel.GroupDecode(group, carrier)
	if err != nil {
		return fmt.Errorf("failed to group-decode: %w", err)
	}

	fmt.Println(secret)
	return nil
}
