// ABOUTME: install-skill command that drops the habits assistant skill on disk.
// ABOUTME: The skill markdown is embedded at build time and written under ~/.claude/skills.
package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

const skillFile = "skill/SKILL.md"

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the habits skill for AI assistants",
	Long: `Write the habits skill file to ~/.claude/skills/habits/SKILL.md.

Assistants that load skills from that directory learn when to call the
habits MCP tools: ticking off a habit you mention, saving the day's mood and
notes, and summarizing streaks or the last week.

Pair it with 'habits mcp' registered as an MCP server.`,
	Annotations: map[string]string{storeAnnotation: storeNone},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}
		if !skillSkipConfirm {
			prompt := fmt.Sprintf("Write %s? [y/N] ", skillPathFor(home))
			if !confirmFrom(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, "y", "yes") {
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
				return nil
			}
		}
		return installSkill(cmd.OutOrStdout(), home)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPathFor(home string) string {
	return filepath.Join(home, ".claude", "skills", "habits", "SKILL.md")
}

// installSkill writes the embedded skill under home, replacing any older copy.
func installSkill(w io.Writer, home string) error {
	content, err := skillFS.ReadFile(skillFile)
	if err != nil {
		return fmt.Errorf("read embedded skill: %w", err)
	}

	path := skillPathFor(home)
	_, statErr := os.Stat(path)
	replaced := statErr == nil

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create skill directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("write skill: %w", err)
	}

	verb := "Installed"
	if replaced {
		verb = "Updated"
	}
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓ %s habits skill:", verb), path)
	return nil
}
