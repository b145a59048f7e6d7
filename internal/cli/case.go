package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/intake"
	"github.com/linka-app/linka/internal/match"
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Report and browse fraud cases",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var caseNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Report a new case through the guided intake",
	RunE:  runCaseNew,
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your submitted cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		cases, err := a.client.ListCases(cmd.Context())
		if err != nil {
			return fmt.Errorf("list cases: %w", err)
		}
		if len(cases) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No cases yet. Run 'linka case new' to report one.")
			return nil
		}
		for _, c := range cases {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d  %-15s %s\n", c.ID, c.CaseType, truncate(c.Statement, 60))
		}
		return nil
	},
}

var caseMatchLimit int

var caseMatchesCmd = &cobra.Command{
	Use:   "matches <case-id>",
	Short: "Show cases similar to yours",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid case id %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		return printMatches(cmd, a, caseID, caseMatchLimit)
	},
}

func init() {
	caseMatchesCmd.Flags().IntVar(&caseMatchLimit, "limit", 3, "Maximum matches to show")

	caseCmd.AddCommand(caseNewCmd)
	caseCmd.AddCommand(caseListCmd)
	caseCmd.AddCommand(caseMatchesCmd)
	caseCmd.AddCommand(caseChatCmd)
}

func runCaseNew(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	printHeader("📋 Report a Case")
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	wizard := intake.NewWizard(a.cfg.Intake, a.client)

	// Step 1: case type.
	fmt.Fprintln(out, "What kind of fraud happened?")
	for i, ct := range intake.CaseTypes {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, ct.Label)
	}
	for {
		choice, err := promptLine(reader, out, "Select a number: ")
		if err != nil {
			return err
		}
		idx, convErr := strconv.Atoi(choice)
		if convErr != nil || idx < 1 || idx > len(intake.CaseTypes) {
			fmt.Fprintln(out, "Please enter a number from the list.")
			continue
		}
		selected := intake.CaseTypes[idx-1]
		other := ""
		if selected.ID == "other" {
			if other, err = promptLine(reader, out, "Describe the fraud type: "); err != nil {
				return err
			}
		}
		if err := wizard.SelectCaseType(selected.ID, other); err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		break
	}

	// Step 2: what is known about the perpetrator.
	var infos []api.ScammerInfo
	if a.cfg.Intake.FixedFields {
		fmt.Fprintln(out, "\nWhat do you know about the scammer? (leave blank to skip)")
		for _, infoType := range intake.FixedFieldTypes {
			value, err := promptLine(reader, out, fmt.Sprintf("  %s: ", infoType))
			if err != nil {
				return err
			}
			if value != "" {
				infos = append(infos, api.ScammerInfo{InfoType: infoType, Value: value})
			}
		}
	} else {
		fmt.Fprintln(out, "\nWhat do you know about the scammer?")
		fmt.Fprintf(out, "Fact types: %s. Enter a blank type to finish.\n", strings.Join(intake.ScammerInfoTypes, ", "))
		for {
			infoType, err := promptLine(reader, out, "  Type: ")
			if err != nil {
				return err
			}
			if infoType == "" {
				break
			}
			value, err := promptLine(reader, out, "  Value: ")
			if err != nil {
				return err
			}
			infos = append(infos, api.ScammerInfo{InfoType: infoType, Value: value})
		}
	}
	if err := wizard.SetScammerInfos(infos); err != nil {
		return err
	}

	// Step 3: statement.
	fmt.Fprintf(out, "\nDescribe what happened (at least %d characters, blank line to finish):\n", wizard.MinStatementLength())
	var lines []string
	for {
		line, err := promptLine(reader, out, "> ")
		if err != nil {
			return err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	created, err := wizard.Submit(cmd.Context(), strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("%s", intake.SubmitErrorMessage(err))
	}

	fmt.Fprintln(out, color.GreenString("Case #%d submitted.", created.ID))
	fmt.Fprintln(out, "\nLooking for similar cases...")
	if err := printMatches(cmd, a, created.ID, 3); err != nil {
		// The case itself is in; failed match lookup is not fatal.
		fmt.Fprintf(out, "Could not load matches: %v\n", err)
	}
	return nil
}

func printMatches(cmd *cobra.Command, a *app, caseID, limit int) error {
	resolver := match.NewResolver(a.client)
	matches, err := resolver.Fetch(cmd.Context(), caseID, limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No similar cases found yet. Check back later.")
		return nil
	}
	for _, m := range matches {
		fmt.Fprintf(out, "  #%d  %-15s %.0f%%  %s\n", m.CaseID, m.CaseType, m.Score*100, truncate(m.Summary, 50))
	}
	fmt.Fprintf(out, "Run 'linka case chat <case-id>' to join a response room.\n")
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-1]) + "…"
}
