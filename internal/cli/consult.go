package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/consult"
)

var consultCmd = &cobra.Command{
	Use:   "consult",
	Short: "Legal consultation threads",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var consultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your consultations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		manager := consult.NewManager(a.client)
		threads, err := manager.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		if len(threads) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No consultations yet. Run 'linka consult new <case-id>' to open one.")
			return nil
		}
		for _, t := range threads {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d  case #%d  %s\n", t.ID, t.CaseID, t.Name)
		}
		return nil
	},
}

var consultName string

var consultNewCmd = &cobra.Command{
	Use:   "new <case-id>",
	Short: "Open a consultation for a case",
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
		name := consultName
		if name == "" {
			name = fmt.Sprintf("Consultation for case %d", caseID)
		}
		manager := consult.NewManager(a.client)
		created, err := manager.Create(cmd.Context(), caseID, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Consultation #%d opened. Run 'linka consult open %d' to chat.\n", created.ID, created.ID)
		return nil
	},
}

var consultAI bool

var consultOpenCmd = &cobra.Command{
	Use:   "open <consultation-id>",
	Short: "Open a consultation and chat",
	Args:  cobra.ExactArgs(1),
	RunE:  runConsultOpen,
}

func init() {
	consultNewCmd.Flags().StringVar(&consultName, "name", "", "Thread name")
	consultOpenCmd.Flags().BoolVar(&consultAI, "ai", false, "Start with the AI assistant answering")

	consultCmd.AddCommand(consultListCmd)
	consultCmd.AddCommand(consultNewCmd)
	consultCmd.AddCommand(consultOpenCmd)
}

func runConsultOpen(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid consultation id %q", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireAuth(); err != nil {
		return err
	}

	manager := consult.NewManager(a.client)
	manager.SetAIMode(consultAI)
	history, err := manager.SelectID(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	thread := manager.Selected()
	printHeader("⚖️ " + thread.Name)
	for _, msg := range history {
		printConsultMessage(out, msg)
	}
	fmt.Fprintln(out, "Type a message and press enter. '/ai on' or '/ai off' switches who answers. Ctrl-D to leave.")
	if manager.AIMode() {
		fmt.Fprintln(out, color.YellowString("AI assistant is answering."))
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		line, readErr := reader.ReadString('\n')
		content := trimNewline(line)
		switch content {
		case "":
		case "/ai on":
			manager.SetAIMode(true)
			fmt.Fprintln(out, color.YellowString("AI assistant is answering."))
		case "/ai off":
			manager.SetAIMode(false)
			fmt.Fprintln(out, "Human responder is answering.")
		default:
			reply, sendErr := manager.Send(cmd.Context(), content)
			if sendErr != nil {
				fmt.Fprintln(out, color.RedString("Send failed: %v", sendErr))
				break
			}
			printConsultMessage(out, reply)
		}
		if readErr != nil {
			if readErr != io.EOF {
				fmt.Fprintln(out, color.RedString("Read input: %v", readErr))
			}
			break
		}
	}
	fmt.Fprintln(out, "Left the consultation.")
	return nil
}

func printConsultMessage(out io.Writer, msg api.ConsultationMessage) {
	stamp := msg.CreatedAt.Local().Format("15:04")
	author := fmt.Sprintf("user %d", msg.AuthorID)
	if msg.IsAI {
		author = color.MagentaString("AI")
	}
	fmt.Fprintf(out, "%s %s: %s\n", color.HiBlackString(stamp), author, msg.Content)
}
