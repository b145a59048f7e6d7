package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/groupchat"
)

var caseChatCmd = &cobra.Command{
	Use:   "chat <case-id>",
	Short: "Join the response room for a case",
	Args:  cobra.ExactArgs(1),
	RunE:  runCaseChat,
}

func runCaseChat(cmd *cobra.Command, args []string) error {
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

	self := a.session.User()
	sess := groupchat.NewSession(a.client, caseID, a.cfg.Chat.PollInterval)
	if err := sess.Start(cmd.Context()); err != nil {
		return fmt.Errorf("join chat: %w", err)
	}
	defer sess.Close()

	out := cmd.OutOrStdout()
	group := sess.Group()
	printHeader("💬 " + group.Name)
	fmt.Fprintln(out, groupchat.Hint())
	fmt.Fprintln(out, "Type a message and press enter. Ctrl-D to leave.")

	// Only this goroutine prints messages; sends surface through the same
	// update stream as polled messages.
	printer := newMessagePrinter(out, self)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for snapshot := range sess.Updates() {
			printer.print(snapshot)
		}
	}()

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		line, readErr := reader.ReadString('\n')
		content := trimNewline(line)
		if content != "" {
			if _, sendErr := sess.Send(cmd.Context(), content); sendErr != nil {
				fmt.Fprintln(out, color.RedString("Send failed: %v", sendErr))
			}
		}
		if readErr != nil {
			if readErr != io.EOF {
				fmt.Fprintln(out, color.RedString("Read input: %v", readErr))
			}
			break
		}
	}

	sess.Close()
	<-done
	fmt.Fprintln(out, "Left the room.")
	return nil
}

// messagePrinter renders snapshots, tracking which message ids have already
// been shown. Snapshots replace the window wholesale and id order is not
// guaranteed, so a plain high-water mark could drop messages.
type messagePrinter struct {
	out  io.Writer
	self *api.User
	seen map[int]bool
}

func newMessagePrinter(out io.Writer, self *api.User) *messagePrinter {
	return &messagePrinter{out: out, self: self, seen: map[int]bool{}}
}

func (p *messagePrinter) print(snapshot []api.Message) {
	for _, msg := range snapshot {
		if p.seen[msg.ID] {
			continue
		}
		p.seen[msg.ID] = true
		printChatMessage(p.out, msg, p.self)
	}
}

func printChatMessage(out io.Writer, msg api.Message, self *api.User) {
	author := fmt.Sprintf("user %d", msg.AuthorID)
	if self != nil && msg.AuthorID == self.ID {
		author = "you"
	}
	content := msg.Content
	if groupchat.IsCommand(content) {
		content = color.YellowString(content)
	}
	stamp := msg.CreatedAt.Local().Format("15:04")
	fmt.Fprintf(out, "%s %s: %s\n", color.HiBlackString(stamp), color.CyanString(author), content)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
