package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/linka-app/linka/internal/api"
)

func TestMessagePrinterHandlesNonMonotonicIDs(t *testing.T) {
	var buf bytes.Buffer
	p := newMessagePrinter(&buf, &api.User{ID: 1})

	p.print([]api.Message{{ID: 5, AuthorID: 2, Content: "hello there"}})
	// The next poll returns a wider window whose ids are not in increasing
	// order relative to what was already shown.
	p.print([]api.Message{
		{ID: 3, AuthorID: 2, Content: "missed earlier"},
		{ID: 5, AuthorID: 2, Content: "hello there"},
		{ID: 9, AuthorID: 1, Content: "latest reply"},
	})

	out := buf.String()
	for _, want := range []string{"hello there", "missed earlier", "latest reply"} {
		if got := strings.Count(out, want); got != 1 {
			t.Errorf("%q printed %d times, want 1:\n%s", want, got, out)
		}
	}
}

func TestMessagePrinterSkipsRepeatedSnapshots(t *testing.T) {
	var buf bytes.Buffer
	p := newMessagePrinter(&buf, nil)

	snapshot := []api.Message{{ID: 1, AuthorID: 2, Content: "only once"}}
	p.print(snapshot)
	p.print(snapshot)

	if got := strings.Count(buf.String(), "only once"); got != 1 {
		t.Errorf("message printed %d times, want 1", got)
	}
}

func TestMessagePrinterRendersCommands(t *testing.T) {
	var buf bytes.Buffer
	p := newMessagePrinter(&buf, nil)

	p.print([]api.Message{{ID: 1, AuthorID: 2, Content: "/summarize"}})
	if !strings.Contains(buf.String(), "/summarize") {
		t.Errorf("command content missing from output: %q", buf.String())
	}
}
