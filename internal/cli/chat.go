package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/concierge"
	"github.com/Veraticus/tech-concierge/internal/model"
)

// Chatter answers one shopper message.
type Chatter interface {
	Chat(ctx context.Context, req concierge.ChatRequest) (*concierge.ChatResult, error)
}

// Greeting is the first thing the concierge says in a new conversation.
const Greeting = "Hi! I'm your tech concierge. Tell me what you're shopping for, " +
	"your budget, and when you need it."

// PlainChatOptions configures RunPlainChat.
type PlainChatOptions struct {
	// OnSession is called whenever the session ID becomes known.
	OnSession func(id string)
	Context   *model.Context
	SessionID string
	// Spinner shows a progress spinner while waiting for a reply.
	Spinner bool
}

// RunPlainChat runs a line-at-a-time conversation over in and out until the
// shopper types exit, input ends, or ctx is canceled.
func RunPlainChat(ctx context.Context, chatter Chatter, in io.Reader, out io.Writer, opts PlainChatOptions) error {
	reader := NewLineReader(in)
	sessionID := opts.SessionID
	callerContext := opts.Context

	fmt.Fprintln(out, FormatTitle("Tech Concierge"))
	fmt.Fprintln(out, AssistantStyle.Render("Concierge: ")+Greeting)
	fmt.Fprintln(out, SubtleStyle.Render("Type 'exit' to leave."))

	for {
		fmt.Fprint(out, "\n"+FormatPrompt("You"))
		line, err := reader.ReadLine(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "bye":
			fmt.Fprintln(out, FormatInfo("Thanks for stopping by!"))
			return nil
		}

		var spinner *Spinner
		if opts.Spinner {
			spinner = StartSpinner(out, "Thinking...")
		}
		result, err := chatter.Chat(ctx, concierge.ChatRequest{
			Message:   line,
			SessionID: sessionID,
			Context:   callerContext,
		})
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(out, FormatError(err.Error()))
			continue
		}

		// The session now carries the caller context.
		callerContext = nil
		if result.SessionID != "" && result.SessionID != sessionID {
			sessionID = result.SessionID
			if opts.OnSession != nil {
				opts.OnSession(sessionID)
			}
		}

		fmt.Fprintln(out, AssistantStyle.Render("Concierge: ")+result.Reply)
		if len(result.Bundles) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, RenderBundles(result.Bundles))
		}
	}
}
