package tui

import "github.com/Veraticus/tech-concierge/internal/concierge"

// replyMsg carries the agent's answer to one message.
type replyMsg struct {
	err    error
	result *concierge.ChatResult
}

type entryKind int

const (
	entryUser entryKind = iota
	entryAgent
	entryError
)

// entry is one rendered block of the transcript.
type entry struct {
	result *concierge.ChatResult
	text   string
	kind   entryKind
}
