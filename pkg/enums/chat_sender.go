package enums

import "fmt"

// ChatSender identifies who authored a chat message. These values come from
// the backend verbatim; "user" here is the wire spelling and is kept as-is
// because chat messages are rendered by sender kind, not account role.
type ChatSender string

const (
	ChatSenderUser   ChatSender = "user"
	ChatSenderVendor ChatSender = "vendor"
	ChatSenderAdmin  ChatSender = "admin"
	ChatSenderAI     ChatSender = "ai"
	ChatSenderSystem ChatSender = "system"
)

var validChatSenders = []ChatSender{
	ChatSenderUser,
	ChatSenderVendor,
	ChatSenderAdmin,
	ChatSenderAI,
	ChatSenderSystem,
}

// String implements fmt.Stringer.
func (c ChatSender) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ChatSender.
func (c ChatSender) IsValid() bool {
	for _, candidate := range validChatSenders {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseChatSender converts raw input into a ChatSender.
func ParseChatSender(value string) (ChatSender, error) {
	for _, candidate := range validChatSenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid chat sender %q", value)
}
