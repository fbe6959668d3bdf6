package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command is a bot command handler and its command menu description.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
}
