// Package teletest provides an in-memory tele.Context for handler tests.
package teletest

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Call is one recorded Send or Edit.
type Call struct {
	What interface{}
	Opts []interface{}
}

// Text returns the message text of the call, if it was a string.
func (c Call) Text() string {
	s, _ := c.What.(string)
	return s
}

// Options returns the first *tele.SendOptions passed with the call.
func (c Call) Options() *tele.SendOptions {
	for _, o := range c.Opts {
		if so, ok := o.(*tele.SendOptions); ok {
			return so
		}
	}
	return nil
}

// Markup returns the reply markup attached to the call.
func (c Call) Markup() *tele.ReplyMarkup {
	for _, o := range c.Opts {
		switch v := o.(type) {
		case *tele.ReplyMarkup:
			return v
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return v.ReplyMarkup
			}
		}
	}
	return nil
}

// Context records outgoing calls. Methods it does not override panic through
// the nil embedded interface, which flags unexpected transport use in tests.
type Context struct {
	tele.Context

	U tele.Update

	SendErr error
	EditErr error

	mu        sync.Mutex
	store     map[string]interface{}
	sent      []Call
	edited    []Call
	responses int
}

// NewCommand returns a context for a private chat message.
func NewCommand(updateID int, chatID int64, text string) *Context {
	user := &tele.User{ID: chatID, Username: "tester"}
	return &Context{U: tele.Update{
		ID: updateID,
		Message: &tele.Message{
			ID:     1,
			Sender: user,
			Chat:   &tele.Chat{ID: chatID, Type: tele.ChatPrivate},
			Text:   text,
		},
	}}
}

// NewCallback returns a context for a button press on message 1 of chatID.
func NewCallback(updateID int, chatID int64, data string) *Context {
	user := &tele.User{ID: chatID, Username: "tester"}
	return &Context{U: tele.Update{
		ID: updateID,
		Callback: &tele.Callback{
			ID:     "cb-1",
			Sender: user,
			Data:   data,
			Message: &tele.Message{
				ID:   1,
				Chat: &tele.Chat{ID: chatID, Type: tele.ChatPrivate},
			},
		},
	}}
}

func (c *Context) Update() tele.Update { return c.U }

func (c *Context) Message() *tele.Message {
	switch {
	case c.U.Message != nil:
		return c.U.Message
	case c.U.Callback != nil:
		return c.U.Callback.Message
	}
	return nil
}

func (c *Context) Callback() *tele.Callback { return c.U.Callback }

func (c *Context) Query() *tele.Query { return c.U.Query }

func (c *Context) Sender() *tele.User {
	switch {
	case c.U.Callback != nil:
		return c.U.Callback.Sender
	case c.U.Message != nil:
		return c.U.Message.Sender
	}
	return nil
}

func (c *Context) Chat() *tele.Chat {
	if m := c.Message(); m != nil {
		return m.Chat
	}
	return nil
}

func (c *Context) Text() string {
	if c.U.Message != nil {
		return c.U.Message.Text
	}
	return ""
}

func (c *Context) Get(key string) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key]
}

func (c *Context) Set(key string, val interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = make(map[string]interface{})
	}
	c.store[key] = val
}

func (c *Context) Send(what interface{}, opts ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SendErr != nil {
		return c.SendErr
	}
	c.sent = append(c.sent, Call{What: what, Opts: opts})
	return nil
}

func (c *Context) Edit(what interface{}, opts ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.EditErr != nil {
		return c.EditErr
	}
	c.edited = append(c.edited, Call{What: what, Opts: opts})
	return nil
}

func (c *Context) Respond(_ ...*tele.CallbackResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses++
	return nil
}

// Sent returns the recorded Send calls.
func (c *Context) Sent() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.sent...)
}

// Edited returns the recorded Edit calls.
func (c *Context) Edited() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.edited...)
}

// Responses returns how many times the callback was answered.
func (c *Context) Responses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.responses
}
