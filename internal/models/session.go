package models

import (
	"time"
)

// Platform identifies which transport a session belongs to.
type Platform string

const (
	PlatformWeb      Platform = "web"
	PlatformWhatsApp Platform = "whatsapp"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
	Time    string `json:"time"` // HH:MM, matches the chat widget rendering
}

// Session holds the conversation state for one visitor. Sessions are
// owned exclusively by the session store; handlers receive them by
// pointer and mutate them through the store's methods.
type Session struct {
	ID           string        `json:"session_id"`
	Platform     Platform      `json:"platform"`
	PhoneNumber  string        `json:"phone_number,omitempty"` // set for WhatsApp sessions
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
	Identified   bool          `json:"identified"`
	Client       *ClientRecord `json:"client,omitempty"`
	Messages     []Message     `json:"messages"`
}

// AddMessage appends one turn and refreshes the activity timestamp.
func (s *Session) AddMessage(role, content string) {
	s.Messages = append(s.Messages, Message{
		Role:    role,
		Content: content,
		Time:    time.Now().Format("15:04"),
	})
	s.LastActivity = time.Now()
}

// Identify flips the session into the identified state with the
// customer's record. The transition is one-way; only an explicit
// reset (which recreates the session) goes back.
func (s *Session) Identify(record *ClientRecord) {
	s.Identified = true
	s.Client = record
	s.LastActivity = time.Now()
}

// ExpiredSince reports whether the session has been idle longer than
// the given timeout at instant now.
func (s *Session) ExpiredSince(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}
