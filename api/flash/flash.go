package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "flockherd_flash"

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Message is a one-shot notice carried across a redirect in a cookie.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func Success(text string) Message {
	return Message{Level: LevelSuccess, Text: text}
}

func Error(text string) Message {
	return Message{Level: LevelError, Text: text}
}

func Info(text string) Message {
	return Message{Level: LevelInfo, Text: text}
}

// Set queues the message for the next rendered page.
func Set(w http.ResponseWriter, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and clears the cookie.
func Pop(w http.ResponseWriter, r *http.Request) *Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil
	}
	if msg.Text == "" {
		return nil
	}
	return &msg
}
