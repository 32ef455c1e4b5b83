package models

import (
	"fmt"
	"html"
)

// NotificationKind identifies the account event a notification is about.
type NotificationKind string

const (
	NotificationWelcome        NotificationKind = "welcome"
	NotificationAccountRemoved NotificationKind = "account_removed"
)

// Notification is a rendered message addressed to a single user.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	To      string           `json:"to"`
	Name    string           `json:"name"`
	Subject string           `json:"subject"`
	HTML    string           `json:"html"`
}

// NewWelcomeNotification renders the message sent after sign up.
func NewWelcomeNotification(user User) Notification {
	name := html.EscapeString(user.Name)
	return Notification{
		Kind:    NotificationWelcome,
		To:      user.Email,
		Name:    user.Name,
		Subject: fmt.Sprintf("Welcome, %s", user.Name),
		HTML: fmt.Sprintf("<p>Dear %s, <br>thank you for creating an account.</p>"+
			"<p>Have a great time using it!</p>", name),
	}
}

// NewAccountRemovedNotification renders the message sent after account deletion.
func NewAccountRemovedNotification(user User) Notification {
	name := html.EscapeString(user.Name)
	return Notification{
		Kind:    NotificationAccountRemoved,
		To:      user.Email,
		Name:    user.Name,
		Subject: "Your account has been removed",
		HTML:    fmt.Sprintf("<p>Dear %s, <br>your account has been removed successfully.</p>", name),
	}
}
