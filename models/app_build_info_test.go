package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.3", "", "abc")

	assert.Equal(t, AppBuildInfo{Version: "1.2.3", Date: "N/A", Commit: "abc"}, info)
	assert.Equal(t, "version: 1.2.3\ndate: N/A\ncommit: abc\n", info.String())
}

func TestNotifications(t *testing.T) {
	user := User{Name: "<Ann>", Email: "ann@example.com"}

	welcome := NewWelcomeNotification(user)
	assert.Equal(t, NotificationWelcome, welcome.Kind)
	assert.Equal(t, "ann@example.com", welcome.To)
	assert.Equal(t, "Welcome, <Ann>", welcome.Subject)
	assert.NotContains(t, welcome.HTML, "<Ann>")

	removed := NewAccountRemovedNotification(user)
	assert.Equal(t, NotificationAccountRemoved, removed.Kind)
	assert.Equal(t, "Your account has been removed", removed.Subject)
}
