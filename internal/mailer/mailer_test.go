package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockNotifier stands in for the real SMTP dialer.
type mockNotifier struct {
	wasCalled bool
	lastTo    string
}

func (m *mockNotifier) SendListingPublishedEmail(toEmail, listingTitle string) error {
	m.wasCalled = true
	m.lastTo = toEmail
	return nil
}

func TestSendListingPublishedEmail_Mock(t *testing.T) {
	mock := &mockNotifier{}
	err := mock.SendListingPublishedEmail("owner@example.com", "Villa à Cocody")

	assert.NoError(t, err)
	assert.True(t, mock.wasCalled)
	assert.Equal(t, "owner@example.com", mock.lastTo)
}

func TestNewMailerConfiguration(t *testing.T) {
	m := New("smtp.example.com", 587, "noreply@example.com", "secret")
	assert.Equal(t, "smtp.example.com", m.host)
	assert.Equal(t, 587, m.port)
}
