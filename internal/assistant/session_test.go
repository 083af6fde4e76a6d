package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_SeededWithWelcome(t *testing.T) {
	sess := NewSession()
	assert.NotEmpty(t, sess.ID)

	msgs := sess.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleBot, msgs[0].Role)
	assert.Equal(t, welcomeMessage, msgs[0].Text)

	assert.Empty(t, sess.History())
	assert.False(t, sess.Booked())
	assert.False(t, sess.Awaiting())
}

func TestSession_MessagesReturnsCopy(t *testing.T) {
	sess := NewSession()
	msgs := sess.Messages()
	msgs[0].Text = "mutated"

	assert.Equal(t, welcomeMessage, sess.Messages()[0].Text)
}

func TestRegistry_CreateGetRemove(t *testing.T) {
	reg := NewRegistry(0)

	sess := reg.Create()
	assert.Equal(t, 1, reg.Count())
	assert.Same(t, sess, reg.Get(sess.ID))

	assert.Nil(t, reg.Get("unknown"))

	reg.Remove(sess.ID)
	assert.Zero(t, reg.Count())
	assert.Nil(t, reg.Get(sess.ID))
}

func TestRegistry_SessionsAreIndependent(t *testing.T) {
	reg := NewRegistry(0)
	a := reg.Create()
	b := reg.Create()

	require.NotEqual(t, a.ID, b.ID)
	a.mu.Lock()
	a.booked = true
	a.mu.Unlock()

	assert.True(t, a.Booked())
	assert.False(t, b.Booked())
}

func TestSession_TouchUpdatesTimestamp(t *testing.T) {
	sess := NewSession()
	before := sess.UpdatedAt()

	time.Sleep(5 * time.Millisecond)
	sess.mu.Lock()
	sess.touch()
	sess.mu.Unlock()

	assert.True(t, sess.UpdatedAt().After(before))
}

func TestBuildSystemInstruction_ListsCatalog(t *testing.T) {
	prompt := BuildSystemInstruction()
	assert.Contains(t, prompt, "BOOK ENQUIRIES")
	assert.Contains(t, prompt, "Social Media Management")
	assert.Contains(t, prompt, "Production Shoot")
	assert.Contains(t, prompt, "bookEnquiry")
}

func TestBookEnquiryDeclaration_RequiredFields(t *testing.T) {
	decl := BookEnquiryDeclaration()
	assert.Equal(t, "bookEnquiry", decl.Name)
	require.NotNil(t, decl.Parameters)
	assert.ElementsMatch(t,
		[]string{"fullName", "email", "projectType", "details"},
		decl.Parameters.Required,
	)
	for _, field := range decl.Parameters.Required {
		assert.Contains(t, decl.Parameters.Properties, field)
	}
}
