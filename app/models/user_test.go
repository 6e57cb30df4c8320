package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("ama", "ama@example.com", "supersecret")
	require.NoError(t, err)

	assert.Equal(t, ROLE_MEMBER, u.Role)
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.NotEqual(t, "supersecret", u.Password)
	assert.True(t, u.CheckPassword("supersecret"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	_, err := CreateUser("ama", "not-an-email", "supersecret")
	assert.Error(t, err)

	_, err = CreateUser("ab", "ama@example.com", "supersecret")
	assert.Error(t, err)
}

func TestUserIsPartner(t *testing.T) {
	assert.False(t, (&User{Role: ROLE_MEMBER}).IsPartner())
	assert.True(t, (&User{Role: ROLE_PARTNER}).IsPartner())
	assert.True(t, (&User{Role: ROLE_ADMIN}).IsPartner())
}

func TestUserSetPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("changed-password"))
	assert.True(t, u.CheckPassword("changed-password"))
}
