package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	s := &fakeSessions{snap: guestSnapshot()}
	a, out := newTestApp(s, &fakeTranslator{})
	stubInputs(t, "alice@example.org", []byte("secret"))

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice@example.org", s.registerEmail)
	assert.Contains(t, out.String(), "Registered")
	assert.Equal(t, models.RouteLogin, a.route)
}

func TestRegister_Failure(t *testing.T) {
	s := &fakeSessions{snap: guestSnapshot(), registerErr: errors.New("User already exists")}
	a, out := newTestApp(s, &fakeTranslator{})
	stubInputs(t, "alice@example.org", []byte("secret"))

	require.Error(t, a.Register(context.Background()))
	assert.Contains(t, out.String(), "Registration failed: User already exists")
	assert.Equal(t, models.RouteNone, a.route)
}

func TestLogin_WipesPasswordAndNavigates(t *testing.T) {
	s := &fakeSessions{snap: guestSnapshot(), signInNav: models.Navigation{Route: models.RouteMain}}
	a, _ := newTestApp(s, &fakeTranslator{})
	pw := []byte("secret")
	stubInputs(t, "alice@example.org", pw)

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "secret", s.signInPass)
	assert.Equal(t, make([]byte, 6), pw)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, models.RouteMain, a.route)
}

func TestLogin_NavigationWaitsUntilSettled(t *testing.T) {
	s := &fakeSessions{snap: guestSnapshot(), signInNav: models.Navigation{Route: models.RouteMain}}
	s.snap.IsLoading = true
	a, _ := newTestApp(s, &fakeTranslator{})
	stubInputs(t, "alice@example.org", []byte("pw"))

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, models.RouteNone, a.route)
	assert.True(t, a.pending.Pending())

	s.snap.IsLoading = false
	a.getStatus()
	assert.Equal(t, models.RouteMain, a.route)
	assert.False(t, a.pending.Pending())
}

func TestLogin_Failure(t *testing.T) {
	s := &fakeSessions{snap: guestSnapshot(), signInErr: errors.New("Invalid credentials")}
	a, out := newTestApp(s, &fakeTranslator{})
	stubInputs(t, "alice@example.org", []byte("bad"))

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "Login failed: Invalid credentials")
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	s := &fakeSessions{snap: guestSnapshot()}
	a, _ := newTestApp(s, &fakeTranslator{})

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, 1, s.signOutCalls)
	assert.Equal(t, models.RouteWelcome, a.route)
}
