package command

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOpener struct {
	opened []*url.URL
	err    error
}

func (o *recordingOpener) OpenURL(u *url.URL) error {
	o.opened = append(o.opened, u)
	return o.err
}

func TestEmailAuthorCommand(t *testing.T) {
	opener := &recordingOpener{}
	cmd := NewEmailAuthorCommand(opener)

	assert.Equal(t, "Email the Author", cmd.Label())
	assert.Equal(t, EmailIcon, cmd.Icon())

	require.NoError(t, cmd.Execute())
	require.Len(t, opener.opened, 1)

	got := opener.opened[0]
	assert.Equal(t, "mailto", got.Scheme)
	assert.Equal(t, "paul@pksoftware.net", got.Opaque)
	assert.Equal(t, "Mini SQL Query Feedback", got.Query().Get("subject"))
}

func TestShowURLCommand_ExecuteRepeatedly(t *testing.T) {
	opener := &recordingOpener{}
	cmd := NewWebsiteCommand(opener)

	for i := 0; i < 3; i++ {
		require.NoError(t, cmd.Execute())
	}
	require.Len(t, opener.opened, 3)
	for _, u := range opener.opened {
		assert.Equal(t, websiteURL, u.String())
	}
}

func TestShowURLCommand_PropagatesLaunchFailure(t *testing.T) {
	launchErr := errors.New("no handler for mailto")
	cmd := NewEmailAuthorCommand(&recordingOpener{err: launchErr})

	assert.ErrorIs(t, cmd.Execute(), launchErr)
}

func TestShowURLCommand_TargetIsNotShared(t *testing.T) {
	opener := &recordingOpener{}
	cmd := NewWebsiteCommand(opener)

	require.NoError(t, cmd.Execute())
	opener.opened[0].Path = "/tampered"

	assert.Equal(t, websiteURL, cmd.URL().String())
}

func TestNewShowURLCommand_InvalidURL(t *testing.T) {
	_, err := NewShowURLCommand(&recordingOpener{}, "Broken", "http://[::1", nil)
	assert.Error(t, err)
}

func TestFunc(t *testing.T) {
	calls := 0
	cmd := NewFunc("Save", nil, func() error {
		calls++
		return nil
	})

	assert.Equal(t, "Save", cmd.Label())
	assert.Nil(t, cmd.Icon())
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, calls)

	assert.NoError(t, NewFunc("Noop", nil, nil).Execute())
}

func TestCommandsSatisfyInterface(t *testing.T) {
	var _ Command = (*ShowURLCommand)(nil)
	var _ Command = (*Func)(nil)
}
