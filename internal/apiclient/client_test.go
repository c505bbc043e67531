package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/editor"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	app, err := bootstrap.Build(context.Background(), config.Config{
		Env:        "dev",
		JWTSecret:  "client-test-secret",
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)
	srv := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		srv.Close()
		_ = app.Close()
	})
	return srv
}

func signedIn(t *testing.T, srv *httptest.Server, email string) *Client {
	t.Helper()
	ctx := context.Background()
	c := New(srv.URL, srv.Client())
	_, err := c.Register(ctx, "Ada Lovelace", email, "secret123")
	require.NoError(t, err)
	_, err = c.Login(ctx, email, "secret123")
	require.NoError(t, err)
	return c
}

func TestRegisterLoginMeLogout(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := New(srv.URL, srv.Client())

	id, err := c.Register(ctx, "Ada Lovelace", "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = c.Register(ctx, "Ada Again", "ada@example.com", "secret123")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = c.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())

	profile, err := c.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.NotEmpty(t, c.Token())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)

	token := c.Token()
	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())

	// The old token's session is revoked.
	c.SetToken(token)
	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterValidationDetails(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL, srv.Client())

	_, err := c.Register(context.Background(), "", "not-an-email", "123")
	require.ErrorIs(t, err, ErrValidation)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation_error", apiErr.Code)
	fields := map[string]bool{}
	for _, issue := range apiErr.Details {
		fields[issue.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestResumeCRUD(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := signedIn(t, srv, "crud@example.com")

	created, err := c.Create(ctx, resumes.Document{
		PersonalInfo: resumes.PersonalInfo{FullName: "Ada Lovelace", Email: "crud@example.com"},
		Skills:       []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, resumes.DefaultTitle, created.Title)
	assert.Equal(t, 1, created.Version)

	doc := created.Document
	doc.Title = "Engineer"
	updated, err := c.Update(ctx, created.ID, doc, created.Version)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", updated.Title)
	assert.Equal(t, 2, updated.Version)

	_, err = c.Update(ctx, created.ID, doc, created.Version)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, c.Delete(ctx, created.ID))
	_, err = c.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResumesAreOwnerScoped(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	owner := signedIn(t, srv, "owner@example.com")
	other := signedIn(t, srv, "other@example.com")

	res, err := owner.Create(ctx, resumes.Document{Title: "Private"})
	require.NoError(t, err)

	_, err = other.Get(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	err = other.Delete(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := other.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnonymousCallsAreUnauthorized(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL, srv.Client())

	_, err := c.List(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteAccountRemovesResumes(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := signedIn(t, srv, "leaving@example.com")

	for _, title := range []string{"One", "Two"} {
		_, err := c.Create(ctx, resumes.Document{Title: title})
		require.NoError(t, err)
	}

	n, err := c.DeleteAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = c.Login(ctx, "leaving@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEditorSavesThroughClient(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := signedIn(t, srv, "editor@example.com")

	ed := editor.New(c, editor.NewDocument())
	ed.Dispatch(editor.TitleChanged{Title: "Backend Engineer"})
	ed.Dispatch(editor.PersonalInfoChanged{Info: resumes.PersonalInfo{
		FullName: "Grace Hopper",
		Email:    "editor@example.com",
	}})
	ed.Dispatch(editor.ExperienceAppended{})
	ed.Dispatch(editor.ExperienceUpdated{Index: 0, Entry: resumes.ExperienceEntry{
		Company:   "Navy",
		Position:  "Rear Admiral",
		StartDate: "1943-12",
		EndDate:   "1986-08",
		Current:   true,
	}})
	ed.Dispatch(editor.SkillAdded{Skill: "COBOL"})

	saved, err := ed.Save(ctx)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	assert.False(t, ed.Dirty())
	require.Len(t, saved.Experience, 1)
	assert.Empty(t, saved.Experience[0].EndDate)
	assert.NotEmpty(t, saved.Experience[0].ID)

	ed.Dispatch(editor.SkillAdded{Skill: "Compilers"})
	ok, err := ed.SaveIfDirty(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := c.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"COBOL", "Compilers"}, stored.Skills)
	assert.Equal(t, ed.Document().Version, stored.Version)
}
