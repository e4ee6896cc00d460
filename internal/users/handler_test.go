package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmate/trainmate-api/internal/auth"
)

type usersRepoMock struct {
	users   map[string]*User
	saveErr error
}

var _ usersRepo = (*usersRepoMock)(nil)

func newUsersRepoMock() *usersRepoMock {
	return &usersRepoMock{
		users: make(map[string]*User),
	}
}

func (m *usersRepoMock) Save(_ context.Context, userID string, user User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.users[userID] = &user
	return nil
}

func (m *usersRepoMock) Get(_ context.Context, userID string) (*User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

type bootstrapperMock struct {
	seededUsers []string
	seedErr     error
}

var _ challengesBootstrapper = (*bootstrapperMock)(nil)

func (m *bootstrapperMock) CreateChallenges(_ context.Context, userID string) error {
	m.seededUsers = append(m.seededUsers, userID)
	return m.seedErr
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(auth.ContextWithUserID(req.Context(), "user1"))
}

func TestHandleSave_seedsChallenges(t *testing.T) {
	repo := newUsersRepoMock()
	bootstrapper := &bootstrapperMock{}
	handler := NewHandler(repo, bootstrapper)

	req := authedRequest(http.MethodPost, "/users",
		`{"email":"ana@trainmate.com","fullName":"Ana","gender":"female","weight":62,"height":170,"birthday":"1994-05-01"}`)
	rr := httptest.NewRecorder()
	handler.HandleSave(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, repo.users, "user1")
	assert.Equal(t, "ana@trainmate.com", repo.users["user1"].Email)
	assert.Equal(t, []string{"user1"}, bootstrapper.seededUsers)
}

func TestHandleSave_seedingFailureStillSavesProfile(t *testing.T) {
	repo := newUsersRepoMock()
	bootstrapper := &bootstrapperMock{seedErr: errors.New("firestore down")}
	handler := NewHandler(repo, bootstrapper)

	req := authedRequest(http.MethodPost, "/users", `{"email":"ana@trainmate.com"}`)
	rr := httptest.NewRecorder()
	handler.HandleSave(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, repo.users, "user1")
	assert.Equal(t, []string{"user1"}, bootstrapper.seededUsers)
}

func TestHandleSave_emptyEmail(t *testing.T) {
	repo := newUsersRepoMock()
	bootstrapper := &bootstrapperMock{}
	handler := NewHandler(repo, bootstrapper)

	req := authedRequest(http.MethodPost, "/users", `{"email":""}`)
	rr := httptest.NewRecorder()
	handler.HandleSave(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, repo.users)
	assert.Empty(t, bootstrapper.seededUsers)
}

func TestHandleSave_repoFailureSkipsSeeding(t *testing.T) {
	repo := newUsersRepoMock()
	repo.saveErr = errors.New("firestore down")
	bootstrapper := &bootstrapperMock{}
	handler := NewHandler(repo, bootstrapper)

	req := authedRequest(http.MethodPost, "/users", `{"email":"ana@trainmate.com"}`)
	rr := httptest.NewRecorder()
	handler.HandleSave(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, bootstrapper.seededUsers)
}

func TestHandleGetInfo(t *testing.T) {
	repo := newUsersRepoMock()
	repo.users["user1"] = &User{Email: "ana@trainmate.com", FullName: "Ana"}
	handler := NewHandler(repo, &bootstrapperMock{})

	req := authedRequest(http.MethodGet, "/users/info", "")
	rr := httptest.NewRecorder()
	handler.HandleGetInfo(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var user User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "Ana", user.FullName)
}

func TestHandleGetInfo_notFound(t *testing.T) {
	handler := NewHandler(newUsersRepoMock(), &bootstrapperMock{})

	req := authedRequest(http.MethodGet, "/users/info", "")
	rr := httptest.NewRecorder()
	handler.HandleGetInfo(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
