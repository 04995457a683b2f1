package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picnicbox/internal/app/pack"
	"picnicbox/internal/app/room"
	"picnicbox/internal/configs"
	"picnicbox/internal/pkg/errs"
)

// stubDirectory scripts directory responses for handler tests.
type stubDirectory struct {
	createCode string
	createUser string
	createErr  *errs.CustomError

	rooms map[string]*room.Room

	joinCode string
	joinUser string
	joinErr  *errs.CustomError

	findCalls int
}

func (s *stubDirectory) CreateRoom(ctx context.Context, leaderName string) (string, string, *errs.CustomError) {
	if s.createErr != nil {
		return "", "", s.createErr
	}
	return s.createCode, s.createUser, nil
}

func (s *stubDirectory) FindRoom(ctx context.Context, code string) (*room.Room, *errs.CustomError) {
	s.findCalls++

	rm, ok := s.rooms[code]
	if !ok {
		return nil, errs.NewError(errs.ErrRoomNotFound, code)
	}
	return rm, nil
}

func (s *stubDirectory) JoinRoom(ctx context.Context, code, name, existingUserID string) (string, string, *errs.CustomError) {
	if s.joinErr != nil {
		return "", "", s.joinErr
	}
	return s.joinCode, s.joinUser, nil
}

func newTestRouter(dir *stubDirectory) http.Handler {
	catalog, err := pack.LoadCatalog()
	if err != nil {
		panic(err)
	}

	return Router(&AppDeps{
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
		},
		Directory: dir,
		Packs:     catalog,
	})
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Code    int            `json:"code"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Zero(t, envelope.Code)
	return envelope.Data
}

func TestHandleCreateRoom(t *testing.T) {
	dir := &stubDirectory{createCode: "WXYZ", createUser: "u1"}
	router := newTestRouter(dir)

	rec := postJSON(t, router, "/api/rooms", CreateRoomInput{Name: "ALICE"})

	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, "WXYZ", data["code"])
	assert.Equal(t, "u1", data["userId"])
}

func TestHandleCreateRoomRejectsInvalidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"too long", "THIRTEENCHARS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// fresh router per case so the create rate limiter stays cold
			router := newTestRouter(&stubDirectory{createCode: "WXYZ", createUser: "u1"})

			rec := postJSON(t, router, "/api/rooms", CreateRoomInput{Name: tt.input})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleCreateRoomExhaustion(t *testing.T) {
	dir := &stubDirectory{createErr: errs.NewError(errs.ErrCodeSpaceExhausted)}
	router := newTestRouter(dir)

	rec := postJSON(t, router, "/api/rooms", CreateRoomInput{Name: "ALICE"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleCheckRoomExists(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*room.Room{
		"WXYZ": {Code: "WXYZ", LeaderID: "u1"},
	}}
	router := newTestRouter(dir)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/WXYZ", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String(), "existence check returns an empty body")
}

func TestHandleCheckRoomLowercaseCodeAccepted(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*room.Room{
		"WXYZ": {Code: "WXYZ", LeaderID: "u1"},
	}}
	router := newTestRouter(dir)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/wxyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCheckRoomMissing(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*room.Room{}}
	router := newTestRouter(dir)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/ZZZZ", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleCheckRoomMalformedCodeSkipsLookup(t *testing.T) {
	dir := &stubDirectory{rooms: map[string]*room.Room{}}
	router := newTestRouter(dir)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/TOOLONG1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, dir.findCalls, "malformed codes never reach the store")
}

func TestHandleJoinRoom(t *testing.T) {
	dir := &stubDirectory{joinCode: "WXYZ", joinUser: "u2"}
	router := newTestRouter(dir)

	rec := postJSON(t, router, "/api/rooms/WXYZ/join", JoinRoomInput{Name: "BOB"})

	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Equal(t, "WXYZ", data["code"])
	assert.Equal(t, "u2", data["userId"])
}

func TestHandleJoinRoomNotFound(t *testing.T) {
	dir := &stubDirectory{joinErr: errs.NewError(errs.ErrRoomNotFound, "ZZZZ")}
	router := newTestRouter(dir)

	rec := postJSON(t, router, "/api/rooms/ZZZZ/join", JoinRoomInput{Name: "BOB"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ZZZZ", "error names the missing room")
}

func TestHandleJoinRoomRejectsInvalidName(t *testing.T) {
	dir := &stubDirectory{joinCode: "WXYZ", joinUser: "u2"}
	router := newTestRouter(dir)

	rec := postJSON(t, router, "/api/rooms/WXYZ/join", JoinRoomInput{Name: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListPacks(t *testing.T) {
	dir := &stubDirectory{}
	router := newTestRouter(dir)

	req := httptest.NewRequest(http.MethodGet, "/api/packs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Code int               `json:"code"`
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data)
}
