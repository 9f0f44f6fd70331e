package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"kyn/internal/database"
	"kyn/internal/realtime"
	"kyn/internal/repository"
	"kyn/internal/security"
	"kyn/internal/service"
	"kyn/migrations"
)

// newTestServer wires the API against an in-memory database,
// mirroring the route table in cmd/server.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(migrations.FS); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	triviaRepo := repository.NewTriviaRepository(db)

	authService := service.NewAuthService(userRepo, profileRepo, time.Hour)
	profileService := service.NewProfileService(profileRepo)
	familyService := service.NewFamilyService(familyRepo, profileRepo, &service.EmailService{})
	inviteService := service.NewInviteService(familyRepo, inviteRepo, "https://kyn.test")
	switcher := service.NewSwitcher(service.NewMemorySelectionStore(), familyRepo)

	hub := realtime.NewHub()
	limiter := security.NewRateLimiter(100, time.Minute)
	middleware := NewMiddleware(authService, profileService, limiter)

	authHandler := NewAuthHandler(authService, profileService)
	familyHandler := NewFamilyHandler(familyService)
	inviteHandler := NewInviteHandler(inviteService)
	selectionHandler := NewSelectionHandler(switcher)
	feedHandler := NewFeedHandler(feedRepo, familyRepo, hub)
	triviaHandler := NewTriviaHandler(triviaRepo, familyRepo, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/families", middleware.RequireProfile(familyHandler.Create))
	mux.HandleFunc("GET /api/families", middleware.RequireProfile(familyHandler.List))
	mux.HandleFunc("POST /api/families/{familyID}/invite-password", middleware.RequireProfile(inviteHandler.GeneratePassword))
	mux.HandleFunc("POST /api/families/{familyID}/invite-link", middleware.RequireProfile(inviteHandler.GenerateLink))
	mux.HandleFunc("POST /api/join", middleware.RequireProfile(inviteHandler.Join))
	mux.HandleFunc("GET /api/me/selected-family", middleware.RequireProfile(selectionHandler.Get))
	mux.HandleFunc("POST /api/families/{familyID}/posts", middleware.RequireProfile(feedHandler.CreatePost))
	mux.HandleFunc("GET /api/families/{familyID}/posts", middleware.RequireProfile(feedHandler.ListPosts))
	mux.HandleFunc("POST /api/families/{familyID}/trivia/questions", middleware.RequireProfile(triviaHandler.CreateQuestion))
	mux.HandleFunc("POST /api/families/{familyID}/trivia/questions/{questionID}/answer", middleware.RequireProfile(triviaHandler.Answer))
	mux.HandleFunc("GET /api/families/{familyID}/trivia/leaderboard", middleware.RequireProfile(triviaHandler.Leaderboard))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// apiClient holds a cookie jar so the session survives across calls
type apiClient struct {
	t       *testing.T
	base    string
	httpcli *http.Client
}

func newClient(t *testing.T, server *httptest.Server) *apiClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &apiClient{t: t, base: server.URL, httpcli: &http.Client{Jar: jar}}
}

func (c *apiClient) do(method, path string, body interface{}, out interface{}) *http.Response {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		c.t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpcli.Do(req)
	if err != nil {
		c.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp
}

func (c *apiClient) register(email, name string) {
	c.t.Helper()
	resp := c.do("POST", "/api/auth/register", map[string]string{
		"email":    email,
		"password": "password123",
		"fullName": name,
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		c.t.Fatalf("register returned %d", resp.StatusCode)
	}
}

func (c *apiClient) createFamily(name string) int64 {
	c.t.Helper()
	var family struct {
		ID int64 `json:"id"`
	}
	resp := c.do("POST", "/api/families", map[string]string{"name": name}, &family)
	if resp.StatusCode != http.StatusCreated {
		c.t.Fatalf("create family returned %d", resp.StatusCode)
	}
	return family.ID
}

func TestRegisterSetsSession(t *testing.T) {
	server := newTestServer(t)
	client := newClient(t, server)

	client.register("amy@example.com", "Amy Pond")

	var me struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Profile struct {
			FullName string `json:"fullName"`
		} `json:"profile"`
	}
	resp := client.do("GET", "/api/auth/me", nil, &me)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me returned %d", resp.StatusCode)
	}
	if me.User.Email != "amy@example.com" {
		t.Errorf("expected amy@example.com, got %s", me.User.Email)
	}
	if me.Profile.FullName != "Amy Pond" {
		t.Errorf("expected profile name Amy Pond, got %s", me.Profile.FullName)
	}
}

func TestMeRequiresAuth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/auth/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJoinByPasswordFlow(t *testing.T) {
	server := newTestServer(t)

	creator := newClient(t, server)
	creator.register("amy@example.com", "Amy Pond")
	familyID := creator.createFamily("The Ponds")

	var pw struct {
		Password string `json:"password"`
	}
	resp := creator.do("POST", fmt.Sprintf("/api/families/%d/invite-password", familyID), nil, &pw)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("invite-password returned %d", resp.StatusCode)
	}
	if len(pw.Password) != security.InvitePasswordLength {
		t.Fatalf("expected %d char password, got %q", security.InvitePasswordLength, pw.Password)
	}

	joiner := newClient(t, server)
	joiner.register("rory@example.com", "Rory Williams")

	var family struct {
		ID int64 `json:"id"`
	}
	resp = joiner.do("POST", "/api/join", map[string]string{"password": pw.Password}, &family)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join returned %d", resp.StatusCode)
	}
	if family.ID != familyID {
		t.Errorf("joined family %d, expected %d", family.ID, familyID)
	}

	// a joined member sees the family selected by the fallback rule
	var selection struct {
		Family struct {
			ID int64 `json:"id"`
		} `json:"family"`
	}
	resp = joiner.do("GET", "/api/me/selected-family", nil, &selection)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("selection returned %d", resp.StatusCode)
	}
	if selection.Family.ID != familyID {
		t.Errorf("selected family %d, expected %d", selection.Family.ID, familyID)
	}
}

func TestJoinByTokenFlow(t *testing.T) {
	server := newTestServer(t)

	creator := newClient(t, server)
	creator.register("amy@example.com", "Amy Pond")
	familyID := creator.createFamily("The Ponds")

	var link struct {
		Token   string `json:"token"`
		JoinURL string `json:"joinUrl"`
	}
	resp := creator.do("POST", fmt.Sprintf("/api/families/%d/invite-link", familyID), nil, &link)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("invite-link returned %d", resp.StatusCode)
	}

	joiner := newClient(t, server)
	joiner.register("rory@example.com", "Rory Williams")

	body := map[string]interface{}{"familyId": familyID, "token": link.Token}
	resp = joiner.do("POST", "/api/join", body, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join returned %d", resp.StatusCode)
	}

	// the token is burned after one use
	second := newClient(t, server)
	second.register("river@example.com", "River Song")
	var apiErr struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resp = second.do("POST", "/api/join", body, &apiErr)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on reuse, got %d", resp.StatusCode)
	}
	if apiErr.Error.Code != "invalid_or_expired_invite" {
		t.Errorf("expected invalid_or_expired_invite, got %s", apiErr.Error.Code)
	}
}

func TestFeedScopedToMembers(t *testing.T) {
	server := newTestServer(t)

	creator := newClient(t, server)
	creator.register("amy@example.com", "Amy Pond")
	familyID := creator.createFamily("The Ponds")

	resp := creator.do("POST", fmt.Sprintf("/api/families/%d/posts", familyID),
		map[string]string{"content": "hello family"}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create post returned %d", resp.StatusCode)
	}

	outsider := newClient(t, server)
	outsider.register("strax@example.com", "Strax Sontaran")
	resp = outsider.do("GET", fmt.Sprintf("/api/families/%d/posts", familyID), nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for non-member, got %d", resp.StatusCode)
	}
}

func TestTriviaAnswerUpdatesLeaderboard(t *testing.T) {
	server := newTestServer(t)

	client := newClient(t, server)
	client.register("amy@example.com", "Amy Pond")
	familyID := client.createFamily("The Ponds")

	var question struct {
		ID int64 `json:"id"`
	}
	resp := client.do("POST", fmt.Sprintf("/api/families/%d/trivia/questions", familyID),
		map[string]string{"question": "Who fixed the crack?", "answer": "The Doctor"}, &question)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create question returned %d", resp.StatusCode)
	}

	answerPath := fmt.Sprintf("/api/families/%d/trivia/questions/%d/answer", familyID, question.ID)

	var result struct {
		Correct bool `json:"correct"`
	}
	client.do("POST", answerPath, map[string]string{"answer": "the doctor"}, &result)
	if !result.Correct {
		t.Error("expected case-insensitive answer to be correct")
	}

	client.do("POST", answerPath, map[string]string{"answer": "the master"}, &result)
	if result.Correct {
		t.Error("expected wrong answer to be incorrect")
	}

	var scores []struct {
		Score int `json:"score"`
	}
	resp = client.do("GET", fmt.Sprintf("/api/families/%d/trivia/leaderboard", familyID), nil, &scores)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard returned %d", resp.StatusCode)
	}
	if len(scores) != 1 || scores[0].Score != 1 {
		t.Errorf("expected one entry with score 1, got %+v", scores)
	}
}
