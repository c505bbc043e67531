package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/session"
)

type pageEnv struct {
	router *gin.Engine
	repo   *resumes.MemoryRepo
	cookie *http.Cookie
}

func newPageEnv(t *testing.T) *pageEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	issuer, err := auth.NewIssuer("test-secret", "test", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	store := session.NewMemoryStore()
	sid, _ := store.Create(context.Background(), 1, time.Hour)
	token, _ := issuer.Sign(auth.Claims{UserID: 1, SessionID: sid})

	repo := resumes.NewMemoryRepo()
	h, err := NewHandler(resumes.NewService(repo))
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	r := gin.New()
	r.Use(middleware.Identity(issuer, store), middleware.PageGuard())
	h.RegisterRoutes(r)
	return &pageEnv{router: r, repo: repo, cookie: &http.Cookie{Name: middleware.SessionCookie, Value: token}}
}

func (e *pageEnv) get(path string, signedIn bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if signedIn {
		req.AddCookie(e.cookie)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func TestPagesRedirects(t *testing.T) {
	env := newPageEnv(t)

	cases := []struct {
		path     string
		signedIn bool
		location string
	}{
		{"/", true, "/dashboard"},
		{"/dashboard", false, "/login"},
		{"/resume/new", false, "/login"},
		{"/resume", false, "/login"},
		{"/dashboard/settings", false, "/login"},
		{"/login", true, "/dashboard"},
		{"/register", true, "/dashboard"},
	}
	for _, tc := range cases {
		resp := env.get(tc.path, tc.signedIn)
		if resp.Code != http.StatusFound || resp.Header().Get("Location") != tc.location {
			t.Fatalf("%s (signedIn=%v): expected 302 to %s, got %d %q", tc.path, tc.signedIn, tc.location, resp.Code, resp.Header().Get("Location"))
		}
	}
}

func TestLoginPageRendersForAnonymous(t *testing.T) {
	env := newPageEnv(t)

	resp := env.get("/login?registered=true", false)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `id="login-form"`) || !strings.Contains(body, "Account created") {
		t.Fatalf("unexpected login page: %s", body)
	}
}

func TestDashboardListsOwnResumes(t *testing.T) {
	env := newPageEnv(t)
	ctx := context.Background()
	if _, err := env.repo.Create(ctx, 1, resumes.Document{Title: "Platform Engineer"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.repo.Create(ctx, 2, resumes.Document{Title: "Someone Else"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	resp := env.get("/dashboard", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "Platform Engineer") || strings.Contains(body, "Someone Else") {
		t.Fatalf("unexpected dashboard: %s", body)
	}
}

func TestResumePageFormatsDates(t *testing.T) {
	env := newPageEnv(t)
	res, err := env.repo.Create(context.Background(), 1, resumes.Document{
		Title: "CV",
		Experience: []resumes.ExperienceEntry{
			{Company: "Acme", Position: "Engineer", StartDate: "2021-03", Current: true},
		},
		Education: []resumes.EducationEntry{
			{School: "State", Degree: "BSc", StartDate: "2015-09", EndDate: "2019-06"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp := env.get("/resume/"+strconv.FormatInt(res.ID, 10), true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{"Mar 2021 - Present", "Sep 2015 - Jun 2019", "Engineer, Acme"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page: %s", want, body)
		}
	}

	if missing := env.get("/resume/999", true); missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing resume, got %d", missing.Code)
	}
	if bad := env.get("/resume/abc", true); bad.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for bad id, got %d", bad.Code)
	}
}

func TestNewResumePageRenders(t *testing.T) {
	env := newPageEnv(t)
	resp := env.get("/resume/new", true)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `id="new-resume"`) {
		t.Fatalf("unexpected new resume page %d: %s", resp.Code, resp.Body.String())
	}
}
