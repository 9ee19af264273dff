package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"repohub/app/session"
)

func newTestManager() *session.Manager {
	return session.NewManager("test-secret", "repohub-test", 60)
}

// requestWithCookies copies the cookies a handler set on rec onto a
// fresh request, simulating the browser's next visit.
func requestWithCookies(rec *httptest.ResponseRecorder, target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManagerRoundTrip(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	st := &session.State{}
	st.SetUser(3, "alice")
	st.AddFlash("Login successful!", "success")
	if err := m.Save(rec, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := m.Load(requestWithCookies(rec, "/index"))
	if got.UserID != 3 || got.Username != "alice" {
		t.Errorf("Load() = %+v, want user 3/alice", got)
	}
	if len(got.Flashes) != 1 || got.Flashes[0].Message != "Login successful!" || got.Flashes[0].Category != "success" {
		t.Errorf("Load() flashes = %+v", got.Flashes)
	}
}

func TestManagerLoadWithoutCookie(t *testing.T) {
	m := newTestManager()
	st := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	if st.UserID != 0 || st.Username != "" || len(st.Flashes) != 0 {
		t.Errorf("empty request should load an empty session, got %+v", st)
	}
}

func TestManagerRejectsTamperedCookie(t *testing.T) {
	m := newTestManager()
	other := session.NewManager("other-secret", "repohub-test", 60)

	rec := httptest.NewRecorder()
	st := &session.State{}
	st.SetUser(9, "mallory")
	if err := other.Save(rec, st); err != nil {
		t.Fatal(err)
	}

	got := m.Load(requestWithCookies(rec, "/"))
	if got.UserID != 0 || got.Username != "" {
		t.Errorf("cookie signed with a different secret must load empty, got %+v", got)
	}
}

func TestPopFlashes(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	st := &session.State{}
	st.SetUser(5, "bob")
	st.AddFlash("Signup successful!", "success")
	if err := m.Save(rec, st); err != nil {
		t.Fatal(err)
	}

	rec2 := httptest.NewRecorder()
	flashes := m.PopFlashes(rec2, requestWithCookies(rec, "/login"))
	if len(flashes) != 1 || flashes[0].Message != "Signup successful!" {
		t.Fatalf("PopFlashes() = %+v, want one signup flash", flashes)
	}

	// The cleared cookie keeps the identity but drops the flashes.
	after := m.Load(requestWithCookies(rec2, "/login"))
	if len(after.Flashes) != 0 {
		t.Errorf("flashes not cleared: %+v", after.Flashes)
	}
	if after.UserID != 5 || after.Username != "bob" {
		t.Errorf("identity lost when popping flashes: %+v", after)
	}
}
