package session

import (
	"os"
	"path/filepath"
	"testing"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "session.json")
}

func TestLoadMissingFileMeansSignedOut(t *testing.T) {
	st := NewStore(testPath(t))

	s, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Valid() {
		t.Fatalf("missing file should load as signed out, got %+v", s)
	}
	if st.AccessToken() != "" {
		t.Fatal("no token expected")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := testPath(t)
	st := NewStore(path)

	in := Session{
		UserID:       7,
		Username:     "mia",
		DisplayName:  "Mia",
		AccessToken:  "access",
		RefreshToken: "refresh",
	}
	if err := st.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if st.AccessToken() != "access" {
		t.Fatal("saved token should be active immediately")
	}

	out, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
	if id := out.Identity(); id.UserID != 7 || id.Username != "mia" {
		t.Fatalf("identity = %+v", id)
	}
}

func TestValidKeysOnUserIDAlone(t *testing.T) {
	tokenless := Session{UserID: 7, Username: "mia"}
	if !tokenless.Valid() {
		t.Fatal("a session without tokens must still resume on restart")
	}
	if (Session{AccessToken: "acc"}).Valid() {
		t.Fatal("a token without a user id is not a session")
	}
}

func TestCorruptFileFallsBackToSignedOut(t *testing.T) {
	path := testPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Valid() {
		t.Fatal("corrupt file should route back to login")
	}
}

func TestClearForgetsSessionAndFile(t *testing.T) {
	path := testPath(t)
	st := NewStore(path)
	if err := st.Save(Session{UserID: 7, AccessToken: "access"}); err != nil {
		t.Fatal(err)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if st.AccessToken() != "" {
		t.Fatal("token should be forgotten")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("session file should be removed")
	}

	// Clearing twice is fine.
	if err := st.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
