package store

import "testing"

func TestKVSetGetRoundtrip(t *testing.T) {
	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := kv.Set("ngo_users", `[{"id":"u1"}]`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, ok, err := kv.Get("ngo_users")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok {
		t.Fatalf("Get ok = false, want true")
	}
	if got != `[{"id":"u1"}]` {
		t.Fatalf("Get = %q, want %q", got, `[{"id":"u1"}]`)
	}
}

func TestKVGetMissingKey(t *testing.T) {
	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	got, ok, err := kv.Get("ngo_donations")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok || got != "" {
		t.Fatalf("Get = (%q, %v), want empty and absent", got, ok)
	}
}

func TestKVDurableAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	kv, err := Open(dir)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := kv.Set("ngo_current_email", "jane@x.com"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	got, ok, err := reopened.Get("ngo_current_email")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || got != "jane@x.com" {
		t.Fatalf("Get after reopen = (%q, %v), want (%q, true)", got, ok, "jane@x.com")
	}
}

func TestKVDelete(t *testing.T) {
	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := kv.Set("ngo_current_email", "jane@x.com"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := kv.Delete("ngo_current_email"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := kv.Get("ngo_current_email"); ok {
		t.Fatalf("key still present after Delete")
	}
	// deleting twice is not an error
	if err := kv.Delete("ngo_current_email"); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
}

func TestKVRejectsEscapingKeys(t *testing.T) {
	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	for _, key := range []string{"", ".", "../outside", "a/b"} {
		if err := kv.Set(key, "x"); err == nil {
			t.Fatalf("Set(%q) accepted an invalid key", key)
		}
	}
}
