package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func fixedSuffix() func() string {
	return func() string { return "abcd1234" }
}

func newTestService(t *testing.T) (Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore("")
	svc := NewService(store, WithNow(fixedClock()), WithSuffix(fixedSuffix()))
	return svc, store
}

func TestUploadBuildsUserScopedKey(t *testing.T) {
	svc, store := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	uploaded, err := svc.Upload(context.Background(), UploadInput{
		UserID:      userID,
		Filename:    "Photo De Profil.PNG",
		ContentType: "image/png",
		Body:        strings.NewReader("image-bytes"),
		Size:        11,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	wantKey := userID.String() + "/1741944600-abcd1234.png"
	if uploaded.Key != wantKey {
		t.Fatalf("unexpected key: %s", uploaded.Key)
	}
	if !strings.HasSuffix(uploaded.URL, wantKey) {
		t.Fatalf("url does not address the key: %s", uploaded.URL)
	}
	if _, ok := store.Get(wantKey); !ok {
		t.Fatal("object not stored")
	}
}

func TestUploadDeletesReplacedFile(t *testing.T) {
	svc, store := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	store.Put(context.Background(), "old-key.jpg", "image/jpeg", strings.NewReader("old"), 3)
	oldURL := store.URL("old-key.jpg")

	if _, err := svc.Upload(context.Background(), UploadInput{
		UserID:      userID,
		Filename:    "new.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("new"),
		Size:        3,
		ReplacesURL: oldURL,
	}); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, ok := store.Get("old-key.jpg"); ok {
		t.Fatal("replaced object should be deleted")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored object, got %d", store.Len())
	}
}

func TestUploadIgnoresForeignReplaceURL(t *testing.T) {
	svc, store := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	if _, err := svc.Upload(context.Background(), UploadInput{
		UserID:      userID,
		Filename:    "new.jpg",
		Body:        strings.NewReader("new"),
		Size:        3,
		ReplacesURL: "https://elsewhere.example.com/file.jpg",
	}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored object, got %d", store.Len())
	}
}

func TestUploadValidation(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	if _, err := svc.Upload(context.Background(), UploadInput{
		Filename: "a.png",
		Body:     strings.NewReader("x"),
	}); !errors.Is(err, ErrUserRequired) {
		t.Fatalf("expected ErrUserRequired, got %v", err)
	}

	if _, err := svc.Upload(context.Background(), UploadInput{
		UserID:   userID,
		Filename: "a.png",
	}); !errors.Is(err, ErrBodyRequired) {
		t.Fatalf("expected ErrBodyRequired, got %v", err)
	}

	if _, err := svc.Upload(context.Background(), UploadInput{
		UserID:   userID,
		Filename: "a.png",
		Body:     strings.NewReader("x"),
		Size:     MaxUploadSize + 1,
	}); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestFieldSequencerDropsStaleUploads(t *testing.T) {
	seq := NewFieldSequencer()
	field := "block:123:url"

	first := seq.Begin(field)
	second := seq.Begin(field)

	// the later upload finishes first and commits
	if !seq.Commit(field, second) {
		t.Fatal("latest ticket must commit")
	}
	// the earlier upload finishes late and must be dropped
	if seq.Commit(field, first) {
		t.Fatal("stale ticket must not commit")
	}

	// unrelated fields do not interfere
	other := seq.Begin("block:456:url")
	if !seq.Commit("block:456:url", other) {
		t.Fatal("other field ticket must commit")
	}
}

// hookStore lets a test interleave a second upload while the first one's
// Put is still in progress.
type hookStore struct {
	*MemoryStore
	onPut func()
}

func (h *hookStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if h.onPut != nil {
		hook := h.onPut
		h.onPut = nil
		hook()
	}
	return h.MemoryStore.Put(ctx, key, contentType, body, size)
}

func TestUploadWithFieldKeyDropsStaleResult(t *testing.T) {
	store := NewMemoryStore("")
	hooked := &hookStore{MemoryStore: store}

	var counter int
	svc := NewService(hooked, WithNow(fixedClock()), WithSuffix(func() string {
		counter++
		return fmt.Sprintf("suffix%02d", counter)
	}))
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	field := "block:123:url"

	// A faster second upload for the same field completes while the first
	// one is still writing its object.
	var newer *Upload
	hooked.onPut = func() {
		uploaded, err := svc.Upload(context.Background(), UploadInput{
			UserID:   userID,
			Filename: "newer.png",
			Body:     strings.NewReader("newer"),
			Size:     5,
			FieldKey: field,
		})
		if err != nil {
			t.Fatalf("newer upload: %v", err)
		}
		newer = uploaded
	}

	_, err := svc.Upload(context.Background(), UploadInput{
		UserID:   userID,
		Filename: "older.png",
		Body:     strings.NewReader("older"),
		Size:     5,
		FieldKey: field,
	})
	if !errors.Is(err, ErrUploadSuperseded) {
		t.Fatalf("expected ErrUploadSuperseded, got %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("superseded object not cleaned up, %d objects stored", store.Len())
	}
	if _, ok := store.Get(newer.Key); !ok {
		t.Fatal("newer upload's object must survive")
	}
}

func TestUploadWithoutFieldKeySkipsSequencing(t *testing.T) {
	svc, store := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	uploaded, err := svc.Upload(context.Background(), UploadInput{
		UserID:   userID,
		Filename: "photo.png",
		Body:     strings.NewReader("bytes"),
		Size:     5,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, ok := store.Get(uploaded.Key); !ok {
		t.Fatal("object not stored")
	}
}
