package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorePut(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root)
	site := "Gedung Ä"

	url, err := s.Put(context.Background(), ReportFolder(&site), "a.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if url != "/uploads/reports/Gedung_A/a.jpg" {
		t.Fatalf("url=%s", url)
	}
	got, err := os.ReadFile(filepath.Join(root, "reports", "Gedung_A", "a.jpg"))
	if err != nil || string(got) != "jpeg" {
		t.Fatalf("file=%q err=%v", got, err)
	}
}

func TestObjectURL(t *testing.T) {
	got := objectURL("https://files.example.com", "flux", "activities/a1/x.png")
	if got != "https://files.example.com/flux/activities/a1/x.png" {
		t.Fatalf("url=%s", got)
	}
}
