package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTestZip creates a zip file with the given entries (name -> content)
// in entry order.
func writeTestZip(t *testing.T, path string, entries [][2]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, entry := range entries {
		fw, err := w.Create(entry[0])
		if err != nil {
			t.Fatalf("Failed to create zip entry %s: %v", entry[0], err)
		}
		if _, err := fw.Write([]byte(entry[1])); err != nil {
			t.Fatalf("Failed to write zip entry %s: %v", entry[0], err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
}

func TestExtractTranscript(t *testing.T) {
	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "WhatsApp Chat - Alice.zip")
	writeTestZip(t, zipPath, [][2]string{
		{"_chat.txt", "[01/02/2024, 8:00:16 AM] Alice: Hi"},
		{"IMG-0001.jpg", "not really a jpeg"},
	})

	ex, err := ExtractTranscript(zipPath)
	if err != nil {
		t.Fatalf("ExtractTranscript failed: %v", err)
	}
	if ex.EntryName != "_chat.txt" {
		t.Errorf("Expected entry _chat.txt, got %s", ex.EntryName)
	}
	if ex.Text != "[01/02/2024, 8:00:16 AM] Alice: Hi" {
		t.Errorf("Unexpected transcript text: %q", ex.Text)
	}
}

func TestExtractTranscriptPicksFirstTxt(t *testing.T) {
	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "export.zip")
	writeTestZip(t, zipPath, [][2]string{
		{"media/", ""},
		{"readme.md", "not the transcript"},
		{"chat.TXT", "first"},
		{"other.txt", "second"},
	})

	ex, err := ExtractTranscript(zipPath)
	if err != nil {
		t.Fatalf("ExtractTranscript failed: %v", err)
	}
	// Suffix matching is case-insensitive and the first entry wins
	if ex.EntryName != "chat.TXT" || ex.Text != "first" {
		t.Errorf("Expected first .txt entry, got %s (%q)", ex.EntryName, ex.Text)
	}
}

func TestExtractTranscriptNoTextEntry(t *testing.T) {
	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "export.zip")
	writeTestZip(t, zipPath, [][2]string{
		{"IMG-0001.jpg", "bytes"},
	})

	_, err := ExtractTranscript(zipPath)
	if !errors.Is(err, ErrNoTextEntry) {
		t.Errorf("Expected ErrNoTextEntry, got %v", err)
	}
}

func TestExtractTranscriptEmptyContent(t *testing.T) {
	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "export.zip")
	writeTestZip(t, zipPath, [][2]string{
		{"chat.txt", ""},
	})

	_, err := ExtractTranscript(zipPath)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
}

func TestReadTranscriptDispatch(t *testing.T) {
	tmpDir := t.TempDir()

	txtPath := filepath.Join(tmpDir, "chat.TXT")
	if err := os.WriteFile(txtPath, []byte("hello"), 0o644); err != nil {
		t.Fatalf("Failed to write txt file: %v", err)
	}

	text, err := ReadTranscript(txtPath)
	if err != nil {
		t.Fatalf("ReadTranscript(.TXT) failed: %v", err)
	}
	if text != "hello" {
		t.Errorf("Expected %q, got %q", "hello", text)
	}

	zipPath := filepath.Join(tmpDir, "chat.ZIP")
	writeTestZip(t, zipPath, [][2]string{{"chat.txt", "from zip"}})

	text, err = ReadTranscript(zipPath)
	if err != nil {
		t.Fatalf("ReadTranscript(.ZIP) failed: %v", err)
	}
	if text != "from zip" {
		t.Errorf("Expected %q, got %q", "from zip", text)
	}

	if _, err := ReadTranscript(filepath.Join(tmpDir, "chat.pdf")); err == nil {
		t.Error("Expected error for unsupported suffix, got nil")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"WhatsApp Chat - Alice.zip", "Alice"},
		{"WhatsApp Chat - Eric Gao.txt", "Eric Gao"},
		{"/uploads/WhatsApp Chat - Alice.zip", "Alice"},
		{"family-group.zip", "family-group"},
		{"chat.txt", "chat"},
		{"noextension", "noextension"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.fileName); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}
