// Package archive extracts WhatsApp transcripts from export containers.
//
// WhatsApp exports either a bare .txt transcript or a .zip container whose
// first entry is the transcript (plus any shared media files). This package
// turns both shapes into the single decoded string the parser expects.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoTextEntry is returned when a container holds no .txt entry.
	ErrNoTextEntry = errors.New("no text entry found in archive")
	// ErrEmptyContent is returned when the extracted transcript is empty.
	ErrEmptyContent = errors.New("extracted transcript is empty")
)

// exportPrefix is the literal WhatsApp puts in front of the chat name when
// naming an export file ("WhatsApp Chat - Alice.zip").
const exportPrefix = "WhatsApp Chat - "

// Extraction is a decoded transcript together with the name of the archive
// entry it came from.
type Extraction struct {
	Text      string
	EntryName string
}

// ExtractTranscript opens a zip container and extracts the transcript text.
func ExtractTranscript(path string) (*Extraction, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer r.Close()

	return extract(&r.Reader)
}

// ExtractTranscriptFromReader extracts the transcript from an in-memory
// zip container.
func ExtractTranscriptFromReader(r io.ReaderAt, size int64) (*Extraction, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return extract(zr)
}

// extract selects the first non-directory .txt entry and decodes it.
func extract(zr *zip.Reader) (*Extraction, error) {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".txt") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", f.Name, err)
		}

		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyContent, f.Name)
		}

		return &Extraction{Text: string(data), EntryName: f.Name}, nil
	}

	return nil, ErrNoTextEntry
}

// ReadTranscript loads a transcript from either a bare .txt file or a .zip
// container, dispatching on the file suffix (case-insensitive).
func ReadTranscript(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		ex, err := ExtractTranscript(path)
		if err != nil {
			return "", err
		}
		return ex.Text, nil
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q (want .txt or .zip)", filepath.Ext(path))
	}
}

// DisplayName derives a human-friendly chat label from an export file name.
// "WhatsApp Chat - Alice.zip" becomes "Alice"; names without the export
// prefix fall back to the extension-stripped file name.
func DisplayName(fileName string) string {
	base := filepath.Base(fileName)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.HasPrefix(name, exportPrefix) {
		return strings.TrimPrefix(name, exportPrefix)
	}
	return name
}
