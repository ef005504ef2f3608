package results

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
	NoticeInfo    NoticeKind = "info"
)

// Notifier receives fire-and-forget user notices. Implementations must not block.
type Notifier interface {
	Notify(message string, kind NoticeKind)
}

// Downloader hands a finished document to whatever saves it for the user.
type Downloader interface {
	Download(data []byte, filename, mimeType string) error
}

type LogNotifier struct{}

func (LogNotifier) Notify(message string, kind NoticeKind) {
	log.Printf("[%s] %s", kind, message)
}

type discardNotifier struct{}

func (discardNotifier) Notify(string, NoticeKind) {}

// HTTPDownloader writes the document as an attachment response.
type HTTPDownloader struct {
	ResponseWriter http.ResponseWriter
}

func (d HTTPDownloader) Download(data []byte, filename, mimeType string) error {
	header := d.ResponseWriter.Header()
	header.Set("Content-Type", mimeType)
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	header.Set("Content-Length", strconv.Itoa(len(data)))
	d.ResponseWriter.WriteHeader(http.StatusOK)

	if _, err := d.ResponseWriter.Write(data); err != nil {
		return fmt.Errorf("error writing download: %w", err)
	}
	return nil
}

// FileDownloader saves documents into Dir.
type FileDownloader struct {
	Dir string
}

func (d FileDownloader) Download(data []byte, filename, _ string) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("error creating export dir: %w", err)
	}

	path := filepath.Join(d.Dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	log.Printf("saved %s", path)
	return nil
}
