package mailshell

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	// DefaultMaxFiles is the attachment count limit of a draft
	DefaultMaxFiles = 10
	// DefaultMaxSize is the per-file size limit in bytes
	DefaultMaxSize int64 = 25 * 1024 * 1024
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrTooManyFiles = errors.New("too many files")
	ErrUploadFailed = errors.New("upload failed")
)

// RejectionError explains why a batch of incoming files was refused
type RejectionError struct {
	Reason  error  // One of ErrFileTooLarge, ErrTooManyFiles, ErrUploadFailed
	Message string // User-facing message
}

func (e *RejectionError) Error() string {
	return e.Message
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

// IncomingFile is a file offered for attachment before validation
type IncomingFile struct {
	Name     string
	Size     int64
	MIMEType string
	Path     string
}

// ValidateIncoming accepts or rejects a batch of files as a whole.
// On success the returned slice is existing followed by the new attachments; neither input is modified.
func ValidateIncoming(existing []Attachment, incoming []IncomingFile, maxFiles int, maxSize int64) ([]Attachment, error) {
	for _, f := range incoming {
		if f.Name == "" || f.Size < 0 {
			return nil, &RejectionError{
				Reason:  ErrUploadFailed,
				Message: "File upload failed. Please try again.",
			}
		}
		if f.Size > maxSize {
			return nil, &RejectionError{
				Reason:  ErrFileTooLarge,
				Message: fmt.Sprintf("File is too large. Maximum size is %s.", FormatFileSize(maxSize)),
			}
		}
	}

	if len(existing)+len(incoming) > maxFiles {
		return nil, &RejectionError{
			Reason:  ErrTooManyFiles,
			Message: fmt.Sprintf("Cannot upload more than %d files.", maxFiles),
		}
	}

	accepted := make([]Attachment, 0, len(existing)+len(incoming))
	accepted = append(accepted, existing...)
	for _, f := range incoming {
		mimeType := f.MIMEType
		if mimeType == "" {
			mimeType = mimeTypeFor(f.Name)
		}
		accepted = append(accepted, Attachment{
			ID:       uuid.NewString(),
			Name:     f.Name,
			Size:     f.Size,
			MIMEType: mimeType,
			Path:     f.Path,
		})
	}

	return accepted, nil
}

// RemoveAttachment returns the attachments without the one carrying id
func RemoveAttachment(attachments []Attachment, id string) []Attachment {
	next := make([]Attachment, 0, len(attachments))
	for _, att := range attachments {
		if att.ID != id {
			next = append(next, att)
		}
	}
	return next
}

// StatFiles describes files on disk as incoming attachments
func StatFiles(paths []string) ([]IncomingFile, error) {
	files := make([]IncomingFile, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}

		files = append(files, IncomingFile{
			Name:     filepath.Base(p),
			Size:     info.Size(),
			MIMEType: mimeTypeFor(p),
			Path:     p,
		})
	}
	return files, nil
}

// FormatFileSize renders a byte count for display
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(bytes))
}

// FileIcon picks a display icon from the file extension
func FileIcon(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "📄"
	case ".doc", ".docx":
		return "📝"
	case ".xls", ".xlsx":
		return "📊"
	case ".ppt", ".pptx":
		return "📋"
	case ".jpg", ".jpeg", ".png", ".gif":
		return "🖼️"
	case ".zip", ".rar":
		return "🗜️"
	default:
		return "📎"
	}
}

func mimeTypeFor(name string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		return "application/octet-stream"
	}
	return t
}
