package storage

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedResume is returned when the sniffed content type is not accepted.
var ErrUnsupportedResume = errors.New("resume must be a PDF, DOC or DOCX file")

const maxSegmentLength = 120

var (
	unsafeRun      = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
	allowedResumes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
)

// DetectResumeType sniffs data and returns its MIME type if it is an accepted
// resume format.
func DetectResumeType(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	for _, allowed := range allowedResumes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w (detected %s)", ErrUnsupportedResume, mtype.String())
}

// SanitizeSegment keeps alphanumerics, dot, dash and underscore, replacing
// other runs with "_" and truncating to 120 characters.
func SanitizeSegment(name string) string {
	clean := unsafeRun.ReplaceAllString(name, "_")
	if len(clean) > maxSegmentLength {
		clean = clean[:maxSegmentLength]
	}
	if clean == "" {
		return "resume"
	}
	return clean
}

// ResumePath namespaces a resume under its owner and application.
func ResumePath(userID string, applicationID int64, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%d_%s", userID, applicationID, now.UnixMilli(), SanitizeSegment(filename))
}
