package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_Upload(t *testing.T) {
	var (
		gotPath, gotType, gotUpsert, gotKey string
		gotBody                             []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.EscapedPath()
		gotType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotKey = r.Header.Get("apikey")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"Resumes/u1/file.pdf"}`))
	}))
	defer srv.Close()

	b, err := NewBucket(Config{URL: srv.URL, ServiceKey: "svc", Bucket: "Resumes"})
	require.NoError(t, err)

	err = b.Upload(context.Background(), "u1/7_1700000000000_my_cv.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/Resumes/u1/7_1700000000000_my_cv.pdf", gotPath)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "svc", gotKey)
	assert.Equal(t, "%PDF-1.4", string(gotBody))
}

func TestBucket_UploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":"404","error":"Bucket not found","message":"Bucket not found"}`))
	}))
	defer srv.Close()

	b, err := NewBucket(Config{URL: srv.URL, ServiceKey: "svc", Bucket: "Missing"})
	require.NoError(t, err)

	err = b.Upload(context.Background(), "u1/file.pdf", []byte("x"), "application/pdf")
	require.Error(t, err)
	assert.Equal(t, "Bucket not found", err.Error())
}

func TestBucket_Remove(t *testing.T) {
	var body map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/Resumes", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	b, err := NewBucket(Config{URL: srv.URL, ServiceKey: "svc", Bucket: "Resumes"})
	require.NoError(t, err)

	require.NoError(t, b.Remove(context.Background(), "u1/a.pdf"))
	assert.Equal(t, []string{"u1/a.pdf"}, body["prefixes"])
}

func TestNewBucket_Validation(t *testing.T) {
	_, err := NewBucket(Config{ServiceKey: "svc", Bucket: "b"})
	assert.Error(t, err)
	_, err = NewBucket(Config{URL: "http://x", Bucket: "b"})
	assert.Error(t, err)
	_, err = NewBucket(Config{URL: "http://x", ServiceKey: "svc"})
	assert.Error(t, err)
}

func TestDetectResumeType(t *testing.T) {
	mtype, err := DetectResumeType([]byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mtype)

	_, err = DetectResumeType([]byte("just some plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedResume)
	assert.Contains(t, err.Error(), "text/plain")
}

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"My Resume (final).pdf", "My_Resume_final_.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"", "resume"},
		{strings.Repeat("a", 200), strings.Repeat("a", 120)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeSegment(tt.in), tt.in)
	}
}

func TestResumePath(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "user-1/42_1700000000123_cv_2024.pdf", ResumePath("user-1", 42, "cv 2024.pdf", now))
}
