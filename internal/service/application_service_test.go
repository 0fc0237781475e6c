package service

import (
	"bytes"
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/logger"
)

var (
	insertApplication  = regexp.QuoteMeta(`INSERT INTO "Applications"`)
	updateResumePath   = regexp.QuoteMeta(`UPDATE "Applications" SET resume_path = $1 WHERE application_id = $2`)
	selectSubmitted    = regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM "Applications"`)
	pdfResume          = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
	fixedSubmitTime    = time.UnixMilli(1700000000000)
	expectedResumePath = "alice/11_1700000000000_my_resume.pdf"
)

type fakeBlobStore struct {
	mu        sync.Mutex
	uploads   map[string]string
	removed   []string
	uploadErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string]string)}
}

func (f *fakeBlobStore) Upload(_ context.Context, path string, _ []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads[path] = contentType
	return nil
}

func (f *fakeBlobStore) Remove(_ context.Context, paths ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, paths...)
	return nil
}

func newTestApplicationService(t *testing.T, blobs BlobStore) (*ApplicationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	svc := NewApplicationService(db, blobs, 5<<20, logger.Nop())
	svc.now = func() time.Time { return fixedSubmitTime }
	return svc, mock
}

var (
	testIdentity = domain.Identity{UserID: "alice", Email: "alice@example.com", FullName: "Alice Adams"}
	testForm     = ApplicationForm{
		School:              "State University",
		Major:               "Finance",
		GradYear:            "2027",
		HowDidYouHear:       "Friend",
		TravelReimbursement: true,
	}
	testResume = domain.Resume{Filename: "my resume.pdf", Data: pdfResume}
)

func TestApplicationService_Submit_CreatesTeam(t *testing.T) {
	blobs := newFakeBlobStore()
	svc, mock := newTestApplicationService(t, blobs)

	mock.ExpectBegin()
	mock.ExpectQuery(selectUserForUpdate).WithArgs("alice").WillReturnRows(userRow("alice", nil))
	mock.ExpectQuery(insertApplication).
		WithArgs("alice", "alice@example.com", "Alice Adams", "State University", "Finance", "2027", "Friend", true, false, "{}").
		WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(int64(11)))
	mock.ExpectExec(updateResumePath).WithArgs(expectedResumePath, int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(insertTeam).WithArgs(`{"alice"}`).WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow(int64(21)))
	mock.ExpectExec(updateUserTeam).WithArgs(int64(21), "alice").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Submit(context.Background(), testIdentity, testForm, testResume)
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.ApplicationID)
	assert.Equal(t, expectedResumePath, result.ResumePath)
	assert.Equal(t, int64(21), result.TeamID)
	assert.Equal(t, "application/pdf", blobs.uploads[expectedResumePath])
	assert.Empty(t, blobs.removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_Submit_KeepsExistingTeamAndInvitesTeammates(t *testing.T) {
	blobs := newFakeBlobStore()
	svc, mock := newTestApplicationService(t, blobs)

	form := testForm
	form.Teammates = []string{"alice", "bob", "carol", "ghost"}

	mock.ExpectBegin()
	mock.ExpectQuery(selectUserForUpdate).WithArgs("alice").WillReturnRows(userRow("alice", int64(7)))
	mock.ExpectQuery(insertApplication).WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(int64(11)))
	mock.ExpectExec(updateResumePath).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectTeamForUpdate).WithArgs(int64(7)).WillReturnRows(teamRow(7, "{alice,carol}"))
	mock.ExpectQuery(selectUsersByIDs).WithArgs(`{"bob","carol","ghost"}`).WillReturnRows(
		sqlmock.NewRows(userColumns).
			AddRow("bob", "bob@example.com", "Bob", nil, "authenticated").
			AddRow("carol", "carol@example.com", "Carol", int64(7), "authenticated"),
	)
	mock.ExpectQuery(selectPendingInvite).WithArgs(int64(7), "bob", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(insertInvite).WithArgs("alice", "bob", int64(7), "pending").
		WillReturnRows(sqlmock.NewRows([]string{"invite_id"}).AddRow(inviteID))
	mock.ExpectCommit()

	result, err := svc.Submit(context.Background(), testIdentity, form, testResume)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.TeamID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_Submit_AlreadySubmitted(t *testing.T) {
	blobs := newFakeBlobStore()
	svc, mock := newTestApplicationService(t, blobs)

	mock.ExpectBegin()
	mock.ExpectQuery(selectUserForUpdate).WillReturnRows(userRow("alice", int64(7)))
	mock.ExpectQuery(insertApplication).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	result, err := svc.Submit(context.Background(), testIdentity, testForm, testResume)
	assert.ErrorIs(t, err, ErrApplicationExists)
	assert.Nil(t, result)
	assert.Empty(t, blobs.uploads)
	assert.Empty(t, blobs.removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_Submit_RemovesResumeWhenTransactionFails(t *testing.T) {
	blobs := newFakeBlobStore()
	svc, mock := newTestApplicationService(t, blobs)

	mock.ExpectBegin()
	mock.ExpectQuery(selectUserForUpdate).WillReturnRows(userRow("alice", nil))
	mock.ExpectQuery(insertApplication).WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(int64(11)))
	mock.ExpectExec(updateResumePath).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(insertTeam).WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow(int64(21)))
	mock.ExpectExec(updateUserTeam).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	result, err := svc.Submit(context.Background(), testIdentity, testForm, testResume)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, result)
	assert.Equal(t, []string{expectedResumePath}, blobs.removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_Submit_RemovesResumeWhenCommitFails(t *testing.T) {
	blobs := newFakeBlobStore()
	svc, mock := newTestApplicationService(t, blobs)

	mock.ExpectBegin()
	mock.ExpectQuery(selectUserForUpdate).WillReturnRows(userRow("alice", int64(7)))
	mock.ExpectQuery(insertApplication).WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(int64(11)))
	mock.ExpectExec(updateResumePath).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(assert.AnError)

	_, err := svc.Submit(context.Background(), testIdentity, testForm, testResume)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{expectedResumePath}, blobs.removed)
}

func TestApplicationService_Submit_UploadFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.uploadErr = assert.AnError
	svc, mock := newTestApplicationService(t, blobs)

	mock.ExpectBegin()
	mock.ExpectQuery(selectUserForUpdate).WillReturnRows(userRow("alice", nil))
	mock.ExpectQuery(insertApplication).WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(int64(11)))
	mock.ExpectRollback()

	_, err := svc.Submit(context.Background(), testIdentity, testForm, testResume)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, blobs.removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_Submit_InvalidResume(t *testing.T) {
	tests := []struct {
		name    string
		resume  domain.Resume
		wantErr error
	}{
		{name: "missing", resume: domain.Resume{Filename: "cv.pdf"}, wantErr: ErrInvalidApplication},
		{name: "too large", resume: domain.Resume{Filename: "cv.pdf", Data: append(append([]byte{}, pdfResume...), bytes.Repeat([]byte{'a'}, 5<<20)...)}, wantErr: ErrResumeTooLarge},
		{name: "plain text", resume: domain.Resume{Filename: "cv.pdf", Data: []byte("just some text")}, wantErr: ErrUnsupportedResume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newTestApplicationService(t, newFakeBlobStore())

			result, err := svc.Submit(context.Background(), testIdentity, testForm, tt.resume)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApplicationService_Status(t *testing.T) {
	svc, mock := newTestApplicationService(t, newFakeBlobStore())

	mock.ExpectQuery(selectSubmitted).WithArgs("alice").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	submitted, err := svc.Status(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, submitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
