package provision

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coursecloud/service/internal/nextcloud"
)

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) CreateFolder(ctx context.Context, path string) nextcloud.Result {
	return m.Called(path).Get(0).(nextcloud.Result)
}

func (m *MockRemote) Upload(ctx context.Context, path string, content []byte) nextcloud.Result {
	return m.Called(path, content).Get(0).(nextcloud.Result)
}

func (m *MockRemote) ResolveID(ctx context.Context, path string) nextcloud.Result {
	return m.Called(path).Get(0).(nextcloud.Result)
}

func (m *MockRemote) Share(ctx context.Context, path, principal string, perm nextcloud.Permission) nextcloud.Result {
	return m.Called(path, principal, perm).Get(0).(nextcloud.Result)
}

func (m *MockRemote) ViewURL(id int64) string {
	return m.Called(id).String(0)
}

var ok = nextcloud.Succeeded("")

func TestEnsureCourseFolder(t *testing.T) {
	remote := new(MockRemote)
	remote.On("CreateFolder", "CarpetaDelCurs").Return(ok).Once()
	remote.On("CreateFolder", "CarpetaDelCurs/MAT-101-A").Return(ok).Once()
	remote.On("Share", "/CarpetaDelCurs/MAT-101-A", "teacher1", nextcloud.PermissionAll).Return(nextcloud.Succeeded("9")).Once()
	remote.On("ResolveID", "CarpetaDelCurs/MAT-101-A").Return(nextcloud.Succeeded("321")).Once()
	remote.On("ViewURL", int64(321)).Return("https://cloud.example.org/f/321").Once()

	o := New(remote, "", zap.NewNop())
	out, err := o.EnsureCourseFolder(context.Background(), 7, "MAT 101 A", "teacher1")

	require.NoError(t, err)
	assert.Equal(t, Outcome{RemoteID: 321, URL: "https://cloud.example.org/f/321", Path: "CarpetaDelCurs/MAT-101-A"}, out)
	remote.AssertExpectations(t)
}

func TestEnsureCourseFolder_RootFailureShortCircuits(t *testing.T) {
	remote := new(MockRemote)
	remote.On("CreateFolder", "CarpetaDelCurs").Return(nextcloud.Failed(nextcloud.CodeFolderStatus, "507 Insufficient Storage")).Once()

	o := New(remote, "", zap.NewNop())
	_, err := o.EnsureCourseFolder(context.Background(), 7, "MAT 101", "teacher1")

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StepCreateRoot, se.Step)
	assert.Equal(t, nextcloud.CodeFolderStatus, se.Code)
	assert.EqualError(t, err, "create root folder [0101]: 507 Insufficient Storage")
	assert.False(t, IsTransient(err))

	remote.AssertNumberOfCalls(t, "CreateFolder", 1)
	remote.AssertNotCalled(t, "Share", mock.Anything, mock.Anything, mock.Anything)
	remote.AssertNotCalled(t, "ResolveID", mock.Anything)
}

func TestEnsureCourseFolder_ShareFailure(t *testing.T) {
	remote := new(MockRemote)
	remote.On("CreateFolder", mock.Anything).Return(ok)
	remote.On("Share", "/CarpetaDelCurs/MAT", "teacher1", nextcloud.PermissionAll).
		Return(nextcloud.Failed(nextcloud.CodeShareBody, "unexpected response body"))

	o := New(remote, "", zap.NewNop())
	_, err := o.EnsureCourseFolder(context.Background(), 1, "MAT", "teacher1")

	assert.EqualError(t, err, "share course folder [0402]: unexpected response body")
	remote.AssertNotCalled(t, "ResolveID", mock.Anything)
}

func TestEnsureCourseFolder_TransportFailureIsTransient(t *testing.T) {
	remote := new(MockRemote)
	remote.On("CreateFolder", "Courses").Return(nextcloud.Failed(nextcloud.CodeFolderTransport, "connection refused"))

	o := New(remote, "/Courses/", zap.NewNop())
	_, err := o.EnsureCourseFolder(context.Background(), 1, "MAT", "teacher1")

	assert.True(t, IsTransient(err))
}

func TestStepError_UnwrapsClientError(t *testing.T) {
	remote := new(MockRemote)
	remote.On("CreateFolder", "CarpetaDelCurs").Return(nextcloud.Failed(nextcloud.CodeFolderTransport, "dial tcp: connection refused"))

	_, err := New(remote, "", zap.NewNop()).EnsureCourseFolder(context.Background(), 1, "MAT", "teacher1")

	var detail *nextcloud.ErrorDetail
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, nextcloud.CodeFolderTransport, detail.Code)
	assert.True(t, detail.Transport())
	assert.True(t, IsTransient(fmt.Errorf("hook: %w", err)))

	assert.False(t, IsTransient(&StepError{Step: StepShareFile, Code: nextcloud.CodeShareStatus}))
	assert.False(t, IsTransient(ErrInvalidRemoteID))
	assert.False(t, IsTransient(nil))
}

func TestEnsureCourseFolder_NonPositiveID(t *testing.T) {
	for _, data := range []string{"0", "-3", "abc", ""} {
		t.Run(data, func(t *testing.T) {
			remote := new(MockRemote)
			remote.On("CreateFolder", mock.Anything).Return(ok)
			remote.On("Share", mock.Anything, mock.Anything, mock.Anything).Return(ok)
			remote.On("ResolveID", mock.Anything).Return(nextcloud.Succeeded(data))

			o := New(remote, "", zap.NewNop())
			_, err := o.EnsureCourseFolder(context.Background(), 1, "MAT", "teacher1")

			assert.ErrorIs(t, err, ErrInvalidRemoteID)
			var se *StepError
			assert.False(t, errors.As(err, &se))
		})
	}
}

func TestUploadAndShare(t *testing.T) {
	content := []byte("%PDF-1.7")
	path := "CarpetaDelCurs/MAT-101/Fitxer-seu-amen.pdf"

	remote := new(MockRemote)
	remote.On("Upload", path, content).Return(ok).Once()
	remote.On("Share", "/"+path, "teacher1", nextcloud.PermissionAll).Return(nextcloud.Succeeded("55")).Once()
	remote.On("ResolveID", path).Return(nextcloud.Succeeded("9001")).Once()
	remote.On("ViewURL", int64(9001)).Return("https://cloud.example.org/f/9001").Once()

	o := New(remote, "", zap.NewNop())
	out, err := o.UploadAndShare(context.Background(), "MAT-101", "Fitxer ¿seu?, amè&n.pdf", content, "teacher1")

	require.NoError(t, err)
	assert.Equal(t, int64(9001), out.RemoteID)
	assert.Equal(t, "https://cloud.example.org/f/9001", out.URL)
	assert.Equal(t, path, out.Path)
	remote.AssertExpectations(t)
}

func TestUploadAndShare_UploadFailureCarriesMessageOnly(t *testing.T) {
	remote := new(MockRemote)
	remote.On("Upload", mock.Anything, mock.Anything).Return(nextcloud.Failed(nextcloud.CodeUploadStatus, "423 Locked"))

	o := New(remote, "", zap.NewNop())
	_, err := o.UploadAndShare(context.Background(), "MAT-101", "a.txt", []byte("x"), "teacher1")

	assert.EqualError(t, err, "423 Locked")
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, nextcloud.CodeUploadStatus, se.Code)
	assert.Equal(t, StepUpload, se.Step)
	remote.AssertNotCalled(t, "Share", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadAndShare_ResolveFailure(t *testing.T) {
	remote := new(MockRemote)
	remote.On("Upload", mock.Anything, mock.Anything).Return(ok)
	remote.On("Share", mock.Anything, mock.Anything, mock.Anything).Return(ok)
	remote.On("ResolveID", mock.Anything).Return(nextcloud.Failed(nextcloud.CodeListXML, "XML has errors"))

	o := New(remote, "", zap.NewNop())
	_, err := o.UploadAndShare(context.Background(), "MAT-101", "a.txt", nil, "teacher1")

	assert.EqualError(t, err, "resolve file id [0302]: XML has errors")
	remote.AssertNotCalled(t, "ViewURL", mock.Anything)
}

func TestUploadAndShare_URLUsesIDVerbatim(t *testing.T) {
	client := nextcloud.NewClient(nextcloud.Credentials{URL: "https://cloud.example.org/"})
	for _, id := range []int64{1, 42, 9007199254740993} {
		remote := new(MockRemote)
		remote.On("Upload", mock.Anything, mock.Anything).Return(ok)
		remote.On("Share", mock.Anything, mock.Anything, mock.Anything).Return(ok)
		remote.On("ResolveID", mock.Anything).Return(nextcloud.Succeeded(formatID(id)))
		remote.On("ViewURL", id).Return(client.ViewURL(id))

		out, err := New(remote, "", nil).UploadAndShare(context.Background(), "C", "f", nil, "t")

		require.NoError(t, err)
		assert.Equal(t, "https://cloud.example.org/f/"+formatID(id), out.URL)
	}
}

func TestCourseFolderName(t *testing.T) {
	assert.Equal(t, "MAT-101-Grup-A", CourseFolderName("MAT 101 Grup A"))
	assert.Equal(t, "Ciències", CourseFolderName("Ciències"))
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
