// Package provision sequences remote storage calls into the course folder and file
// publishing workflows. Each workflow is safe to re-run: folders that already exist and
// files that are overwritten are accepted, and nothing is rolled back on failure.
package provision

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/coursecloud/service/internal/nextcloud"
	"github.com/coursecloud/service/internal/sanitize"
)

// DefaultRootFolder holds every course folder on the remote account.
const DefaultRootFolder = "CarpetaDelCurs"

// Workflow steps, used in StepError.
const (
	StepCreateRoot   = "create root folder"
	StepCreateCourse = "create course folder"
	StepShareFolder  = "share course folder"
	StepUpload       = "upload file"
	StepShareFile    = "share file"
	StepResolveID    = "resolve file id"
)

// ErrInvalidRemoteID is returned when the server answered with an id that is not a positive integer.
var ErrInvalidRemoteID = errors.New("remote file id is not a positive integer")

// Remote is the subset of the storage client the workflows need.
type Remote interface {
	CreateFolder(ctx context.Context, path string) nextcloud.Result
	Upload(ctx context.Context, path string, content []byte) nextcloud.Result
	ResolveID(ctx context.Context, path string) nextcloud.Result
	Share(ctx context.Context, path, principal string, perm nextcloud.Permission) nextcloud.Result
	ViewURL(id int64) string
}

// Outcome is what the host persists for a provisioned folder or file.
type Outcome struct {
	RemoteID int64  `json:"remoteId"`
	URL      string `json:"url"`
	Path     string `json:"path"`
}

// StepError reports the workflow step that failed and the client error behind it.
type StepError struct {
	Step    string
	Code    string
	Message string

	// bare renders only Message, matching how upload failures were always reported.
	bare bool
}

func (e *StepError) Error() string {
	if e.bare {
		return e.Message
	}
	return fmt.Sprintf("%s [%s]: %s", e.Step, e.Code, e.Message)
}

// Unwrap returns the client error behind the step.
func (e *StepError) Unwrap() error {
	return &nextcloud.ErrorDetail{Code: e.Code, Message: e.Message}
}

// IsTransient reports whether err wraps a client error caused by a transport failure,
// i.e. the server was never reached and a retry may succeed.
func IsTransient(err error) bool {
	var detail *nextcloud.ErrorDetail
	return errors.As(err, &detail) && detail.Transport()
}

// Orchestrator runs the provisioning workflows against a Remote.
type Orchestrator struct {
	remote Remote
	root   string
	logger *zap.Logger
}

// New creates an Orchestrator. An empty root selects DefaultRootFolder.
func New(remote Remote, root string, logger *zap.Logger) *Orchestrator {
	root = strings.Trim(root, "/")
	if root == "" {
		root = DefaultRootFolder
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{remote: remote, root: root, logger: logger}
}

// CourseFolderName derives the remote folder name of a course from its short name.
func CourseFolderName(shortName string) string {
	return strings.ReplaceAll(shortName, " ", "-")
}

// EnsureCourseFolder makes sure the root folder and the course folder exist, shares the
// course folder with principal and returns its remote id and view URL.
func (o *Orchestrator) EnsureCourseFolder(ctx context.Context, courseID int64, shortName, principal string) (Outcome, error) {
	folder := CourseFolderName(shortName)
	path := o.root + "/" + folder
	log := o.logger.With(zap.Int64("course_id", courseID), zap.String("path", path))

	if err := stepErr(StepCreateRoot, o.remote.CreateFolder(ctx, o.root)); err != nil {
		return Outcome{}, err
	}
	if err := stepErr(StepCreateCourse, o.remote.CreateFolder(ctx, path)); err != nil {
		return Outcome{}, err
	}
	log.Debug("course folder ensured")

	if err := stepErr(StepShareFolder, o.remote.Share(ctx, "/"+path, principal, nextcloud.PermissionAll)); err != nil {
		return Outcome{}, err
	}
	log.Debug("course folder shared", zap.String("principal", principal))

	id, err := o.resolveID(ctx, path)
	if err != nil {
		return Outcome{}, err
	}

	log.Info("course folder provisioned", zap.Int64("remote_id", id))
	return Outcome{RemoteID: id, URL: o.remote.ViewURL(id), Path: path}, nil
}

// UploadAndShare stores content as filename inside courseFolder, shares it with principal
// and returns its remote id and view URL.
func (o *Orchestrator) UploadAndShare(ctx context.Context, courseFolder, filename string, content []byte, principal string) (Outcome, error) {
	path := o.root + "/" + strings.Trim(courseFolder, "/") + "/" + sanitize.Filename(filename)
	log := o.logger.With(zap.String("path", path))

	if res := o.remote.Upload(ctx, path, content); !res.Success {
		err := stepErr(StepUpload, res)
		err.bare = true
		return Outcome{}, err
	}
	log.Debug("file uploaded", zap.Int("bytes", len(content)))

	if err := stepErr(StepShareFile, o.remote.Share(ctx, "/"+path, principal, nextcloud.PermissionAll)); err != nil {
		return Outcome{}, err
	}

	id, err := o.resolveID(ctx, path)
	if err != nil {
		return Outcome{}, err
	}

	log.Info("file published", zap.Int64("remote_id", id))
	return Outcome{RemoteID: id, URL: o.remote.ViewURL(id), Path: path}, nil
}

func (o *Orchestrator) resolveID(ctx context.Context, path string) (int64, error) {
	res := o.remote.ResolveID(ctx, path)
	if err := stepErr(StepResolveID, res); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(res.Data), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRemoteID, res.Data)
	}
	return id, nil
}

// stepErr converts a failed Result into a *StepError. It returns nil on success.
func stepErr(step string, res nextcloud.Result) *StepError {
	if res.Success {
		return nil
	}
	se := &StepError{Step: step}
	if res.Error != nil {
		se.Code = res.Error.Code
		se.Message = res.Error.Message
	}
	return se
}
