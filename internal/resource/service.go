package resource

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/coursecloud/service/internal/provision"
)

// Store persists resources. *Repository is the Postgres implementation.
type Store interface {
	Create(ctx context.Context, res *Resource) error
	GetByID(ctx context.Context, id int64) (*Resource, error)
	GetByIDNumber(ctx context.Context, courseID int64, idNumber string) (*Resource, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*Resource, error)
	Update(ctx context.Context, res *Resource) error
	Delete(ctx context.Context, id int64) error
}

// Publisher runs the remote storage workflows. *provision.Orchestrator implements it.
type Publisher interface {
	EnsureCourseFolder(ctx context.Context, courseID int64, shortName, principal string) (provision.Outcome, error)
	UploadAndShare(ctx context.Context, courseFolder, filename string, content []byte, principal string) (provision.Outcome, error)
}

// Options are the feature switches of the service.
type Options struct {
	RestrictDomain bool
	Domain         string
	AutoCreate     bool

	// Attempts and RetryDelay control retries of course provisioning on transport failures.
	Attempts   uint
	RetryDelay time.Duration
}

// LinkInput describes a resource pointing at an existing remote file or folder.
type LinkInput struct {
	CourseID int64  `json:"courseId"`
	Name     string `json:"name"`
	Intro    string `json:"intro"`
	Type     Type   `json:"type"`
	URL      string `json:"url"`
}

// UploadInput describes a file to publish and link.
type UploadInput struct {
	Course   Course
	Name     string
	Intro    string
	Filename string
	Content  []byte
}

// UpdateInput holds the editable fields. Nil fields are left unchanged.
type UpdateInput struct {
	Name  *string `json:"name"`
	Intro *string `json:"intro"`
}

// Service contains the business logic for course resources.
type Service struct {
	store     Store
	publisher Publisher
	opts      Options
	logger    *zap.Logger

	// provisioning collapses concurrent hooks for the same course.
	provisioning singleflight.Group
}

// NewService creates a new resource Service.
func NewService(store Store, publisher Publisher, opts Options, logger *zap.Logger) *Service {
	if opts.Attempts == 0 {
		opts.Attempts = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, publisher: publisher, opts: opts, logger: logger}
}

// ProvisionCourse ensures the remote folder of a new course exists and is shared with
// principal, then records it as a folder resource. Running it again for the same course
// returns the existing record. Concurrent calls for the same course share one run, which
// is detached from the callers' cancellation so one dropped request cannot fail the others.
func (s *Service) ProvisionCourse(ctx context.Context, course Course, principal string) (*Resource, error) {
	key := strconv.FormatInt(course.ID, 10) + "/" + principal
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.provisioning.Do(key, func() (interface{}, error) {
		return s.provisionCourse(shared, course, principal)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Resource), nil
}

func (s *Service) provisionCourse(ctx context.Context, course Course, principal string) (*Resource, error) {
	log := s.logger.With(zap.Int64("course_id", course.ID), zap.String("principal", principal))

	var out provision.Outcome
	err := retry.Do(
		func() error {
			var err error
			out, err = s.publisher.EnsureCourseFolder(ctx, course.ID, course.ShortName, principal)
			return err
		},
		retry.Attempts(s.opts.Attempts),
		retry.Delay(s.opts.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(provision.IsTransient),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("retrying course folder provisioning", zap.Uint("attempt", n+1), zap.Error(err))
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		log.Error("course folder provisioning failed", zap.Error(err))
		return nil, err
	}

	idNumber := FolderIDNumber(course.ID, out.RemoteID)
	existing, err := s.store.GetByIDNumber(ctx, course.ID, idNumber)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	remoteID := out.RemoteID
	res := &Resource{
		CourseID: course.ID,
		Name:     CourseFolderName,
		Type:     TypeFolder,
		URL:      out.URL,
		RemoteID: &remoteID,
		IDNumber: &idNumber,
	}
	if err := s.store.Create(ctx, res); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return s.store.GetByIDNumber(ctx, course.ID, idNumber)
		}
		return nil, err
	}

	log.Info("course folder recorded", zap.Int64("resource_id", res.ID), zap.Int64("remote_id", remoteID))
	return res, nil
}

// CreateLinked records a resource pointing at a URL the user copied from the storage server.
func (s *Service) CreateLinked(ctx context.Context, in LinkInput) (*Resource, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, invalid("unknown type %d", in.Type)
	}
	if in.URL == "" {
		return nil, invalid("url is required")
	}
	if s.opts.RestrictDomain && !strings.Contains(in.URL, s.opts.Domain) {
		return nil, ErrURLNotAllowed
	}

	res := &Resource{
		CourseID: in.CourseID,
		Name:     in.Name,
		Intro:    in.Intro,
		Type:     in.Type,
		URL:      in.URL,
	}
	if err := s.store.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateUploaded publishes a file into the course folder, shares it with principal and
// records it as a file resource.
func (s *Service) CreateUploaded(ctx context.Context, in UploadInput, principal string) (*Resource, error) {
	if strings.TrimSpace(in.Filename) == "" {
		return nil, invalid("file name is required")
	}
	if strings.TrimSpace(in.Course.ShortName) == "" {
		return nil, invalid("course short name is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = in.Filename
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	out, err := s.publisher.UploadAndShare(ctx, provision.CourseFolderName(in.Course.ShortName), in.Filename, in.Content, principal)
	if err != nil {
		s.logger.Error("file publishing failed",
			zap.Int64("course_id", in.Course.ID), zap.String("file", in.Filename), zap.Error(err))
		return nil, err
	}

	remoteID := out.RemoteID
	res := &Resource{
		CourseID: in.Course.ID,
		Name:     name,
		Intro:    in.Intro,
		Type:     TypeFile,
		URL:      out.URL,
		RemoteID: &remoteID,
	}
	if err := s.store.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("record published file: %w", err)
	}
	return res, nil
}

// AutoCreate handles the resource-created hook: when enabled it publishes the host's file
// and links it, otherwise it returns ErrAutoCreateDisabled.
func (s *Service) AutoCreate(ctx context.Context, in UploadInput, principal string) (*Resource, error) {
	if !s.opts.AutoCreate {
		return nil, ErrAutoCreateDisabled
	}
	return s.CreateUploaded(ctx, in, principal)
}

// Get returns a resource by id.
func (s *Service) Get(ctx context.Context, id int64) (*Resource, error) {
	return s.store.GetByID(ctx, id)
}

// ListByCourse returns the resources of a course.
func (s *Service) ListByCourse(ctx context.Context, courseID int64) ([]*Resource, error) {
	return s.store.ListByCourse(ctx, courseID)
}

// Update changes the name and intro of a resource.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Resource, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		res.Name = name
	}
	if in.Intro != nil {
		res.Intro = *in.Intro
	}
	if err := s.store.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes the record. The remote file or folder is kept.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// TypeName returns the display name of the resource type.
func (s *Service) TypeName(ctx context.Context, id int64) (string, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return res.TypeName(), nil
}

// RemoteFailure reports whether err came from the storage server rather than from local
// persistence, along with the storage error code when there is one.
func RemoteFailure(err error) (code string, ok bool) {
	var se *provision.StepError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", errors.Is(err, provision.ErrInvalidRemoteID)
}
