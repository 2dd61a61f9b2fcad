// Package resource manages the course resources that point at files and folders on the
// remote storage server, and the hooks that provision them.
package resource

import (
	"errors"
	"fmt"
	"time"
)

// Type tells whether a resource points at a file or a folder.
type Type int16

const (
	TypeFile   Type = 0
	TypeFolder Type = 1
)

// String returns the display name of the type.
func (t Type) String() string {
	if t == TypeFolder {
		return "Folder"
	}
	return "File"
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return t == TypeFile || t == TypeFolder
}

// CourseFolderName is the display name of the record created for each course folder.
const CourseFolderName = "Carpeta del Curs"

const maxNameLength = 255

// Resource is a course resource linked to remote storage.
type Resource struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	Name      string    `json:"name"`
	Intro     string    `json:"intro"`
	Type      Type      `json:"type"`
	URL       string    `json:"url"`
	RemoteID  *int64    `json:"remoteId,omitempty"`
	IDNumber  *string   `json:"idNumber,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TypeName returns the display name of the resource type.
func (r *Resource) TypeName() string {
	return r.Type.String()
}

// Course identifies the course a hook fired for.
type Course struct {
	ID        int64
	ShortName string
}

// FolderIDNumber is the idnumber of the record that links a course to its remote folder.
func FolderIDNumber(courseID, remoteID int64) string {
	return fmt.Sprintf("TEACHER_FOLDER_%d_%d", courseID, remoteID)
}

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when the idnumber is already taken.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrURLNotAllowed is returned when domain restriction is on and the URL points elsewhere.
	ErrURLNotAllowed = errors.New("url is not on the configured storage domain")

	// ErrAutoCreateDisabled is returned by AutoCreate when the feature is switched off.
	ErrAutoCreateDisabled = errors.New("automatic resource creation is disabled")

	// ErrInvalidInput wraps validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateName(name string) error {
	if name == "" {
		return invalid("name is required")
	}
	if len([]rune(name)) > maxNameLength {
		return invalid("name must be at most %d characters", maxNameLength)
	}
	return nil
}
