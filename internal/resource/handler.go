package resource

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/coursecloud/service/internal/middleware"
	"github.com/coursecloud/service/internal/response"
)

const (
	maxUploadBytes = 256 << 20
	maxMemoryBytes = 32 << 20
)

// Handler holds HTTP handlers for resource endpoints and host hooks.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a new resource Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the handlers on r. Callers add authentication.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Post("/course-created", h.CourseCreated)
		r.Post("/resource-created", h.ResourceCreated)
	})
	r.Route("/courses/{courseID}/resources", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.CreateLinked)
		r.Post("/upload", h.Upload)
	})
	r.Route("/resources/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

type courseCreatedRequest struct {
	CourseID  int64  `json:"courseId"  example:"7"`
	ShortName string `json:"shortName" example:"MAT 101"`
}

type linkRequest struct {
	Name  string `json:"name"  example:"Syllabus"`
	Intro string `json:"intro" example:"<p>Read before the first session</p>"`
	Type  Type   `json:"type"  example:"0"`
	URL   string `json:"url"   example:"https://cloud.example.org/f/12"`
}

// CourseCreated godoc
//
//	@Summary		Course created hook
//	@Description	Creates and shares the remote folder of a new course and records it. A remote failure is reported with 202 so the host does not abort course creation.
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		courseCreatedRequest	true	"Course"
//	@Success		200		{object}	response.Envelope{data=Resource}
//	@Success		202		{object}	response.Envelope
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/events/course-created [post]
func (h *Handler) CourseCreated(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOf(w, r)
	if !ok {
		return
	}

	var req courseCreatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.CourseID <= 0 || req.ShortName == "" {
		response.BadRequest(w, "courseId and shortName are required")
		return
	}

	res, err := h.svc.ProvisionCourse(r.Context(), Course{ID: req.CourseID, ShortName: req.ShortName}, principal)
	if err != nil {
		if code, remote := RemoteFailure(err); remote {
			response.Accepted(w, nil, code, err.Error())
			return
		}
		h.fail(w, err)
		return
	}
	response.OK(w, res)
}

// ResourceCreated godoc
//
//	@Summary		Resource created hook
//	@Description	Publishes a file the host stored in a course and links it, when automatic creation is enabled.
//	@Tags			events
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			courseId	formData	int		true	"Course id"
//	@Param			shortName	formData	string	true	"Course short name"
//	@Param			name		formData	string	false	"Resource name"
//	@Param			intro		formData	string	false	"Resource description"
//	@Param			file		formData	file	true	"File content"
//	@Success		201			{object}	response.Envelope{data=Resource}
//	@Success		202			{object}	response.Envelope
//	@Success		204
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/events/resource-created [post]
func (h *Handler) ResourceCreated(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOf(w, r)
	if !ok {
		return
	}

	in, err := readUpload(w, r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	in.Course.ID, err = strconv.ParseInt(r.FormValue("courseId"), 10, 64)
	if err != nil || in.Course.ID <= 0 {
		response.BadRequest(w, "invalid courseId")
		return
	}

	res, err := h.svc.AutoCreate(r.Context(), in, principal)
	switch {
	case errors.Is(err, ErrAutoCreateDisabled):
		response.NoContent(w)
	case err != nil:
		if code, remote := RemoteFailure(err); remote {
			response.Accepted(w, nil, code, err.Error())
			return
		}
		h.fail(w, err)
	default:
		response.Created(w, res)
	}
}

// List godoc
//
//	@Summary		List course resources
//	@Tags			resources
//	@Produce		json
//	@Security		BearerAuth
//	@Param			courseID	path		int	true	"Course id"
//	@Success		200			{object}	response.Envelope{data=[]Resource}
//	@Failure		400			{object}	response.Envelope
//	@Failure		401			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/courses/{courseID}/resources [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	courseID, ok := idParam(w, r, "courseID")
	if !ok {
		return
	}
	list, err := h.svc.ListByCourse(r.Context(), courseID)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, list)
}

// CreateLinked godoc
//
//	@Summary		Link an existing remote file or folder
//	@Description	Records a resource pointing at a URL copied from the storage server. When domain restriction is on the URL must contain the configured domain.
//	@Tags			resources
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			courseID	path		int			true	"Course id"
//	@Param			request		body		linkRequest	true	"Resource"
//	@Success		201			{object}	response.Envelope{data=Resource}
//	@Failure		400			{object}	response.Envelope
//	@Failure		401			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/courses/{courseID}/resources [post]
func (h *Handler) CreateLinked(w http.ResponseWriter, r *http.Request) {
	courseID, ok := idParam(w, r, "courseID")
	if !ok {
		return
	}
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	res, err := h.svc.CreateLinked(r.Context(), LinkInput{
		CourseID: courseID,
		Name:     req.Name,
		Intro:    req.Intro,
		Type:     req.Type,
		URL:      req.URL,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	response.Created(w, res)
}

// Upload godoc
//
//	@Summary		Upload a file and link it
//	@Description	Uploads the file into the course folder, shares it with the caller and records the resource.
//	@Tags			resources
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			courseID	path		int		true	"Course id"
//	@Param			shortName	formData	string	true	"Course short name"
//	@Param			name		formData	string	false	"Resource name, defaults to the file name"
//	@Param			intro		formData	string	false	"Resource description"
//	@Param			file		formData	file	true	"File content"
//	@Success		201			{object}	response.Envelope{data=Resource}
//	@Failure		400			{object}	response.Envelope
//	@Failure		401			{object}	response.Envelope
//	@Failure		502			{object}	response.Envelope
//	@Router			/courses/{courseID}/resources/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOf(w, r)
	if !ok {
		return
	}
	courseID, ok := idParam(w, r, "courseID")
	if !ok {
		return
	}

	in, err := readUpload(w, r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	in.Course.ID = courseID

	res, err := h.svc.CreateUploaded(r.Context(), in, principal)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.Created(w, res)
}

// Get godoc
//
//	@Summary	Get a resource
//	@Tags		resources
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Resource id"
//	@Success	200	{object}	response.Envelope{data=Resource}
//	@Failure	404	{object}	response.Envelope
//	@Router		/resources/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	res, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, res)
}

// Update godoc
//
//	@Summary	Rename a resource or change its description
//	@Tags		resources
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int			true	"Resource id"
//	@Param		request	body		UpdateInput	true	"Fields to change"
//	@Success	200		{object}	response.Envelope{data=Resource}
//	@Failure	400		{object}	response.Envelope
//	@Failure	404		{object}	response.Envelope
//	@Router		/resources/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	res, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, res)
}

// Delete godoc
//
//	@Summary		Delete a resource
//	@Description	Removes the record only. The remote file or folder is kept.
//	@Tags			resources
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Resource id"
//	@Success		204
//	@Failure		404	{object}	response.Envelope
//	@Router			/resources/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	response.NoContent(w)
}

// fail maps service errors to responses.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	if code, remote := RemoteFailure(err); remote {
		response.BadGateway(w, code, err.Error())
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "resource not found")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrURLNotAllowed):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Conflict(w, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		response.InternalError(w)
	}
}

func principalOf(w http.ResponseWriter, r *http.Request) (string, bool) {
	p := middleware.Principal(r.Context())
	if p == "" {
		response.Unauthorized(w, "unauthorized")
		return "", false
	}
	return p, true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}

// readUpload parses a multipart body carrying a course short name and one file.
func readUpload(w http.ResponseWriter, r *http.Request) (UploadInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		return UploadInput{}, errors.New("invalid multipart body")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return UploadInput{}, errors.New("file is required")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return UploadInput{}, errors.New("could not read file")
	}

	return UploadInput{
		Course:   Course{ShortName: r.FormValue("shortName")},
		Name:     r.FormValue("name"),
		Intro:    r.FormValue("intro"),
		Filename: header.Filename,
		Content:  content,
	}, nil
}
