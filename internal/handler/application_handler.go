package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/middleware"
	"github.com/tradingconf/registration/internal/service"
)

// formOverhead is the room left for non-file form fields on top of the resume limit.
const formOverhead = 1 << 20

// ApplicationHandler handles application-related HTTP requests.
type ApplicationHandler struct {
	applicationService ApplicationServiceInterface
	maxResumeBytes     int64
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService ApplicationServiceInterface, maxResumeBytes int64) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService, maxResumeBytes: maxResumeBytes}
}

// Submit handles POST /application.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	if !strings.Contains(strings.ToLower(c.ContentType()), "multipart/form-data") {
		BadRequest(c, "Resume file is required (submit as multipart/form-data).")
		return
	}

	if h.maxResumeBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxResumeBytes+formOverhead)
	}

	var req ApplicationRequest
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			BadRequest(c, "Resume file is too large.")
			return
		}
		if req.Resume == nil && isMissingFile(c) {
			BadRequest(c, "Missing resume file.")
			return
		}
		BadRequest(c, "Missing required application fields.")
		return
	}

	if req.Resume == nil {
		BadRequest(c, "Missing resume file.")
		return
	}

	form, ok := buildForm(req)
	if !ok {
		BadRequest(c, "Missing required application fields.")
		return
	}

	data, err := readResume(req)
	if err != nil {
		BadRequest(c, "Invalid form data.")
		return
	}

	result, err := h.applicationService.Submit(c.Request.Context(), id, form, domain.Resume{
		Filename: req.Resume.Filename,
		Data:     data,
	})
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ApplicationResponse{
		OK:         true,
		ID:         result.ApplicationID,
		ResumePath: result.ResumePath,
		TeamID:     result.TeamID,
	})
}

// Info handles GET /application-info.
func (h *ApplicationHandler) Info(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	submitted, err := h.applicationService.Status(c.Request.Context(), id.UserID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ApplicationInfoResponse{Submitted: submitted})
}

func buildForm(req ApplicationRequest) (service.ApplicationForm, bool) {
	form := service.ApplicationForm{
		School:        strings.TrimSpace(req.School),
		Major:         strings.TrimSpace(req.Major),
		GradYear:      strings.TrimSpace(req.GradYear),
		HowDidYouHear: strings.TrimSpace(req.HowDidYouHear),
		Teammates:     parseTeammates(req.Teammates),
	}
	if form.School == "" || form.Major == "" || form.GradYear == "" || form.HowDidYouHear == "" {
		return form, false
	}

	travel, ok := parseBool(req.TravelReimbursement)
	if !ok {
		return form, false
	}
	trading, ok := parseBool(req.TradingExperience)
	if !ok {
		return form, false
	}
	form.TravelReimbursement = travel
	form.TradingExperience = trading
	return form, true
}

func readResume(req ApplicationRequest) ([]byte, error) {
	f, err := req.Resume.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func isMissingFile(c *gin.Context) bool {
	_, err := c.FormFile("resume")
	return errors.Is(err, http.ErrMissingFile)
}

// caller returns the authenticated identity, answering 401 when absent.
func caller(c *gin.Context) (domain.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.UserID == "" {
		Unauthorized(c, "Unauthorized.")
		return domain.Identity{}, false
	}
	return id, true
}
