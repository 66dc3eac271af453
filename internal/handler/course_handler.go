// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"courseshare/internal/services"
	"courseshare/internal/transport/httpdto"
	apperrors "courseshare/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CourseHandler handles course CRUD and listing endpoints.
type CourseHandler struct {
	service *services.CourseService
}

func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// GetByID returns the course, or a null payload when the id is unknown.
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid course id"))
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not load course"))
		return
	}

	c.JSON(http.StatusOK, found)
}

// Thumbnail returns the full unfiltered course listing.
func (h *CourseHandler) Thumbnail(c *gin.Context) {
	courses, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not load courses"))
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) ByCategory(c *gin.Context) {
	courses, err := h.service.ListByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not load courses"))
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req httpdto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid userid"))
		return
	}

	result, err := h.service.Create(c.Request.Context(), services.CreateCourseInput{
		Title:        req.Title,
		Introduction: req.Introduction,
		Tasks:        req.Tasks,
		Pros:         req.Pros,
		Category:     req.Category,
		Beginner:     req.Beginner,
		Intermediate: req.Intermediate,
		Advance:      req.Advance,
		Link:         req.Link,
		UserID:       userID,
		Video:        req.Video,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("a course with this title already exists"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("could not save course"))
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse{
		Message: "Course saved successfully",
		Warning: result.OwnerLinkWarning,
	})
}

// MyCourses lists the courses a user authored.
func (h *CourseHandler) MyCourses(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id"))
		return
	}

	courses, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("user not found"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not load courses"))
		return
	}

	c.JSON(http.StatusOK, courses)
}

// Delete removes the course and echoes the deleted record.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid course id"))
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("course not found"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not delete course"))
		return
	}

	c.JSON(http.StatusOK, deleted)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid course id"))
		return
	}

	var req httpdto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, services.UpdateCourseInput{
		Title:        req.Title,
		Introduction: req.Introduction,
		Tasks:        req.Tasks,
		Pros:         req.Pros,
		Category:     req.Category,
		Beginner:     req.Beginner,
		Intermediate: req.Intermediate,
		Advance:      req.Advance,
		Link:         req.Link,
		Video:        req.Video,
		Liked:        req.Liked,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("course not found"))
			return
		}
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("a course with this title already exists"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not update course"))
		return
	}

	c.JSON(http.StatusOK, httpdto.UpdateCourseResponse{
		Message: "Course updated successfully",
		Course:  updated,
	})
}

func (h *CourseHandler) MostLiked(c *gin.Context) {
	courses, err := h.service.MostLiked(c.Request.Context(), services.DefaultTopCount)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not load courses"))
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) MostRecent(c *gin.Context) {
	courses, err := h.service.MostRecent(c.Request.Context(), services.DefaultTopCount)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not load courses"))
		return
	}

	c.JSON(http.StatusOK, courses)
}
