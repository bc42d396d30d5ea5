package api

import (
	"classhub/internal/entity"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 学籍记录只是带时间戳的属性包，处理器做纯粹的增删改查。

func (h *HTTPHandler) ListStudents(c *gin.Context) {
	var params entity.BaseParams
	if err := c.ShouldBindQuery(&params); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	students, meta, err := h.repo.ListStudents(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("failed to list students")
		InternalError(c, "failed to load students")
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students, "meta": meta})
}

func (h *HTTPHandler) CreateStudent(c *gin.Context) {
	var req entity.StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	student := &entity.DbStudent{
		Firstname:  strings.TrimSpace(req.Firstname),
		Lastname:   strings.TrimSpace(req.Lastname),
		Mail:       strings.TrimSpace(req.Mail),
		Doc:        strings.TrimSpace(req.Doc),
		GenderCode: req.GenderCode,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeIdentifierTaken, "student mail or document already registered")
			return
		}
		logrus.WithError(err).Error("failed to create student")
		InternalError(c, "failed to create student")
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *HTTPHandler) GetStudent(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	student, err := h.repo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeStudentNotFound, "student not found")
			return
		}
		logrus.WithError(err).WithField("student_id", id).Error("failed to load student")
		InternalError(c, "failed to load student")
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *HTTPHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	var req entity.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	updates := make(map[string]interface{})
	if req.Firstname != nil {
		updates["firstname"] = strings.TrimSpace(*req.Firstname)
	}
	if req.Lastname != nil {
		updates["lastname"] = strings.TrimSpace(*req.Lastname)
	}
	if req.Mail != nil {
		updates["mail"] = strings.TrimSpace(*req.Mail)
	}
	if req.Doc != nil {
		updates["doc"] = strings.TrimSpace(*req.Doc)
	}
	if req.GenderCode != nil {
		updates["gender_code"] = *req.GenderCode
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if len(updates) > 0 {
		if err := h.repo.UpdateStudent(ctx, id, updates); err != nil {
			logrus.WithError(err).WithField("student_id", id).Error("failed to update student")
			InternalError(c, "failed to update student")
			return
		}
	}

	student, err := h.repo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeStudentNotFound, "student not found")
			return
		}
		logrus.WithError(err).WithField("student_id", id).Error("failed to reload student")
		InternalError(c, "failed to load student")
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *HTTPHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteStudent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeStudentNotFound, "student not found")
			return
		}
		logrus.WithError(err).WithField("student_id", id).Error("failed to delete student")
		InternalError(c, "failed to delete student")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ListSubjects(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	subjects, err := h.repo.ListSubjects(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list subjects")
		InternalError(c, "failed to load subjects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

func (h *HTTPHandler) CreateSubject(c *gin.Context) {
	var subject entity.DbSubject
	if err := c.ShouldBindJSON(&subject); err != nil {
		InvalidPayload(c)
		return
	}
	subject.ID = 0

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateSubject(ctx, &subject); err != nil {
		logrus.WithError(err).Error("failed to create subject")
		InternalError(c, "failed to create subject")
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (h *HTTPHandler) ListLessons(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	lessons, err := h.repo.ListLessons(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list lessons")
		InternalError(c, "failed to load lessons")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

func (h *HTTPHandler) CreateLesson(c *gin.Context) {
	var lesson entity.DbLesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		InvalidPayload(c)
		return
	}
	lesson.ID = 0

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateLesson(ctx, &lesson); err != nil {
		logrus.WithError(err).Error("failed to create lesson")
		InternalError(c, "failed to create lesson")
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *HTTPHandler) ListGrades(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	grades, err := h.repo.ListGrades(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list grades")
		InternalError(c, "failed to load grades")
		return
	}
	c.JSON(http.StatusOK, gin.H{"grades": grades})
}

func (h *HTTPHandler) CreateGrade(c *gin.Context) {
	var grade entity.DbGrade
	if err := c.ShouldBindJSON(&grade); err != nil {
		InvalidPayload(c)
		return
	}
	grade.ID = 0

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateGrade(ctx, &grade); err != nil {
		logrus.WithError(err).Error("failed to create grade")
		InternalError(c, "failed to create grade")
		return
	}
	c.JSON(http.StatusCreated, grade)
}

func (h *HTTPHandler) ListResources(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resources, err := h.repo.ListResources(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list resources")
		InternalError(c, "failed to load resources")
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (h *HTTPHandler) GetResource(c *gin.Context) {
	id, ok := parseRecordID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resource, err := h.repo.GetResourceByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecordNotFound, "resource not found")
			return
		}
		logrus.WithError(err).WithField("resource_id", id).Error("failed to load resource")
		InternalError(c, "failed to load resource")
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *HTTPHandler) CreateResource(c *gin.Context) {
	var resource entity.DbResource
	if err := c.ShouldBindJSON(&resource); err != nil {
		InvalidPayload(c)
		return
	}
	resource.ID = 0

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateResource(ctx, &resource); err != nil {
		logrus.WithError(err).Error("failed to create resource")
		InternalError(c, "failed to create resource")
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func parseRecordID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid record id")
		return 0, false
	}
	return uint(id), true
}
