// internal/handlers/job/job_handler.go
package job

import (
	"crm-service/internal/domain/job"
	"crm-service/internal/pkg/request"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/job"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Job not found"

type JobHandler struct {
	jobService *service.JobService
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	var filters job.JobListFilters
	if err := request.BindQuery(c, &filters); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.jobService.ListJobs(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req job.CreateJobRequest
	if err := request.BindJSON(c, &req, "Invalid job data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.jobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req job.UpdateJobRequest
	if err := request.BindJSON(c, &req, "Invalid update data"); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.jobService.UpdateJob(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := request.ID(c, "id", msgNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
