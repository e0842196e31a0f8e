package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

// EnvironmentHandler serves company work environments and the jobs mapped to them.
type EnvironmentHandler struct {
	environments ports.EnvironmentService
	jobs         ports.JobService
}

func NewEnvironmentHandler(environments ports.EnvironmentService, jobs ports.JobService) *EnvironmentHandler {
	return &EnvironmentHandler{environments: environments, jobs: jobs}
}

// CreateEnvironment adds a work environment to a company.
//
// @Summary      Create environment
// @Tags         environments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      environmentRequest  true  "Environment"
// @Success      201   {object}  successResponse{data=domain.Environment}
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /environments [post]
func (h *EnvironmentHandler) CreateEnvironment(c echo.Context) error {
	var req environmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toEnvironmentInput(req)
	if err != nil {
		return err
	}
	env, err := h.environments.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, env)
}

// ListEnvironments returns a company's environments.
//
// @Summary      List a company's environments
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  query     string  true   "Company ID"
// @Param        active     query     bool    false  "Active flag"
// @Success      200  {object}  successResponse{data=[]domain.Environment}
// @Failure      400  {object}  errorResponse
// @Router       /environments [get]
func (h *EnvironmentHandler) ListEnvironments(c echo.Context) error {
	companyID := c.QueryParam("companyId")
	if companyID == "" {
		return domain.NewValidationError("companyId é obrigatório")
	}
	active, err := optionalBool(c, "active")
	if err != nil {
		return err
	}

	envs, err := h.environments.List(c.Request().Context(), companyID, active)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, envs)
}

// GetEnvironment returns one environment.
//
// @Summary      Get environment
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Environment ID"
// @Success      200  {object}  successResponse{data=domain.Environment}
// @Failure      404  {object}  errorResponse
// @Router       /environments/{id} [get]
func (h *EnvironmentHandler) GetEnvironment(c echo.Context) error {
	env, err := h.environments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, env)
}

// DeleteEnvironment removes an environment no job depends on.
//
// @Summary      Delete environment
// @Description  Fails with CANNOT_DELETE_DEPENDENCY while jobs use it as their main environment.
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Environment ID"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /environments/{id} [delete]
func (h *EnvironmentHandler) DeleteEnvironment(c echo.Context) error {
	if err := h.environments.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return okMessage(c, "Ambiente excluído com sucesso", nil)
}

// CreateJob maps a job to its main environment.
//
// @Summary      Create job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job"
// @Success      201   {object}  successResponse{data=domain.Job}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /jobs [post]
func (h *EnvironmentHandler) CreateJob(c echo.Context) error {
	var req jobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.Create(c.Request().Context(), toJobInput(req))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, job)
}

// GetJob returns one job.
//
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  successResponse{data=domain.Job}
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [get]
func (h *EnvironmentHandler) GetJob(c echo.Context) error {
	job, err := h.jobs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, job)
}

// AddJobEnvironment links an additional environment to a job.
//
// @Summary      Link environment to job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Job ID"
// @Param        body  body      addEnvironmentRequest  true  "Environment"
// @Success      200   {object}  successResponse{data=domain.Job}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /jobs/{id}/environments [post]
func (h *EnvironmentHandler) AddJobEnvironment(c echo.Context) error {
	var req addEnvironmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.AddEnvironment(c.Request().Context(), c.Param("id"), req.EnvironmentID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, job)
}
