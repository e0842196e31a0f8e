package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

const msgInvalidPayload = "Payload inválido"

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError(msgInvalidPayload)
	}
	return c.Validate(req)
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, successResponse{Status: "success", Data: data})
}

func okMessage(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, successResponse{Status: "success", Message: message, Data: data})
}

// --- Request → Service input ---

func toRiskCategoryInput(req riskCategoryRequest) ports.RiskCategoryInput {
	return ports.RiskCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
}

func toRiskCategoryUpdate(req updateRiskCategoryRequest) ports.RiskCategoryUpdate {
	return ports.RiskCategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
}

func toRiskInput(req riskRequest) ports.RiskInput {
	return ports.RiskInput{
		CategoryID:      req.CategoryID,
		Type:            domain.RiskType(req.Type),
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		SourceGenerator: req.SourceGenerator,
		HealthEffects:   req.HealthEffects,
		ControlMeasures: req.ControlMeasures,
		AllowsIntensity: req.AllowsIntensity,
		IsGlobal:        req.IsGlobal,
	}
}

func toRiskUpdate(req updateRiskRequest) ports.RiskUpdate {
	var riskType *domain.RiskType
	if req.Type != nil {
		t := domain.RiskType(*req.Type)
		riskType = &t
	}
	return ports.RiskUpdate{
		Type:            riskType,
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		SourceGenerator: req.SourceGenerator,
		HealthEffects:   req.HealthEffects,
		ControlMeasures: req.ControlMeasures,
		AllowsIntensity: req.AllowsIntensity,
		IsGlobal:        req.IsGlobal,
		Active:          req.Active,
	}
}

func toEnvironmentInput(req environmentRequest) (ports.EnvironmentInput, error) {
	in := ports.EnvironmentInput{
		CompanyID:           req.CompanyID,
		Name:                req.Name,
		Description:         req.Description,
		LocationType:        domain.EnvironmentLocationType(req.LocationType),
		RegisteredInESocial: req.RegisteredInESocial,
		PreviousESocialCode: req.PreviousESocialCode,
	}
	if req.ValidityStart != "" {
		t, err := parseDate(req.ValidityStart)
		if err != nil {
			return ports.EnvironmentInput{}, domain.NewValidationError("validityStart deve ser uma data válida")
		}
		in.ValidityStart = &t
	}
	return in, nil
}

func toJobInput(req jobRequest) ports.JobInput {
	return ports.JobInput{
		CompanyID:         req.CompanyID,
		Title:             req.Title,
		CBO:               req.CBO,
		MainEnvironmentID: req.MainEnvironmentID,
		EnvironmentIDs:    req.EnvironmentIDs,
		Notes:             req.Notes,
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// optionalBool reads a boolean query parameter; absent means nil.
func optionalBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(name + " deve ser true ou false")
	}
	return &v, nil
}
