package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ocupalli/occupational-health/internal/core/domain"
	"github.com/ocupalli/occupational-health/internal/core/ports"
)

// RiskHandler serves the risk catalogue: categories and the risks within them.
type RiskHandler struct {
	categories ports.RiskCategoryService
	risks      ports.RiskService
}

func NewRiskHandler(categories ports.RiskCategoryService, risks ports.RiskService) *RiskHandler {
	return &RiskHandler{categories: categories, risks: risks}
}

// CreateCategory adds a risk category.
//
// @Summary      Create risk category
// @Tags         risk-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      riskCategoryRequest  true  "Category"
// @Success      201   {object}  successResponse{data=domain.RiskCategory}
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /risk-categories [post]
func (h *RiskHandler) CreateCategory(c echo.Context) error {
	var req riskCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := h.categories.Create(c.Request().Context(), toRiskCategoryInput(req))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, cat)
}

// ListCategories returns all categories ordered by name.
//
// @Summary      List risk categories with their risk counts
// @Tags         risk-categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=[]domain.RiskCategory}
// @Router       /risk-categories [get]
func (h *RiskHandler) ListCategories(c echo.Context) error {
	cats, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, cats)
}

// GetCategory returns one category with its risk count.
//
// @Summary      Get risk category
// @Tags         risk-categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  successResponse{data=domain.RiskCategory}
// @Failure      404  {object}  errorResponse
// @Router       /risk-categories/{id} [get]
func (h *RiskHandler) GetCategory(c echo.Context) error {
	cat, err := h.categories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, cat)
}

// UpdateCategory applies a partial update.
//
// @Summary      Update risk category
// @Tags         risk-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Category ID"
// @Param        body  body      updateRiskCategoryRequest  true  "Fields to change"
// @Success      200   {object}  successResponse{data=domain.RiskCategory}
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /risk-categories/{id} [put]
func (h *RiskHandler) UpdateCategory(c echo.Context) error {
	var req updateRiskCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := h.categories.Update(c.Request().Context(), c.Param("id"), toRiskCategoryUpdate(req))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, cat)
}

// DeleteCategory removes a category no risk references.
//
// @Summary      Delete risk category
// @Description  Fails with CANNOT_DELETE_DEPENDENCY while risks reference the category.
// @Tags         risk-categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /risk-categories/{id} [delete]
func (h *RiskHandler) DeleteCategory(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return okMessage(c, "Categoria excluída com sucesso", nil)
}

// CreateRisk adds a risk to an existing category.
//
// @Summary      Create risk
// @Tags         risks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      riskRequest  true  "Risk"
// @Success      201   {object}  successResponse{data=domain.Risk}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /risks [post]
func (h *RiskHandler) CreateRisk(c echo.Context) error {
	var req riskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	risk, err := h.risks.Create(c.Request().Context(), toRiskInput(req))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, risk)
}

// ListRisks returns risks matching the query filters.
//
// @Summary      List risks
// @Tags         risks
// @Produce      json
// @Security     BearerAuth
// @Param        type        query     string  false  "Risk type"
// @Param        categoryId  query     string  false  "Category ID"
// @Param        isGlobal    query     bool    false  "Global catalogue only"
// @Param        active      query     bool    false  "Active flag"
// @Param        search      query     string  false  "Name or code contains"
// @Success      200  {object}  successResponse{data=[]domain.Risk}
// @Failure      400  {object}  errorResponse
// @Router       /risks [get]
func (h *RiskHandler) ListRisks(c echo.Context) error {
	isGlobal, err := optionalBool(c, "isGlobal")
	if err != nil {
		return err
	}
	active, err := optionalBool(c, "active")
	if err != nil {
		return err
	}

	risks, err := h.risks.List(c.Request().Context(), ports.RiskFilter{
		Type:       domain.RiskType(c.QueryParam("type")),
		CategoryID: c.QueryParam("categoryId"),
		IsGlobal:   isGlobal,
		Active:     active,
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, risks)
}

// GetRisk returns one risk.
//
// @Summary      Get risk
// @Tags         risks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Risk ID"
// @Success      200  {object}  successResponse{data=domain.Risk}
// @Failure      404  {object}  errorResponse
// @Router       /risks/{id} [get]
func (h *RiskHandler) GetRisk(c echo.Context) error {
	risk, err := h.risks.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, risk)
}

// UpdateRisk applies a partial update.
//
// @Summary      Update risk
// @Tags         risks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Risk ID"
// @Param        body  body      updateRiskRequest  true  "Fields to change"
// @Success      200   {object}  successResponse{data=domain.Risk}
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /risks/{id} [put]
func (h *RiskHandler) UpdateRisk(c echo.Context) error {
	var req updateRiskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	risk, err := h.risks.Update(c.Request().Context(), c.Param("id"), toRiskUpdate(req))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, risk)
}

// DeleteRisk deactivates a risk.
//
// @Summary      Deactivate risk
// @Tags         risks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Risk ID"
// @Success      200  {object}  successResponse{data=domain.Risk}
// @Failure      404  {object}  errorResponse
// @Router       /risks/{id} [delete]
func (h *RiskHandler) DeleteRisk(c echo.Context) error {
	risk, err := h.risks.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return okMessage(c, "Risco desativado com sucesso", risk)
}
