package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/repositories"
)

// CompanyHandler backs the company picker: a super actor switches between
// tenants, everyone else sees only their own.
type CompanyHandler struct {
	repo repositories.CompanyRepository
}

func NewCompanyHandler(repo repositories.CompanyRepository) *CompanyHandler {
	return &CompanyHandler{repo: repo}
}

// @Summary      List companies
// @Description  Companies the caller may work in
// @Tags         Companies
// @Produce      json
// @Success      200  {array}  models.Company
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	actor := actorFromCtx(c)

	if authz.IsSuperRole(actor.RoleID) {
		companies, err := h.repo.List(c.Request.Context())
		if err != nil {
			log.Printf("[company][list][err] %v", err)
			writeCoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, companies)
		return
	}

	if actor.CompanyID == nil {
		c.JSON(http.StatusOK, []models.Company{})
		return
	}
	company, err := h.repo.FindByID(c.Request.Context(), *actor.CompanyID)
	if err != nil {
		log.Printf("[company][list][err] id=%d: %v", *actor.CompanyID, err)
		writeCoreError(c, err)
		return
	}
	if company == nil {
		c.JSON(http.StatusOK, []models.Company{})
		return
	}
	c.JSON(http.StatusOK, []models.Company{*company})
}
