package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakhi-health/toxiscan/internal/application/knowledge"
	"github.com/sakhi-health/toxiscan/internal/application/resolver"
	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
	"github.com/sakhi-health/toxiscan/pkg/errors"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

// ChemicalHandler serves single-chemical resolution and hazard lookups.
type ChemicalHandler struct {
	resolver  *resolver.Resolver
	knowledge *knowledge.Client
	logger    logging.Logger
}

// NewChemicalHandler builds a handler over the resolution pipeline and the
// hazard knowledge client.
func NewChemicalHandler(res *resolver.Resolver, kn *knowledge.Client, logger logging.Logger) *ChemicalHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ChemicalHandler{resolver: res, knowledge: kn, logger: logger.Named("handler.chemical")}
}

// ResolveRequest is the body for POST /api/v1/chemicals/resolve.
type ResolveRequest struct {
	Name string `json:"name" binding:"required"`
}

// Resolve handles POST /api/v1/chemicals/resolve.  An unresolvable name is
// a 404, not a server error.
func (h *ChemicalHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if res == nil {
		respondError(c, errors.New(errors.ErrCodeChemicalNotResolved, "chemical could not be resolved").WithDetail(req.Name))
		return
	}

	c.JSON(http.StatusOK, res)
}

// Hazard handles GET /api/v1/chemicals/:cas/hazard.  The path parameter
// must be a valid CAS registry number.
func (h *ChemicalHandler) Hazard(c *gin.Context) {
	cas := c.Param("cas")
	if err := chemical.ValidateCAS(cas); err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.knowledge.HazardFor(c.Request.Context(), toxicity.Ingredient{Name: cas, CASNumber: cas})
	if err != nil {
		respondError(c, err)
		return
	}
	if rec == nil {
		respondError(c, errors.NotFound("no hazard record for chemical").WithDetail(cas))
		return
	}

	c.JSON(http.StatusOK, rec)
}
