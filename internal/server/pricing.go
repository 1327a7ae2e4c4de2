package server

import (
	"net/http"
	"strings"

	pricingdomain "github.com/castbooklabs/castbook/internal/pricing/domain"
	"github.com/gin-gonic/gin"
)

// CreatePricing sets up first-time pricing for a talent, creating the
// provider product and tier prices before persisting the record.
func (s *Server) CreatePricing(c *gin.Context) {
	var req pricingdomain.CreatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.Create(c.Request.Context(), pricingdomain.CreatePricingRequest{
		TalentID:      strings.TrimSpace(req.TalentID),
		PersonalPrice: req.PersonalPrice,
		BusinessPrice: req.BusinessPrice,
		Currency:      strings.TrimSpace(req.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// UpdatePricing replaces a talent's tier prices under optimistic concurrency.
func (s *Server) UpdatePricing(c *gin.Context) {
	var req pricingdomain.UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.pricingSvc.Update(c.Request.Context(), pricingdomain.UpdatePricingRequest{
		TalentID:        strings.TrimSpace(req.TalentID),
		PersonalPrice:   req.PersonalPrice,
		BusinessPrice:   req.BusinessPrice,
		ChangeReason:    req.ChangeReason,
		ExpectedVersion: req.ExpectedVersion,
		Currency:        strings.TrimSpace(req.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPricing returns the current pricing record plus recent history.
func (s *Server) GetPricing(c *gin.Context) {
	talentID := strings.TrimSpace(c.Param("talentId"))
	resp, err := s.pricingSvc.Get(c.Request.Context(), talentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}
