package server

import (
	"errors"
	"net/http"

	paymentdomain "github.com/castbooklabs/castbook/internal/payment/domain"
	pricingdomain "github.com/castbooklabs/castbook/internal/pricing/domain"
	"github.com/gin-gonic/gin"
)

var errInvalidRequest = errors.New("invalid_request")

func invalidRequestError() error { return errInvalidRequest }

// AbortWithError maps domain sentinels onto status classes. Unknown failures
// collapse to a generic internal error so nothing leaks past the boundary.
func AbortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, pricingdomain.ErrInvalidTalent),
		errors.Is(err, pricingdomain.ErrInvalidPrice),
		errors.Is(err, pricingdomain.ErrInvalidVersion),
		errors.Is(err, pricingdomain.ErrUnsupportedCurrency),
		errors.Is(err, pricingdomain.ErrTalentNotFound):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, pricingdomain.ErrPricingNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, pricingdomain.ErrVersionConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error": "pricing was updated by another user, please refresh",
		})

	case errors.Is(err, pricingdomain.ErrPricingExists):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, paymentdomain.ErrProviderRejected),
		errors.Is(err, paymentdomain.ErrProviderUnavailable),
		errors.Is(err, paymentdomain.ErrNotConfigured):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "payment provider error"})

	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
