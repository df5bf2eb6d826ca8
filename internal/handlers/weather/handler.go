package weather

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d-melnyk/weather-lookup-api/internal/models"
	serviceWeather "github.com/d-melnyk/weather-lookup-api/internal/services/weather"
)

const timeoutDuration = 10 * time.Second

type lookupService interface {
	Lookup(ctx context.Context, city, country string) (models.WeatherData, error)
}

type lookupRequest struct {
	CityName    string `form:"cityName" binding:"required"`
	CountryName string `form:"countryName" binding:"required"`
}

type Handler struct {
	service lookupService
}

func NewHandler(svc lookupService) *Handler {
	return &Handler{service: svc}
}

// GetWeather
// @Summary Get current weather
// @Description Returns current weather for a city/country pair
// @Tags weather
// @Accept json
// @Produce json
// @Param cityName query string true "City name"
// @Param countryName query string true "Country name or code"
// @Success 200 {object} models.WeatherData
// @Failure 400
// @Failure 404
// @Failure 502
// @Failure 500
// @Router /api/weather [get]
func (h *Handler) GetWeather(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cityName and countryName are required"})
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	data, err := h.service.Lookup(ctxWithTimeout, req.CityName, req.CountryName)
	if err != nil {
		switch {
		case errors.Is(err, serviceWeather.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		case errors.Is(err, serviceWeather.ErrProviderUnavailable),
			errors.Is(err, serviceWeather.ErrMalformedResponse):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, data)
}
