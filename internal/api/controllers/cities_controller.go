package controllers

import (
	"github.com/gin-gonic/gin"
	"tralli/internal/services"
	"tralli/pkg/utils"
)

type CitiesController struct {
	cityService services.CityServiceInterface
}

func NewCitiesController(cityService services.CityServiceInterface) *CitiesController {
	return &CitiesController{
		cityService: cityService,
	}
}

func (ctrl *CitiesController) ListSupportedCities(c *gin.Context) {
	utils.RespondSuccess(c, ctrl.cityService.ListSupportedCities(), "supported cities fetched successfully")
}
