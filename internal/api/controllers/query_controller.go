package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tralli/internal/models/request_models"
	"tralli/internal/services"
	"tralli/pkg/utils"
)

type QueryController struct {
	queryService services.QueryServiceInterface
}

func NewQueryController(queryService services.QueryServiceInterface) *QueryController {
	return &QueryController{
		queryService: queryService,
	}
}

func (q *QueryController) HandleQuery(c *gin.Context) {
	var req request_models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "city and query are required")
		return
	}

	filters := services.SecondaryFilters{}
	if req.Filters != nil {
		filters = services.SecondaryFilters{
			Category:  req.Filters.Category,
			MinRating: req.Filters.MinRating,
		}
	}

	result, err := q.queryService.Handle(c.Request.Context(), req.City, req.Query, filters)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "query handled successfully")
}
