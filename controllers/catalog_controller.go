package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MenteSanaGo/models"
)

// CatalogController 目录数据接口
type CatalogController struct{}

// GetCatalogs 返回心情、情绪和认知扭曲目录
func (cc *CatalogController) GetCatalogs(c *gin.Context) {
	c.JSON(http.StatusOK, models.CatalogsResponse{
		Moods:       models.Moods,
		Emotions:    models.Emotions,
		Distortions: models.Distortions,
	})
}
