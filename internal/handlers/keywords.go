package handlers

import (
	"net/http"
	"time"

	"redditradar/internal/db"
	"redditradar/internal/models"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
)

const activeKeywordsCacheKey = "keywords:active"

type KeywordHandler struct{}

func NewKeywordHandler() *KeywordHandler {
	return &KeywordHandler{}
}

func (h *KeywordHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := db.DB.Model(&models.Keyword{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("phrase LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var keywords []models.Keyword
	query.Order("phrase ASC").Limit(p.PageSize).Offset(p.Offset()).Find(&keywords)

	Paginated(c, keywords, total, p)
}

// Active returns the phrases the crawler should currently search for. The
// crawler polls this between runs, so the list is cached briefly and
// invalidated on every keyword write.
func (h *KeywordHandler) Active(c *gin.Context) {
	if cached := utils.GetCache().Get(activeKeywordsCacheKey); cached != nil {
		if keywords, ok := cached.([]models.Keyword); ok {
			c.JSON(http.StatusOK, keywords)
			return
		}
	}

	var keywords []models.Keyword
	db.DB.Where("active = ?", true).Order("phrase ASC").Find(&keywords)
	if keywords == nil {
		keywords = []models.Keyword{}
	}

	utils.GetCache().Set(activeKeywordsCacheKey, keywords, time.Minute)
	c.JSON(http.StatusOK, keywords)
}

func (h *KeywordHandler) Get(c *gin.Context) {
	var keyword models.Keyword
	if err := db.DB.First(&keyword, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "keyword not found")
		return
	}
	c.JSON(http.StatusOK, keyword)
}

type keywordCreateRequest struct {
	Phrase      string `json:"phrase" binding:"required,max=255"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (h *KeywordHandler) Create(c *gin.Context) {
	var req keywordCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	var count int64
	db.DB.Model(&models.Keyword{}).Where("phrase = ?", req.Phrase).Count(&count)
	if count > 0 {
		FieldErrors(c, map[string]string{"phrase": "a keyword with that phrase already exists"})
		return
	}

	keyword := models.Keyword{
		Phrase:      req.Phrase,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		keyword.Active = *req.Active
	}

	if err := db.DB.Create(&keyword).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create keyword")
		return
	}

	utils.GetCache().Delete(activeKeywordsCacheKey)
	c.JSON(http.StatusCreated, keyword)
}

type keywordUpdateRequest struct {
	Phrase      *string `json:"phrase" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (h *KeywordHandler) Update(c *gin.Context) {
	var keyword models.Keyword
	if err := db.DB.First(&keyword, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "keyword not found")
		return
	}

	var req keywordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.Phrase != nil {
		var count int64
		db.DB.Model(&models.Keyword{}).
			Where("phrase = ? AND id <> ?", *req.Phrase, keyword.ID).Count(&count)
		if count > 0 {
			FieldErrors(c, map[string]string{"phrase": "a keyword with that phrase already exists"})
			return
		}
		keyword.Phrase = *req.Phrase
	}
	if req.Description != nil {
		keyword.Description = *req.Description
	}
	if req.Active != nil {
		keyword.Active = *req.Active
	}

	if err := db.DB.Save(&keyword).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update keyword")
		return
	}

	utils.GetCache().Delete(activeKeywordsCacheKey)
	c.JSON(http.StatusOK, keyword)
}

func (h *KeywordHandler) Delete(c *gin.Context) {
	var keyword models.Keyword
	if err := db.DB.First(&keyword, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "keyword not found")
		return
	}

	db.DB.Delete(&keyword)
	utils.GetCache().Delete(activeKeywordsCacheKey)
	c.Status(http.StatusNoContent)
}
