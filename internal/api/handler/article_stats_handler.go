package handler

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ArticleStatsHandler struct {
	statsSvc  service.ArticleStatsService
	metricSvc service.ArticleMetricService
}

func NewArticleStatsHandler(statsSvc service.ArticleStatsService, metricSvc service.ArticleMetricService) *ArticleStatsHandler {
	return &ArticleStatsHandler{
		statsSvc:  statsSvc,
		metricSvc: metricSvc,
	}
}

// GetArticleStats 获取文章统计三元组
func (s *ArticleStatsHandler) GetArticleStats(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil || articleID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stats, err := s.statsSvc.GetArticleStats(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// IncrementViews 浏览数上报
func (s *ArticleStatsHandler) IncrementViews(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil || articleID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.statsSvc.IncrementViews(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetArticleMetrics 获取文章最近的日指标快照
func (s *ArticleStatsHandler) GetArticleMetrics(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil || articleID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit <= 0 || limit > 90 {
		limit = 30
	}

	metrics, err := s.metricSvc.GetArticleMetrics(c.Request.Context(), articleID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}
