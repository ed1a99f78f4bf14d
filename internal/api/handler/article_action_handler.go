package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ArticleActionHandler struct {
	actionSvc service.ArticleActionService
}

func NewArticleActionHandler(actionSvc service.ArticleActionService) *ArticleActionHandler {
	return &ArticleActionHandler{
		actionSvc: actionSvc,
	}
}

// LikeArticle 点赞/取消点赞文章
func (s *ArticleActionHandler) LikeArticle(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil || articleID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")
	var req dto.ArticleActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if req.Action == service.ActionPerform {
		err = s.actionSvc.LikeArticle(c.Request.Context(), userID, articleID)
	} else {
		err = s.actionSvc.CancelLikeArticle(c.Request.Context(), userID, articleID)
	}

	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// IsLiked 当前用户是否点赞过该文章
func (s *ArticleActionHandler) IsLiked(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil || articleID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	liked, err := s.actionSvc.IsLiked(c.Request.Context(), userID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"is_liked": liked})
}

// GetBatchLikes 批量获取文章点赞数
func (s *ArticleActionHandler) GetBatchLikes(c *gin.Context) {
	var req dto.ArticleBatchLikesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	counts, err := s.actionSvc.GetArticleLikeCounts(c.Request.Context(), req.ArticleIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ArticleBatchLikesDTO{Likes: counts})
}

// GetLikedArticles 当前用户点赞过的文章列表
func (s *ArticleActionHandler) GetLikedArticles(c *gin.Context) {
	userID := c.GetUint64("user_id")
	page, pageSize := parsePagination(c)

	list, err := s.actionSvc.GetLikedArticles(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// CreateComment 发表评论
func (s *ArticleActionHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.actionSvc.CreateComment(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteComment 删除评论
func (s *ArticleActionHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err := s.actionSvc.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetComments 文章评论列表
func (s *ArticleActionHandler) GetComments(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil || articleID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := parsePagination(c)

	list, err := s.actionSvc.GetComments(c.Request.Context(), articleID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
