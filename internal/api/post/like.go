package post

import (
	"net/http"
	"strconv"

	"github.com/antonkk11/Netology-diploma/internal/errors"

	"github.com/gin-gonic/gin"
)

// LikePost 幂等点赞：重复请求不会产生第二条记录，
// 第二次起返回 200 "already liked"
func (h *PostHandler) LikePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	created, err := h.postService.LikePost(postID, c.GetInt("user_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"detail": "Post liked."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "You already liked this post."})
}

// UnlikePost 删除当前用户对该帖子的点赞；从未点过赞则返回 404
func (h *PostHandler) UnlikePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	if err := h.postService.UnlikePost(postID, c.GetInt("user_id")); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
