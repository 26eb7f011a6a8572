package post

import (
	"net/http"
	"strconv"

	"github.com/antonkk11/Netology-diploma/internal/errors"
	"github.com/antonkk11/Netology-diploma/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateComment 为帖子创建评论。post 和 author 由处理器写入，
// 客户端只提供 text
func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.ShouldBind(&req); err != nil {
		util.Logger.Warn("无效的评论数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的评论数据", err))
		return
	}

	comment, err := h.postService.CreateComment(postID, c.GetInt("user_id"), req.Text)
	if err != nil {
		// 内容校验在帖子存在性之后，空评论在这里转成字段错误
		if errors.Is(err, errors.ErrValidation) {
			errors.HandleValidationError(c, "无效的评论数据", map[string][]string{
				"text": {"This field may not be blank."},
			})
			return
		}
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
