package post

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/antonkk11/Netology-diploma/internal/auth"
	"github.com/antonkk11/Netology-diploma/internal/errors"
	"github.com/antonkk11/Netology-diploma/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddPostImage 为帖子添加补充图片，只有作者可以操作。
// 补充图片只检查文件是否存在，不做大小和格式校验
func (h *PostHandler) AddPostImage(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	userID := c.GetInt("user_id")

	// 先做存在性和权限检查，未授权的请求不应触发任何存储写入
	post, err := h.postService.GetPostByID(postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if !auth.IsOwner(userID, post.UserID) {
		errors.HandleError(c, errors.New(errors.ErrForbidden, "You don't have permission to add images to this post."))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleValidationError(c, "无效的图片数据", map[string][]string{
			"image": {"No file was submitted."},
		})
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("posts/%d/%s", postID, filename)

	imageURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err), zap.Int("post_id", postID))
		errors.HandleError(c, errors.Wrap(errors.ErrStorage, "图片上传失败", err))
		return
	}

	image, err := h.postService.AttachImage(postID, userID, imageURL)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}
