package post

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/antonkk11/Netology-diploma/internal/errors"
	"github.com/antonkk11/Netology-diploma/internal/model"
	"github.com/antonkk11/Netology-diploma/internal/service"
	"github.com/antonkk11/Netology-diploma/internal/storage"
	"github.com/antonkk11/Netology-diploma/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService service.PostServiceInterface
	storage     storage.FileStorage
}

func NewPostHandler(postService service.PostServiceInterface, storage storage.FileStorage) *PostHandler {
	return &PostHandler{
		postService: postService,
		storage:     storage,
	}
}

// ListPosts 返回按创建时间倒序的完整帖子列表（不分页），
// 每个帖子带嵌套的评论、补充图片和点赞数
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts()
	if err != nil {
		util.Logger.Error("获取帖子列表失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost 处理创建帖子的请求。text 可选，image 必填且在任何
// 存储写入之前完成大小和格式校验
func (h *PostHandler) CreatePost(c *gin.Context) {
	// 解析多部分表单
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		util.Logger.Error("无法解析表单数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法解析表单数据", err))
		return
	}

	text := c.PostForm("text")

	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleValidationError(c, "无效的帖子数据", map[string][]string{
			"image": {"This field is required."},
		})
		return
	}

	if err := util.ValidateImage(file); err != nil {
		util.Logger.Warn("帖子主图校验失败", zap.Error(err), zap.String("filename", file.Filename))
		errors.HandleError(c, errors.New(errors.ErrValidation, err.Error()))
		return
	}

	userID := c.GetInt("user_id")
	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("posts/%d/%s", userID, filename)

	imageURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrStorage, "图片上传失败", err))
		return
	}

	post := &model.Post{
		UserID:   userID,
		Text:     text,
		ImageURL: imageURL,
	}
	if err := h.postService.CreatePost(post); err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	post, err := h.postService.GetPostByID(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost 只有作者可以修改，且只有 text 字段可变
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.ShouldBind(&req); err != nil {
		util.Logger.Warn("无效的帖子数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的帖子数据", err))
		return
	}

	post, err := h.postService.UpdatePostText(id, c.GetInt("user_id"), req.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost 只有作者可以删除，评论、点赞、补充图片随帖子一起删除
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	if err := h.postService.DeletePost(id, c.GetInt("user_id")); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
