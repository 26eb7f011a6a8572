package service

import (
	"strings"

	"github.com/antonkk11/Netology-diploma/internal/auth"
	"github.com/antonkk11/Netology-diploma/internal/errors"
	"github.com/antonkk11/Netology-diploma/internal/model"
	"github.com/antonkk11/Netology-diploma/internal/repository/interfaces"
)

// PostServiceInterface 便于在处理器测试中替换成 mock
type PostServiceInterface interface {
	ListPosts() ([]*model.Post, error)
	GetPostByID(id int) (*model.Post, error)
	CreatePost(post *model.Post) error
	UpdatePostText(id, actorID int, text string) (*model.Post, error)
	DeletePost(id, actorID int) error
	// LikePost 返回是否新建了点赞记录（false 表示已经点过赞）
	LikePost(postID, actorID int) (bool, error)
	UnlikePost(postID, actorID int) error
	CreateComment(postID, actorID int, text string) (*model.Comment, error)
	AttachImage(postID, actorID int, imageURL string) (*model.PostImage, error)
}

type PostService struct {
	repo interfaces.PostRepository
}

func NewPostService(repo interfaces.PostRepository) *PostService {
	return &PostService{repo}
}

var _ PostServiceInterface = (*PostService)(nil)

func (s *PostService) ListPosts() ([]*model.Post, error) {
	posts, err := s.repo.ListPosts()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子列表失败", err)
	}
	return posts, nil
}

func (s *PostService) GetPostByID(id int) (*model.Post, error) {
	post, err := s.repo.GetPostByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found.")
	}
	return post, nil
}

// CreatePost 创建帖子。作者字段必须已由调用方从当前登录身份写入。
// 存储层的创建失败按照客户端输入错误返回，而不是服务器故障
func (s *PostService) CreatePost(post *model.Post) error {
	if err := s.repo.CreatePost(post); err != nil {
		return errors.Wrap(errors.ErrBadRequest, "创建帖子失败", err)
	}
	return nil
}

// UpdatePostText 只允许作者修改，且只有 text 字段可变
func (s *PostService) UpdatePostText(id, actorID int, text string) (*model.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if !auth.IsOwner(actorID, post.UserID) {
		return nil, errors.New(errors.ErrForbidden, "You don't have permission to edit this post.")
	}

	if err := s.repo.UpdatePostText(id, text); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}
	post.Text = text
	return post, nil
}

func (s *PostService) DeletePost(id, actorID int) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if !auth.IsOwner(actorID, post.UserID) {
		return errors.New(errors.ErrForbidden, "You don't have permission to delete this post.")
	}

	if err := s.repo.DeletePost(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}
	return nil
}

func (s *PostService) LikePost(postID, actorID int) (bool, error) {
	exists, err := s.repo.PostExists(postID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "检查帖子失败", err)
	}
	if !exists {
		return false, errors.New(errors.ErrPostNotFound, "Post not found.")
	}

	created, err := s.repo.CreateLike(actorID, postID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "点赞失败", err)
	}
	return created, nil
}

func (s *PostService) UnlikePost(postID, actorID int) error {
	exists, err := s.repo.PostExists(postID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "检查帖子失败", err)
	}
	if !exists {
		return errors.New(errors.ErrPostNotFound, "Post not found.")
	}

	removed, err := s.repo.DeleteLike(actorID, postID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "取消点赞失败", err)
	}
	if !removed {
		return errors.New(errors.ErrLikeNotFound, "You haven't liked this post.")
	}
	return nil
}

// CreateComment 先检查帖子存在，再校验内容：
// 对不存在的帖子发空评论返回404而不是400
func (s *PostService) CreateComment(postID, actorID int, text string) (*model.Comment, error) {
	exists, err := s.repo.PostExists(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "检查帖子失败", err)
	}
	if !exists {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found.")
	}

	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "评论内容不能为空")
	}

	comment := &model.Comment{
		UserID: actorID,
		PostID: postID,
		Text:   text,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建评论失败", err)
	}
	return comment, nil
}

// AttachImage 为帖子添加补充图片，只有作者可以操作
func (s *PostService) AttachImage(postID, actorID int, imageURL string) (*model.PostImage, error) {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return nil, err
	}
	if !auth.IsOwner(actorID, post.UserID) {
		return nil, errors.New(errors.ErrForbidden, "You don't have permission to add images to this post.")
	}

	image := &model.PostImage{
		PostID:   postID,
		ImageURL: imageURL,
	}
	if err := s.repo.CreatePostImage(image); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "添加帖子图片失败", err)
	}
	return image, nil
}
