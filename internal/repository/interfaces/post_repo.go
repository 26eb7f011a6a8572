package interfaces

import "github.com/antonkk11/Netology-diploma/internal/model"

// PostRepository 定义了帖子相关的数据库操作接口
type PostRepository interface {
	CreatePost(post *model.Post) error
	// GetPostByID 返回完整的帖子（含评论、补充图片、点赞数）。
	// 帖子不存在时返回 (nil, nil)
	GetPostByID(id int) (*model.Post, error)
	UpdatePostText(id int, text string) error
	// DeletePost 在同一事务内删除帖子及其全部子记录
	DeletePost(id int) error
	ListPosts() ([]*model.Post, error)
	PostExists(id int) (bool, error)
	CreateComment(comment *model.Comment) error
	// CreateLike 原子的条件插入，依赖 (user_id, post_id) 唯一索引。
	// 返回是否真正插入了新行
	CreateLike(userID, postID int) (bool, error)
	// DeleteLike 返回是否存在并删除了对应的点赞记录
	DeleteLike(userID, postID int) (bool, error)
	CreatePostImage(image *model.PostImage) error
}
