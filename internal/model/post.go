package model

import "time"

// Post 帖子模型。author 在创建时由当前登录用户写入，之后不可变；
// text 是唯一允许更新的字段
type Post struct {
	ID         int          `json:"id"`
	UserID     int          `json:"author"`
	Text       string       `json:"text"`
	ImageURL   string       `json:"image"`
	CreatedAt  time.Time    `json:"created_at"`
	Comments   []*Comment   `json:"comments"`
	LikesCount int          `json:"likes_count"`
	Images     []*PostImage `json:"images"`
}

// Comment 评论模型。post 和 author 由处理器写入，不接受客户端传入
type Comment struct {
	ID        int       `json:"-"`
	UserID    int       `json:"author"`
	PostID    int       `json:"-"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Like 点赞模型。(user_id, post_id) 全局唯一
type Like struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	PostID    int       `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostImage 帖子的补充图片，一个帖子可以有多张
type PostImage struct {
	ID        int       `json:"-"`
	PostID    int       `json:"-"`
	ImageURL  string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
