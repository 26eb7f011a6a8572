package mysql

import (
	"database/sql"
	"strings"

	"github.com/antonkk11/Netology-diploma/config"
	"github.com/antonkk11/Netology-diploma/internal/model"
	"github.com/antonkk11/Netology-diploma/internal/util"

	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

// resolveImageURL 将存储返回的相对路径补全为可访问的URL。
// S3/GCS 返回的已经是完整URL，不做处理
func resolveImageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return config.AppConfig.BackendURL + "/uploads/" + path
}

func (r *postRepository) CreatePost(post *model.Post) error {
	query := `INSERT INTO posts (user_id, text, image_url, created_at)
              VALUES (?, ?, ?, NOW())`
	result, err := r.db.Exec(query, post.UserID, post.Text, post.ImageURL)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	postID, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}
	post.ID = int(postID)

	// 新建的帖子还没有子记录，补全序列化需要的空集合
	post.Comments = []*model.Comment{}
	post.Images = []*model.PostImage{}
	post.ImageURL = resolveImageURL(post.ImageURL)

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

func (r *postRepository) GetPostByID(id int) (*model.Post, error) {
	query := `SELECT id, user_id, text, image_url, created_at FROM posts WHERE id = ?`

	var post model.Post
	err := r.db.QueryRow(query, id).Scan(
		&post.ID, &post.UserID, &post.Text, &post.ImageURL, &post.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	post.ImageURL = resolveImageURL(post.ImageURL)

	if err := r.loadChildren(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// loadChildren 加载帖子的评论、补充图片和点赞数
func (r *postRepository) loadChildren(post *model.Post) error {
	// 评论
	rows, err := r.db.Query(`
        SELECT id, user_id, post_id, text, created_at
        FROM comments
        WHERE post_id = ?
        ORDER BY created_at ASC`, post.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(&comment.ID, &comment.UserID, &comment.PostID,
			&comment.Text, &comment.CreatedAt)
		if err != nil {
			return err
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	post.Comments = comments

	// 补充图片
	imageRows, err := r.db.Query(`
        SELECT id, post_id, image_url, created_at
        FROM post_images
        WHERE post_id = ?
        ORDER BY created_at ASC`, post.ID)
	if err != nil {
		return err
	}
	defer imageRows.Close()

	images := []*model.PostImage{}
	for imageRows.Next() {
		var image model.PostImage
		err := imageRows.Scan(&image.ID, &image.PostID, &image.ImageURL, &image.CreatedAt)
		if err != nil {
			return err
		}
		image.ImageURL = resolveImageURL(image.ImageURL)
		images = append(images, &image)
	}
	if err := imageRows.Err(); err != nil {
		return err
	}
	post.Images = images

	// 点赞数
	var likesCount int
	err = r.db.QueryRow(`SELECT COUNT(*) FROM likes WHERE post_id = ?`, post.ID).Scan(&likesCount)
	if err != nil {
		return err
	}
	post.LikesCount = likesCount

	return nil
}

func (r *postRepository) UpdatePostText(id int, text string) error {
	query := `UPDATE posts SET text = ? WHERE id = ?`
	_, err := r.db.Exec(query, text, id)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", id))
		return err
	}
	return nil
}

// DeletePost 删除帖子及其全部子记录。虽然表结构里定义了 ON DELETE CASCADE，
// 这里仍在同一事务内显式删除，级联行为不依赖某个数据库的隐式约定
func (r *postRepository) DeletePost(id int) error {
	util.Logger.Info("开始删除帖子", zap.Int("post_id", id))

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM comments WHERE post_id = ?`,
		`DELETE FROM likes WHERE post_id = ?`,
		`DELETE FROM post_images WHERE post_id = ?`,
		`DELETE FROM posts WHERE id = ?`,
	} {
		if _, err := tx.Exec(query, id); err != nil {
			util.Logger.Error("删除帖子失败", zap.Error(err), zap.Int("post_id", id))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return err
	}

	util.Logger.Info("帖子删除成功", zap.Int("post_id", id))
	return nil
}

func (r *postRepository) ListPosts() ([]*model.Post, error) {
	query := `SELECT id, user_id, text, image_url, created_at
              FROM posts
              ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		var post model.Post
		err := rows.Scan(&post.ID, &post.UserID, &post.Text, &post.ImageURL, &post.CreatedAt)
		if err != nil {
			return nil, err
		}
		post.ImageURL = resolveImageURL(post.ImageURL)
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, post := range posts {
		if err := r.loadChildren(post); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

func (r *postRepository) PostExists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (r *postRepository) CreateComment(comment *model.Comment) error {
	query := `INSERT INTO comments (user_id, post_id, text, created_at)
              VALUES (?, ?, ?, NOW())`
	result, err := r.db.Exec(query, comment.UserID, comment.PostID, comment.Text)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.Int("post_id", comment.PostID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新评论ID失败", zap.Error(err))
		return err
	}
	comment.ID = int(id)

	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID))
	return nil
}

// CreateLike 依赖 likes 表上的 (user_id, post_id) 唯一索引，
// 用单条 INSERT IGNORE 完成条件插入。并发的重复请求最多只能插入一行，
// RowsAffected 区分"新插入"和"已点赞"
func (r *postRepository) CreateLike(userID, postID int) (bool, error) {
	result, err := r.db.Exec(
		`INSERT IGNORE INTO likes (user_id, post_id, created_at) VALUES (?, ?, NOW())`,
		userID, postID)
	if err != nil {
		util.Logger.Error("点赞失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("post_id", postID))
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *postRepository) DeleteLike(userID, postID int) (bool, error) {
	result, err := r.db.Exec(
		`DELETE FROM likes WHERE user_id = ? AND post_id = ?`,
		userID, postID)
	if err != nil {
		util.Logger.Error("取消点赞失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("post_id", postID))
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *postRepository) CreatePostImage(image *model.PostImage) error {
	query := `INSERT INTO post_images (post_id, image_url, created_at)
              VALUES (?, ?, NOW())`
	result, err := r.db.Exec(query, image.PostID, image.ImageURL)
	if err != nil {
		util.Logger.Error("插入帖子图片失败", zap.Error(err), zap.Int("post_id", image.PostID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	image.ID = int(id)
	image.ImageURL = resolveImageURL(image.ImageURL)

	util.Logger.Info("帖子图片添加成功", zap.Int("post_id", image.PostID))
	return nil
}
