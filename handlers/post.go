package handlers

import (
	"bytes"
	"database/sql"
	"log"
	"net/http"

	"fitcoach_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
)

type PostHandler struct {
	db *sql.DB
}

func NewPostHandler(db *sql.DB) *PostHandler {
	return &PostHandler{db: db}
}

func (h *PostHandler) checkPermission(userID int) (bool, error) {
	var hasPermission bool
	err := h.db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM user_roles ur
            JOIN roles r ON r.id = ur.role_id
            WHERE ur.user_id = $1
            AND r.role = 'Admin'
        )
    `, userID).Scan(&hasPermission)

	return hasPermission, err
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetInt("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the trainer can write posts"})
		return
	}

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	var postID int
	err = h.db.QueryRow(`
        INSERT INTO posts (author_id, title, content, published)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, userID, req.Title, req.Content, published).Scan(&postID)

	if err != nil {
		log.Printf("Error creating post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": postID})
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	rows, err := h.db.Query(`
        SELECT p.id, p.author_id, u.first_name || ' ' || u.last_name, p.title, p.content, p.published, p.created_at
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.published
        ORDER BY p.created_at DESC
    `)
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer rows.Close()

	posts := make([]models.PostResponse, 0)
	for rows.Next() {
		var p models.PostResponse
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content, &p.Published, &p.CreatedAt); err != nil {
			log.Printf("Error scanning post: %v", err)
			continue
		}
		posts = append(posts, p)
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	var p models.PostResponse
	err := h.db.QueryRow(`
        SELECT p.id, p.author_id, u.first_name || ' ' || u.last_name, p.title, p.content, p.published, p.created_at
        FROM posts p
        JOIN users u ON u.id = p.author_id
        WHERE p.id = $1 AND p.published
    `, c.Param("id")).Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content, &p.Published, &p.CreatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	// Posts are written in markdown and rendered on read
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(p.Content), &buf); err != nil {
		log.Printf("Error rendering post %d: %v", p.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render post"})
		return
	}
	p.ContentHTML = buf.String()

	c.JSON(http.StatusOK, p)
}
