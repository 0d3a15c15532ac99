package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"library-api/pkg/config"
	"library-api/pkg/database"
	"library-api/pkg/middleware"
	"library-api/pkg/models"
)

var db *gorm.DB

func main() {
	log.Println("Starting library service...")

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err = database.InitLibraryDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	server := gin.Default()
	server.Use(middleware.RequestID())
	server.Use(middleware.CORS(cfg.CORS))
	if cfg.Limit.Enabled {
		server.Use(middleware.RateLimit(cfg.Limit))
	}

	server.GET("/api/health", healthCheck)
	server.GET("/api/books", getBooks)
	server.GET("/api/books/:id", getBook)
	server.POST("/api/books", createBook)
	server.PUT("/api/books/:id", updateBook)
	server.DELETE("/api/books/:id", deleteBook)

	log.Printf("Library service starting on :%d", cfg.Server.Port)
	if err := server.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "library-api",
	})
}

func getBooks(c *gin.Context) {
	search := c.Query("search")
	genre := c.Query("genre")
	author := c.Query("author")

	query := db.Model(&models.Book{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", pattern, pattern)
	}
	if genre != "" {
		query = query.Where("genre LIKE ?", "%"+genre+"%")
	}
	if author != "" {
		query = query.Where("author LIKE ?", "%"+author+"%")
	}

	books := make([]models.Book, 0)
	if err := query.Order("title ASC").Find(&books).Error; err != nil {
		serverError(c)
		return
	}

	c.JSON(http.StatusOK, books)
}

func getBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var book models.Book
	if err := db.First(&book, id).Error; err != nil {
		lookupError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func createBook(c *gin.Context) {
	var req models.BookCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}

	book, v := req.Validate()
	if !v.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": v.Errors})
		return
	}

	if err := db.Create(&book).Error; err != nil {
		serverError(c)
		return
	}

	c.JSON(http.StatusCreated, book)
}

func updateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	// The body is parsed and validated before the existence lookup, so an
	// invalid body against an unknown id answers 422, not 404.
	var req models.BookUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}
	if v := req.Validate(); !v.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": v.Errors})
		return
	}

	var book models.Book
	if err := db.First(&book, id).Error; err != nil {
		lookupError(c, id, err)
		return
	}

	// An empty patch still succeeds and returns the unchanged row.
	if patch := req.Patch(); len(patch) > 0 {
		if err := db.Model(&book).Updates(patch).Error; err != nil {
			serverError(c)
			return
		}
	}

	var updated models.Book
	if err := db.First(&updated, id).Error; err != nil {
		serverError(c)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func deleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var book models.Book
	if err := db.First(&book, id).Error; err != nil {
		lookupError(c, id, err)
		return
	}

	if err := db.Delete(&models.Book{}, id).Error; err != nil {
		serverError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// bookID parses the :id path parameter. A non-numeric id answers 422, the
// same status the body validation uses.
func bookID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fmt.Sprintf("invalid book ID %q", raw)})
		return 0, false
	}
	return id, true
}

func lookupError(c *gin.Context, id int, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("Book with ID %d not found", id)})
		return
	}
	serverError(c)
}

func serverError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}
