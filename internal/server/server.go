package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samducker/bookgenre/internal/genre"
)

// Server exposes the classification cascade over HTTP. The processor is
// optional: without a configured spreadsheet only /classify is useful.
type Server struct {
	Classifier *genre.Classifier
	Processor  *genre.Processor
	ReadRange  string
}

func NewServer(classifier *genre.Classifier, processor *genre.Processor, readRange string) *Server {
	return &Server{
		Classifier: classifier,
		Processor:  processor,
		ReadRange:  readRange,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/classify", s.Classify)
	r.POST("/runs", s.TriggerRun)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ClassifyRequest struct {
	Title     string   `json:"title"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: title is required"})
		return
	}

	threshold := s.Classifier.Threshold
	if req.Threshold != nil {
		if *req.Threshold < 0 || *req.Threshold > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: threshold must be within [0, 1]"})
			return
		}
		threshold = *req.Threshold
	}

	result := s.Classifier.ClassifyWithThreshold(c.Request.Context(), req.Title, threshold)
	if result.Genre == genre.GenreError {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Classification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":      req.Title,
		"genre":      result.Genre,
		"confidence": result.Confidence,
		"source":     result.Source,
	})
}

func (s *Server) TriggerRun(c *gin.Context) {
	if s.Processor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No spreadsheet configured"})
		return
	}

	// Runs are synchronous and single-flight by design; the cascade already
	// paces itself against external rate limits.
	summary, err := s.Processor.Run(c.Request.Context(), s.ReadRange)
	if err != nil {
		log.Printf("Run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Run failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run_id": summary.RunID, "summary": summary})
}
