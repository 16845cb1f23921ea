package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/contentiq/backend/analyzer"
	"github.com/contentiq/backend/config"
	"github.com/contentiq/backend/keywords"
	"github.com/contentiq/backend/llm"
	"github.com/contentiq/backend/logging"
	"github.com/contentiq/backend/middleware"
	"github.com/contentiq/backend/report"
	"github.com/contentiq/backend/store"
	"github.com/contentiq/backend/workflow"
)

const workflowSnapshotKey = "workflow_state"

// server holds the explicitly constructed service instances; nothing hides
// behind module-load order.
type server struct {
	cfg      config.Config
	analyzer *analyzer.Analyzer
	scorer   *keywords.Scorer
	engine   *workflow.Engine
	reports  *report.Service
	store    *store.FileStore
	llm      llm.Completer
	stats    *logging.Statistics
}

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	loadEnv()
	setupGinMode()

	cfg := config.Load()

	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize store:", err)
	}

	engine := workflow.NewEngine()
	var state workflow.State
	if found, err := fileStore.Get(workflowSnapshotKey, &state); err != nil {
		log.Printf("Could not load workflow snapshot: %v", err)
	} else if found {
		engine.Restore(state)
	}

	srv := &server{
		cfg:      cfg,
		analyzer: analyzer.New(),
		scorer:   keywords.NewScorer(keywords.NewSyntheticTrendSource(time.Now().UnixNano()), cfg.Industries),
		engine:   engine,
		store:    fileStore,
		llm:      llm.NewClient(cfg.LLM),
		stats:    logging.Initialize(),
	}
	srv.reports = report.NewService(srv.analyzer, srv.scorer, srv.engine)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BucketSize)

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Track clients on every request
	r.Use(func(c *gin.Context) {
		srv.stats.TrackClient(c.ClientIP())
		c.Next()
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, srv.stats.GetStatistics())
		})

		api.POST("/analyze", srv.analyzeContent)
		api.POST("/report", srv.generateReport)
		api.POST("/generate", srv.generateContent)

		kw := api.Group("/keywords")
		{
			kw.POST("/opportunities", srv.keywordOpportunities)
			kw.POST("/gaps", srv.competitorGaps)
			kw.POST("/alerts", srv.keywordAlerts)
		}

		wf := api.Group("/workflow")
		{
			wf.POST("/submit", srv.submitContent)
			wf.POST("/:id/approve", srv.approveContent)
			wf.POST("/:id/reject", srv.rejectContent)
			wf.POST("/:id/revision", srv.requestRevision)
			wf.POST("/:id/performance", srv.trackPerformance)
			wf.GET("/:id/suggestions", srv.contentSuggestions)
			wf.GET("/top", srv.topPerforming)
			wf.GET("/dashboard", srv.dashboard)
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8082"
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// analyzeRequest accepts either raw text with declared fields or rendered
// HTML to extract them from.
type analyzeRequest struct {
	Text           string                  `json:"text"`
	HTML           string                  `json:"html"`
	Keywords       []string                `json:"keywords"`
	InternalLinks  int                     `json:"internalLinks"`
	StructuredData analyzer.StructuredData `json:"structuredData"`
}

func (s *server) documentFrom(req analyzeRequest) (analyzer.Document, error) {
	if req.HTML != "" {
		return analyzer.FromHTML(req.HTML, req.Keywords)
	}
	return analyzer.Document{
		Text:           req.Text,
		Keywords:       req.Keywords,
		InternalLinks:  req.InternalLinks,
		StructuredData: req.StructuredData,
	}, nil
}

func (s *server) analyzeContent(c *gin.Context) {
	start := time.Now()
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis request"})
		return
	}

	doc, err := s.documentFrom(req)
	if err != nil {
		s.stats.TrackRequest("analysis", elapsedMs(start), true, false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse document: " + err.Error()})
		return
	}

	s.stats.TrackRequest("analysis", elapsedMs(start), false, false)
	c.JSON(http.StatusOK, gin.H{
		"readability":   s.analyzer.AnalyzeReadability(doc.Text),
		"compatibility": s.analyzer.CheckGPTCompatibility(doc),
		"voiceSearch":   s.analyzer.OptimizeForVoiceSearch(doc),
	})
}

type keywordRequest struct {
	Competitors map[string][]string `json:"competitors"`
	Technology  []string            `json:"technology"`
}

// withDefaults falls back to the configured competitor sets and technology
// keywords when the request leaves them empty.
func (r *keywordRequest) withDefaults(cfg config.Config) {
	if len(r.Competitors) == 0 {
		r.Competitors = cfg.Competitors
	}
	if len(r.Technology) == 0 {
		r.Technology = cfg.Technology
	}
}

func (s *server) keywordOpportunities(c *gin.Context) {
	start := time.Now()
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keyword request"})
		return
	}
	req.withDefaults(s.cfg)

	opportunities, degraded := s.scorer.FindOpportunities(c.Request.Context(), req.Competitors, req.Technology)
	s.stats.TrackRequest("keywords", elapsedMs(start), false, degraded)
	c.JSON(http.StatusOK, gin.H{
		"opportunities": opportunities,
		"trendDegraded": degraded,
	})
}

func (s *server) competitorGaps(c *gin.Context) {
	start := time.Now()
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keyword request"})
		return
	}
	req.withDefaults(s.cfg)

	gaps := s.scorer.GapAnalysis(req.Competitors)
	s.stats.TrackRequest("keywords", elapsedMs(start), false, false)
	c.JSON(http.StatusOK, gin.H{"gaps": gaps})
}

func (s *server) keywordAlerts(c *gin.Context) {
	start := time.Now()
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keyword request"})
		return
	}
	req.withDefaults(s.cfg)

	opportunities, degraded := s.scorer.FindOpportunities(c.Request.Context(), req.Competitors, req.Technology)
	s.stats.TrackRequest("keywords", elapsedMs(start), false, degraded)
	c.JSON(http.StatusOK, gin.H{
		"alerts":        s.scorer.GenerateAlerts(opportunities),
		"trendDegraded": degraded,
	})
}

func (s *server) submitContent(c *gin.Context) {
	var content workflow.ContentInput
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission"})
		return
	}

	id := s.engine.SubmitForApproval(content)
	s.persistWorkflow()
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type reviewRequest struct {
	Reviewer string `json:"reviewer" binding:"required"`
	Notes    string `json:"notes"`
	Reason   string `json:"reason"`
	Feedback string `json:"feedback"`
}

func (s *server) approveContent(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reviewer is required"})
		return
	}

	sub, err := s.engine.ApproveContent(c.Param("id"), req.Reviewer, req.Notes)
	if err != nil {
		s.respondWorkflowError(c, err)
		return
	}
	s.persistWorkflow()
	c.JSON(http.StatusOK, sub)
}

func (s *server) rejectContent(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reviewer is required"})
		return
	}

	sub, err := s.engine.RejectContent(c.Param("id"), req.Reviewer, req.Reason)
	if err != nil {
		s.respondWorkflowError(c, err)
		return
	}
	s.persistWorkflow()
	c.JSON(http.StatusOK, sub)
}

func (s *server) requestRevision(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reviewer is required"})
		return
	}

	sub, err := s.engine.RequestRevision(c.Param("id"), req.Reviewer, req.Feedback)
	if err != nil {
		s.respondWorkflowError(c, err)
		return
	}
	s.persistWorkflow()
	c.JSON(http.StatusOK, sub)
}

func (s *server) trackPerformance(c *gin.Context) {
	var metrics map[string]interface{}
	if err := c.ShouldBindJSON(&metrics); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metrics payload"})
		return
	}

	rec := s.engine.TrackContentPerformance(c.Param("id"), metrics)
	s.persistWorkflow()
	c.JSON(http.StatusOK, rec)
}

func (s *server) contentSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"suggestions": s.engine.GenerateOptimizationSuggestions(c.Param("id")),
	})
}

func (s *server) topPerforming(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	c.JSON(http.StatusOK, gin.H{"content": s.engine.GetTopPerformingContent(limit)})
}

func (s *server) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.GetDashboard())
}

type reportRequest struct {
	Document    analyzeRequest      `json:"document"`
	Competitors map[string][]string `json:"competitors"`
	Technology  []string            `json:"technology"`
}

func (s *server) generateReport(c *gin.Context) {
	start := time.Now()
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report request"})
		return
	}

	doc, err := s.documentFrom(req.Document)
	if err != nil {
		s.stats.TrackRequest("report", elapsedMs(start), true, false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse document: " + err.Error()})
		return
	}

	kw := keywordRequest{Competitors: req.Competitors, Technology: req.Technology}
	kw.withDefaults(s.cfg)

	result := s.reports.Generate(c.Request.Context(), doc, kw.Competitors, kw.Technology)
	s.stats.TrackRequest("report", elapsedMs(start), false, result.TrendDegraded)
	c.JSON(http.StatusOK, result)
}

type generateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (s *server) generateContent(c *gin.Context) {
	start := time.Now()
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	text, err := s.llm.Complete(c.Request.Context(), req.Prompt)
	if err != nil {
		s.stats.TrackRequest("generation", elapsedMs(start), true, false)
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":  "generation_failure",
				"detail": genErr.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
		return
	}

	s.stats.TrackRequest("generation", elapsedMs(start), false, false)
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (s *server) respondWorkflowError(c *gin.Context, err error) {
	if errors.Is(err, workflow.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *server) persistWorkflow() {
	if err := s.store.Put(workflowSnapshotKey, s.engine.Snapshot()); err != nil {
		log.Printf("Could not persist workflow snapshot: %v", err)
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
