package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recipematch/internal/domain"
	"recipematch/internal/service"
)

// Matcher is the part of the recipe service the API exposes.
type Matcher interface {
	Query(query string, k int) ([]domain.Match, error)
	Substitutions(input string) []domain.Substitution
	TopK() int
	Stats() (service.Stats, bool)
}

type Server struct {
	Matcher Matcher
	Logger  *logrus.Entry
	Router  *gin.Engine
}

func NewServer(m Matcher, logger *logrus.Entry) *Server {
	s := &Server{
		Matcher: m,
		Logger:  logger.WithField("component", "api"),
		Router:  gin.New(),
	}
	s.Router.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	v1 := s.Router.Group("/api/v1")
	v1.GET("/recipes/search", s.handleSearch)
	v1.GET("/substitutions", s.handleSubstitutions)
	v1.GET("/status", s.handleStatus)
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router}
	errc := make(chan error, 1)
	go func() {
		s.Logger.Infof("Starting API Server on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	K       int            `json:"k"`
	Results []domain.Match `json:"results"`
}

type SubstitutionResponse struct {
	Query         string                `json:"query"`
	Substitutions []domain.Substitution `json:"substitutions"`
}

type StatusResponse struct {
	Loaded     bool     `json:"loaded"`
	Documents  int      `json:"documents"`
	Vocabulary int      `json:"vocabulary"`
	Sources    []string `json:"sources"`
	BuildTime  string   `json:"build_time"`
	LoadedAt   string   `json:"loaded_at,omitempty"`
	Summary    string   `json:"summary"`
}

type searchParams struct {
	Query string `form:"q"`
	K     *int   `form:"k"`
}

// Handlers

func (s *Server) handleSearch(c *gin.Context) {
	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	k := s.Matcher.TopK()
	if params.K != nil {
		k = *params.K
	}

	matches, err := s.Matcher.Query(params.Query, k)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{Query: params.Query, K: k, Results: matches})
}

func (s *Server) handleSubstitutions(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}
	subs := s.Matcher.Substitutions(q)
	if subs == nil {
		subs = []domain.Substitution{}
	}
	c.JSON(http.StatusOK, SubstitutionResponse{Query: q, Substitutions: subs})
}

func (s *Server) handleStatus(c *gin.Context) {
	stats, ok := s.Matcher.Stats()
	resp := StatusResponse{
		Loaded:     ok,
		Documents:  stats.Documents,
		Vocabulary: stats.Vocabulary,
		Sources:    stats.Sources,
		BuildTime:  stats.BuildTime.String(),
		Summary:    stats.Summary.String(),
	}
	if ok {
		resp.LoadedAt = stats.LoadedAt.Format(time.RFC3339)
	}
	if resp.Sources == nil {
		resp.Sources = []string{}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoCorpus):
		status = http.StatusServiceUnavailable
	default:
		s.Logger.WithError(err).Error("Request failed")
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("Handled request")
	}
}
