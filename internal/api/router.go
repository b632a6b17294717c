package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/niyoseris/roller/internal/scheduler"
	"github.com/niyoseris/roller/internal/storage"
)

// Server 提供运行状态查看接口。
// store 可以为 nil，此时 /submissions 返回 503。
type Server struct {
	sched  *scheduler.Scheduler
	ledger storage.Ledger
	store  *storage.Store
}

func NewServer(sched *scheduler.Scheduler, ledger storage.Ledger, store *storage.Store) *Server {
	return &Server{sched: sched, ledger: ledger, store: store}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/status", s.status)
		v1.GET("/stats", s.stats)
		v1.GET("/processed", s.listProcessed)
		v1.GET("/submissions", s.listSubmissions)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) status(c *gin.Context) {
	stats := s.sched.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"state":         stats.State,
			"lastCycleTime": stats.LastCycleTime,
			"processed":     s.ledger.Count(),
		},
	})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    s.sched.Snapshot(),
	})
}

func (s *Server) listProcessed(c *gin.Context) {
	limit := parseLimit(c, 50)
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"total": s.ledger.Count(),
			"urls":  s.ledger.Recent(limit),
		},
	})
}

func (s *Server) listSubmissions(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "no_database",
			"message": "submission archive is not configured",
		})
		return
	}

	limit := parseLimit(c, 20)
	items, err := s.store.ListSubmissions(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

func parseLimit(c *gin.Context, def int) int {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(def))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = def
	}
	return limit
}
