package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// defaultSentimentLimit is how many sentiment cards a request gets by default
	defaultSentimentLimit = 10

	// maxSentimentLimit caps sentiment card requests
	maxSentimentLimit = 100

	// defaultSnapshotsWindow is the history range served when `since` is omitted
	defaultSnapshotsWindow = 24 * time.Hour
)

// getHealth reports service status and what the dashboard is tracking
func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"source":   s.service.SourceName(),
		"symbol":   s.service.Symbol(),
		"interval": s.service.Interval(),
		"time":     time.Now().UTC(),
	})
}

// getCombined fetches a candle series on demand and serves it together
// with the aligned RSI series. Undefined RSI entries serialize as null.
func (s *Server) getCombined(c *gin.Context) {
	interval := domain.Interval(c.DefaultQuery("interval", s.service.Interval().String()))
	if err := interval.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	snapshot, err := s.service.CombinedView(c.Request.Context(), interval, limit)
	if err != nil {
		s.logger.Error("Combined view failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch market data"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// getRSI serves the RSI series of the latest snapshot
func (s *Server) getRSI(c *gin.Context) {
	snapshot, ok := s.service.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot available yet"})
		return
	}

	var last any
	if snapshot.Stats != nil {
		last = snapshot.Stats.LastRSI
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":   snapshot.Symbol,
		"interval": snapshot.Interval,
		"last":     last,
		"series":   snapshot.RSI,
	})
}

// getSentiment relays the latest Fear & Greed cards without interpretation
func (s *Server) getSentiment(c *gin.Context) {
	if s.sentiment == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sentiment feed is not configured"})
		return
	}

	limit := defaultSentimentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxSentimentLimit {
		limit = maxSentimentLimit
	}

	cards, err := s.sentiment.FetchLatest(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("Sentiment fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch sentiment data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cards})
}

// getSnapshots serves persisted snapshot history
func (s *Server) getSnapshots(c *gin.Context) {
	since := time.Now().Add(-defaultSnapshotsWindow)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
		since = parsed
	}

	history, err := s.service.HistorySince(c.Request.Context(), since)
	if err != nil {
		s.logger.Error("History query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshot history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": history})
}
