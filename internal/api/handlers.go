package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tubewarden/tubewarden/internal/auth"
	"github.com/tubewarden/tubewarden/internal/config"
	"github.com/tubewarden/tubewarden/internal/database"
	"github.com/tubewarden/tubewarden/internal/domain"
	"github.com/tubewarden/tubewarden/internal/ingest"
	"github.com/tubewarden/tubewarden/internal/logger"
	"github.com/tubewarden/tubewarden/internal/moderation"
	"github.com/tubewarden/tubewarden/internal/platform"
	"github.com/tubewarden/tubewarden/internal/sentiment"
	"github.com/tubewarden/tubewarden/internal/spam"
	"github.com/tubewarden/tubewarden/internal/telemetry"
)

const sessionCookie = "tubewarden_session"

// Handler handles HTTP requests for the moderation API. Platform access is
// per session: each request resolves its own client through the factory, so
// two signed-in creators never share credentials.
type Handler struct {
	factory    platform.Factory
	classifier *spam.Classifier
	scorer     *sentiment.Scorer
	writer     moderation.ReplyWriter
	history    *database.HistoryRepository
	sessions   *auth.Store
	cfg        config.ServiceConfig
	logger     logger.Logger
	telemetry  *telemetry.Provider
}

// NewHandler creates an API handler. history may be nil when the audit
// database is disabled.
func NewHandler(
	factory platform.Factory,
	classifier *spam.Classifier,
	scorer *sentiment.Scorer,
	writer moderation.ReplyWriter,
	history *database.HistoryRepository,
	sessions *auth.Store,
	cfg config.ServiceConfig,
	log logger.Logger,
	tp *telemetry.Provider,
) *Handler {
	return &Handler{
		factory:    factory,
		classifier: classifier,
		scorer:     scorer,
		writer:     writer,
		history:    history,
		sessions:   sessions,
		cfg:        cfg,
		logger:     log,
		telemetry:  tp,
	}
}

// sessionClient resolves the request's session cookie to a platform client.
func (h *Handler) sessionClient(c *gin.Context) (platform.Client, bool) {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}

	client, err := h.factory.ClientForSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return client, true
}

func (h *Handler) executor(client platform.Client) *moderation.Executor {
	return moderation.NewExecutor(client, h.writer, h.batchRecorder(), h.logger, h.telemetry)
}

// batchRecorder and runRecorder return nil interfaces, not typed nil
// pointers, when history is disabled.
func (h *Handler) batchRecorder() moderation.Recorder {
	if h.history == nil {
		return nil
	}
	return h.history
}

func (h *Handler) runRecorder() ingest.Recorder {
	if h.history == nil {
		return nil
	}
	return h.history
}

// GetModerationQueue handles GET /api/v1/moderation/queue. It runs one
// ingestion pass over the signed-in channel and returns the partitioned
// queue.
func (h *Handler) GetModerationQueue(c *gin.Context) {
	client, ok := h.sessionClient(c)
	if !ok {
		return
	}

	svc := ingest.NewService(
		client,
		h.classifier,
		h.scorer,
		h.runRecorder(),
		h.cfg.Concurrency,
		h.cfg.MaxComments,
		h.logger,
		h.telemetry,
	)

	items, err := svc.Ingest(c.Request.Context())
	if err != nil {
		h.logger.Error("ingestion pass failed", logger.Error(err))
		h.respondError(c, err)
		return
	}

	queue := domain.Partition(items)
	h.logger.Info("moderation queue built",
		logger.Int("legitimate", len(queue.Legitimate)),
		logger.Int("spam", len(queue.Spam)),
	)

	c.JSON(http.StatusOK, toQueueResponse(queue))
}

// DeleteComments handles POST /api/v1/comments/delete.
func (h *Handler) DeleteComments(c *gin.Context) {
	var req DeleteCommentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid delete request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, ok := h.sessionClient(c)
	if !ok {
		return
	}

	result, err := h.executor(client).DeleteMany(c.Request.Context(), req.CommentIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDeleteResponse(result))
}

// PostComment handles POST /api/v1/comments.
func (h *Handler) PostComment(c *gin.Context) {
	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post comment request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, ok := h.sessionClient(c)
	if !ok {
		return
	}

	comment, err := h.executor(client).PostThread(c.Request.Context(), req.VideoID, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// PostReply handles POST /api/v1/comments/reply.
func (h *Handler) PostReply(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reply request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, ok := h.sessionClient(c)
	if !ok {
		return
	}

	comment, err := h.executor(client).Reply(c.Request.Context(), req.CommentID, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// GenerateReply handles POST /api/v1/replies/generate. It does not touch the
// platform, only the language model, so no session client is needed beyond
// authentication.
func (h *Handler) GenerateReply(c *gin.Context) {
	var req GenerateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate reply request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, ok := h.sessionClient(c)
	if !ok {
		return
	}

	reply, err := h.executor(client).GenerateReply(c.Request.Context(), req.CommentText)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateReplyResponse{Reply: reply})
}

// GetModerationStats handles GET /api/v1/moderation/stats. It reads the
// aggregate audit trail and needs no platform session.
func (h *Handler) GetModerationStats(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "moderation history is not enabled"})
		return
	}

	stats, err := h.history.GetBatchStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read moderation stats", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toStatsResponse(stats))
}

// respondError translates domain errors to HTTP status codes. Unrecognized
// errors get a generic 500 so upstream details never leak to clients.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAuthExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, sign in again"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.Is(err, domain.ErrModelUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "reply generation is temporarily unavailable"})
	default:
		if ue, ok := domain.AsUpstream(err); ok {
			h.logger.Error("upstream request failed",
				logger.Int("code", ue.Code),
				logger.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream platform error"})
			return
		}
		h.logger.Error("request failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
