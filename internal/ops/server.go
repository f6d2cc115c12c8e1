package ops

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kontestis/evaluator/internal/scheduler"
)

// occupancy is what /healthz reports: total sandbox slots, how many are
// currently in use, and the work queue's current depth, so an orchestrator
// can judge load without reading logs.
type occupancy struct {
	Capacity   int   `json:"capacity"`
	Free       int   `json:"free"`
	InUse      int   `json:"in_use"`
	QueueDepth int64 `json:"queue_depth"`
}

// NewServer builds the worker's ops HTTP server: a single /healthz route
// reporting scheduler occupancy and work-queue depth, wired with the same
// middleware stack the teacher's API server uses (request logging + panic
// recovery).
func NewServer(addr string, capacity uint8, sched *scheduler.Scheduler, redisClient *redis.Client, queueKey string, logger *logrus.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		free := sched.FreeCount()

		depth, err := redisClient.LLen(req.Context(), queueKey).Result()
		if err != nil {
			logger.WithError(err).Warn("failed to read queue depth for /healthz")
		}

		body, err := json.Marshal(occupancy{
			Capacity:   int(capacity),
			Free:       free,
			InUse:      int(capacity) - free,
			QueueDepth: depth,
		})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})

	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
