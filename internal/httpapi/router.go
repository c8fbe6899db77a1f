package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// NewRouter собирает маршруты API операционной доски.
func NewRouter(resources *ResourceHandler, schedules *ScheduleHandler, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/schedule/resources", resources.List)
	mux.HandleFunc("GET /api/v1/schedule", schedules.ListEvents)
	mux.HandleFunc("GET /api/v1/schedule/board", schedules.Board)
	mux.HandleFunc("POST /api/v1/schedule/events", schedules.CreateEvent)
	mux.HandleFunc("POST /api/v1/schedule/events/{id}/cancel", schedules.CancelEvent)
	mux.HandleFunc("DELETE /api/v1/schedule/events/{id}", schedules.DeleteEvent)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return requestLogger(log, withTenant(mux))
}

// statusRecorder запоминает код ответа для лога запроса.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(log *zap.Logger, next http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
