package jobs

import (
	"log"

	"Backend-Procure/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the Asynq consumer. It blocks, so callers start it on its
// own goroutine. A missing Redis means no worker, not a crash.
func StartWorker() {
	if database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Background worker will not start.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotifySigners, HandleNotifySignersTask)
	mux.HandleFunc(TypeRemindSigners, HandleRemindSignersTask)

	log.Println("✅ Background worker started")
	if err := srv.Run(mux); err != nil {
		log.Fatal("❌ Asynq worker error:", err)
	}
}
