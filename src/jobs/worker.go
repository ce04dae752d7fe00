package jobs

import (
	"log"

	"github.com/hibiken/asynq"

	"Backend-Reward-Pipeline/src/database"
	"Backend-Reward-Pipeline/src/services/email"
	"Backend-Reward-Pipeline/src/services/submissions"
)

// StartWorker runs the asynq worker in-process. Call only after InitRedis
// succeeded; the worker handles the rejection-email task.
func StartWorker(emailSvc *email.Service, store *submissions.Service) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI, Password: database.RedisClient.Options().Password},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(email.TypeSendAbuse, email.HandleSendAbuseTask(emailSvc, store))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Asynq worker stopped:", err)
		}
	}()
	log.Println("✅ Asynq worker started")
}
