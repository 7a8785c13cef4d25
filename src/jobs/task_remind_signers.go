package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"Backend-Procure/src/database"
	"Backend-Procure/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const TypeRemindSigners = "request:remind-signers"

// reminderDelay is how long a request may sit pending before its signers get
// nudged again.
const reminderDelay = 3 * 24 * time.Hour

func NewRemindSignersTask(requestID string) (*asynq.Task, error) {
	payload := RequestPayload{RequestID: requestID}
	payload.Normalize()

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRemindSigners, b), nil
}

func RemindSignersTaskID(requestID string) string {
	return "remind-signers-" + requestID
}

// ScheduleSignerReminder enqueues the delayed nudge for a new request. The
// task id keeps re-submissions from stacking duplicate reminders.
func ScheduleSignerReminder(requestID string) {
	if database.AsynqClient == nil {
		return
	}
	task, err := NewRemindSignersTask(requestID)
	if err != nil {
		log.Println("⚠️ Failed to build signer reminder task:", err)
		return
	}
	_, err = database.AsynqClient.Enqueue(
		task,
		asynq.ProcessIn(reminderDelay),
		asynq.TaskID(RemindSignersTaskID(requestID)),
	)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Println("⚠️ Failed to schedule signer reminder:", err)
	}
}

// HandleRemindSignersTask re-notifies signers that still have not acted. A
// request that was approved, rejected or canceled in the meantime is left
// alone.
func HandleRemindSignersTask(ctx context.Context, t *asynq.Task) error {
	var payload RequestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	id, err := primitive.ObjectIDFromHex(payload.RequestID)
	if err != nil {
		return err
	}

	var request models.Request
	err = database.RequestCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}
	if request.Status != models.RequestStatusPending {
		return nil
	}

	docs := make([]interface{}, 0, len(request.Signers))
	for _, signer := range request.Signers {
		if signer.Status != models.SignerStatusPending {
			continue
		}
		docs = append(docs, models.Notification{
			ID:           primitive.NewObjectID(),
			TeamMemberID: signer.TeamMemberID,
			RequestID:    request.ID,
			Type:         "request:pending-reminder",
			Message:      "A request has been waiting for your " + string(signer.Action) + " for 3 days",
			CreatedAt:    time.Now(),
		})
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := database.NotificationCollection.InsertMany(ctx, docs); err != nil {
		return err
	}
	emailPendingSigners(&request)

	log.Println("✅ Signer reminder sent for request:", id.Hex())
	return nil
}
