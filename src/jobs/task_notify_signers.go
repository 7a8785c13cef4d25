package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"Backend-Procure/src/database"
	"Backend-Procure/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleNotifySignersTask writes one pending-approval notification per signer
// of a freshly created request.
func HandleNotifySignersTask(ctx context.Context, t *asynq.Task) error {
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
			// request deleted before the task ran, nothing to notify
			log.Println("⚠️ Request not found. Skipping notification task:", id.Hex())
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
			Type:         "request:pending-approval",
			Message:      "A request is waiting for your " + string(signer.Action),
			CreatedAt:    time.Now(),
		})
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := database.NotificationCollection.InsertMany(ctx, docs); err != nil {
		log.Println("❌ Failed to insert notifications:", err)
		return err
	}

	emailPendingSigners(&request)

	log.Println("✅ Signers notified for request:", id.Hex())
	return nil
}

// emailPendingSigners sends one mail per pending signer when SMTP is set up.
// Mail failures are logged, not retried; the in-app notification is the
// durable channel.
func emailPendingSigners(request *models.Request) {
	sender, err := NewSMTPSenderFromEnv()
	if err != nil {
		log.Println("⚠️ Email disabled:", err)
		return
	}
	for _, signer := range request.Signers {
		if signer.Status != models.SignerStatusPending {
			continue
		}
		to := signerEmailAddress(signer)
		if to == "" {
			continue
		}
		subject, html := signerEmail(request, signer)
		if err := sender.Send(to, subject, html); err != nil {
			log.Println("❌ Failed to email signer", to, ":", err)
		}
	}
}
