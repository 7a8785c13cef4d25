package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const TypeNotifySigners = "request:notify-signers"

type RequestPayload struct {
	RequestID string `json:"requestId"`
}

func (p *RequestPayload) Normalize() {
	p.RequestID = strings.TrimSpace(p.RequestID)
}

func NewNotifySignersTask(requestID string) (*asynq.Task, error) {
	payload := RequestPayload{RequestID: requestID}
	payload.Normalize()

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifySigners, b), nil
}

func NotifySignersTaskID(requestID string) string {
	return "notify-signers-" + strings.TrimSpace(requestID)
}
