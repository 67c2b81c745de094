package server

import (
	"time"

	"github.com/samber/lo"

	"promptbench/internal/models"
	"promptbench/internal/services"
)

type MessageReq struct {
	Content  string `json:"content"`
	Included *bool  `json:"included"`
}

type CreateTestReq struct {
	Name         string       `json:"name"`
	SystemPrompt string       `json:"systemPrompt"`
	Model        string       `json:"model"`
	Temperature  *float64     `json:"temperature" binding:"required"`
	Messages     []MessageReq `json:"messages"`
}

func (r CreateTestReq) toService() services.CreateTestRequest {
	return services.CreateTestRequest{
		Name:         r.Name,
		SystemPrompt: r.SystemPrompt,
		Model:        r.Model,
		Temperature:  lo.FromPtr(r.Temperature),
		Messages: lo.Map(r.Messages, func(m MessageReq, _ int) services.MessageInput {
			return services.MessageInput{Content: m.Content, Included: m.Included}
		}),
	}
}

type AddModelTestReq struct {
	Model       string   `json:"model" binding:"required"`
	Temperature *float64 `json:"temperature"`
}

type AddMessageReq struct {
	Content string `json:"content" binding:"required"`
}

type SetIncludedReq struct {
	Included *bool `json:"included" binding:"required"`
}

type UpdateResponseReq struct {
	ResponseID string  `json:"responseId" binding:"required"`
	Rating     *string `json:"rating"`
	Notes      *string `json:"notes"`
}

type GenerateReq struct {
	Count        int    `json:"count"`
	SystemPrompt string `json:"systemPrompt"`
	Model        string `json:"model"`
}

type StoreKeyReq struct {
	Provider string `json:"provider" binding:"required"`
	Key      string `json:"key" binding:"required"`
}

type IDResult struct {
	ID string `json:"id"`
}

type SuccessResult struct {
	Success bool `json:"success"`
}

type TestSummaryVO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"systemPrompt"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int64     `json:"messageCount"`
}

type ResponseVO struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	Model     string    `json:"model"`
	Content   string    `json:"content"`
	Notes     *string   `json:"notes"`
	Rating    *string   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageVO struct {
	ID          string       `json:"id"`
	ModelTestID string       `json:"modelTestId"`
	Content     string       `json:"content"`
	Included    bool         `json:"included"`
	CreatedAt   time.Time    `json:"createdAt"`
	Responses   []ResponseVO `json:"responses"`
}

type ModelTestVO struct {
	ID          string      `json:"id"`
	Model       string      `json:"model"`
	ModelName   string      `json:"modelName"`
	Temperature float64     `json:"temperature"`
	CreatedAt   time.Time   `json:"createdAt"`
	Messages    []MessageVO `json:"messages"`
}

type TestVO struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	SystemPrompt string        `json:"systemPrompt"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	ModelTests   []ModelTestVO `json:"modelTests"`
}

type AddMessageResult struct {
	Message  MessageVO  `json:"message"`
	Response ResponseVO `json:"response"`
}

func newResponseVO(r models.Response) ResponseVO {
	vo := ResponseVO{
		ID:        r.ID,
		MessageID: r.MessageID,
		Model:     r.Model,
		Content:   r.Content,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
	if r.Rating != nil {
		vo.Rating = lo.ToPtr(string(*r.Rating))
	}
	return vo
}

func newMessageVO(m models.Message) MessageVO {
	return MessageVO{
		ID:          m.ID,
		ModelTestID: m.ModelTestID,
		Content:     m.Content,
		Included:    m.Included,
		CreatedAt:   m.CreatedAt,
		Responses: lo.Map(m.Responses, func(r models.Response, _ int) ResponseVO {
			return newResponseVO(r)
		}),
	}
}

func newTestVO(t *models.Test, registry services.ModelRegistry) TestVO {
	return TestVO{
		ID:           t.ID,
		Name:         t.Name,
		SystemPrompt: t.SystemPrompt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		ModelTests: lo.Map(t.ModelTests, func(mt models.ModelTest, _ int) ModelTestVO {
			return ModelTestVO{
				ID:          mt.ID,
				Model:       mt.Model,
				ModelName:   registry.DisplayName(mt.Model),
				Temperature: mt.Temperature,
				CreatedAt:   mt.CreatedAt,
				Messages:    lo.Map(mt.Messages, func(m models.Message, _ int) MessageVO { return newMessageVO(m) }),
			}
		}),
	}
}
