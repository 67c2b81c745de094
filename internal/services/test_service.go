package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"

	"promptbench/internal/errs"
	"promptbench/internal/events"
	"promptbench/internal/models"
	"promptbench/internal/repositories"
)

// DefaultTemperature applies to a model test when neither the caller nor a
// source model test supplies one.
const DefaultTemperature = 0.7

type MessageInput struct {
	Content  string
	Included *bool
}

type CreateTestRequest struct {
	Name         string
	SystemPrompt string
	Model        string
	Temperature  float64
	Messages     []MessageInput
}

type AddModelTestRequest struct {
	TestID      string
	Model       string
	Temperature *float64
}

type UpdateResponseRequest struct {
	ResponseID string
	Rating     *models.Rating
	Notes      *string
}

type TestService interface {
	CreateTest(ctx context.Context, req CreateTestRequest, userID string) (string, error)
	AddModelTest(ctx context.Context, req AddModelTestRequest, userID string) (string, error)
	AddMessage(ctx context.Context, modelTestID, content, userID string) (*models.Message, *models.Response, error)
	ListTests(ctx context.Context) ([]models.TestSummary, error)
	GetTest(ctx context.Context, id string) (*models.Test, error)
	DeleteTest(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error
	SetMessageIncluded(ctx context.Context, id string, included bool) error
	UpdateResponse(ctx context.Context, req UpdateResponseRequest) (*models.Response, error)
}

type TestServiceConfig struct {
	// GenerationConcurrency caps parallel provider calls per request. Zero means unlimited.
	GenerationConcurrency int
}

type testService struct {
	tests      repositories.TestRepository
	modelTests repositories.ModelTestRepository
	messages   repositories.MessageRepository
	responses  repositories.ResponseRepository
	registry   ModelRegistry
	generator  GenerationService
	cfg        TestServiceConfig
	now        func() time.Time
}

func NewTestService(
	tests repositories.TestRepository,
	modelTests repositories.ModelTestRepository,
	messages repositories.MessageRepository,
	responses repositories.ResponseRepository,
	registry ModelRegistry,
	generator GenerationService,
	cfg TestServiceConfig,
) TestService {
	return &testService{
		tests:      tests,
		modelTests: modelTests,
		messages:   messages,
		responses:  responses,
		registry:   registry,
		generator:  generator,
		cfg:        cfg,
		now:        time.Now,
	}
}

func validateTemperature(t float64) string {
	if t < 0 || t > 1 {
		return "temperature must be between 0 and 1"
	}
	return ""
}

func (s *testService) validateModel(model string) string {
	if strings.TrimSpace(model) == "" {
		return "model is required"
	}
	if _, err := s.registry.ResolveProvider(model); err != nil {
		return fmt.Sprintf("model %q is not supported", model)
	}
	return ""
}

func (s *testService) CreateTest(ctx context.Context, req CreateTestRequest, userID string) (string, error) {
	var details []string
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, "name is required")
	}
	if strings.TrimSpace(req.SystemPrompt) == "" {
		details = append(details, "systemPrompt is required")
	}
	if d := s.validateModel(req.Model); d != "" {
		details = append(details, d)
	}
	if d := validateTemperature(req.Temperature); d != "" {
		details = append(details, d)
	}
	for i, m := range req.Messages {
		if strings.TrimSpace(m.Content) == "" {
			details = append(details, fmt.Sprintf("messages[%d].content is required", i))
		}
	}
	if len(details) > 0 {
		return "", errs.Invalid(details...)
	}

	base := s.now()
	mt := models.ModelTest{
		ID:          uuid.NewString(),
		Model:       req.Model,
		Temperature: req.Temperature,
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	mt.Messages = make([]models.Message, 0, len(req.Messages))
	for i, in := range req.Messages {
		included := true
		if in.Included != nil {
			included = *in.Included
		}
		mt.Messages = append(mt.Messages, newMessage(mt.ID, in.Content, included, base, i))
	}
	test := &models.Test{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		SystemPrompt: req.SystemPrompt,
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	mt.TestID = test.ID

	if err := s.generateResponses(ctx, &mt, test.SystemPrompt, userID); err != nil {
		return "", err
	}

	test.ModelTests = []models.ModelTest{mt}
	if err := s.tests.CreateTree(ctx, test); err != nil {
		return "", fmt.Errorf("service: create test: %w", err)
	}
	elog.DefaultLogger.Info("test created",
		elog.String("testId", test.ID),
		elog.String("model", mt.Model),
		elog.Int("messages", len(mt.Messages)),
		elog.String("requestId", events.RequestFromContext(ctx)),
	)
	return test.ID, nil
}

func (s *testService) AddModelTest(ctx context.Context, req AddModelTestRequest, userID string) (string, error) {
	var details []string
	if d := s.validateModel(req.Model); d != "" {
		details = append(details, d)
	}
	if req.Temperature != nil {
		if d := validateTemperature(*req.Temperature); d != "" {
			details = append(details, d)
		}
	}
	if len(details) > 0 {
		return "", errs.Invalid(details...)
	}

	test, err := s.tests.FindByID(ctx, req.TestID)
	if err != nil {
		return "", err
	}
	source, err := s.modelTests.FirstForTest(ctx, test.ID)
	if err != nil {
		return "", err
	}

	temperature := DefaultTemperature
	if source != nil {
		temperature = source.Temperature
	}
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	base := s.now()
	mt := &models.ModelTest{
		ID:          uuid.NewString(),
		TestID:      test.ID,
		Model:       req.Model,
		Temperature: temperature,
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	if source != nil {
		mt.Messages = make([]models.Message, 0, len(source.Messages))
		for i, src := range source.Messages {
			mt.Messages = append(mt.Messages, newMessage(mt.ID, src.Content, src.Included, base, i))
		}
	}

	if err := s.generateResponses(ctx, mt, test.SystemPrompt, userID); err != nil {
		return "", err
	}
	if err := s.modelTests.CreateTree(ctx, mt); err != nil {
		return "", fmt.Errorf("service: add model test: %w", err)
	}
	return mt.ID, nil
}

func (s *testService) AddMessage(ctx context.Context, modelTestID, content, userID string) (*models.Message, *models.Response, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, errs.Invalid("content is required")
	}
	mt, err := s.modelTests.FindByID(ctx, modelTestID)
	if err != nil {
		return nil, nil, err
	}
	test, err := s.tests.FindByID(ctx, mt.TestID)
	if err != nil {
		return nil, nil, err
	}

	text, err := s.generator.Generate(ctx, GenerateRequest{
		Model:        mt.Model,
		Message:      content,
		SystemPrompt: test.SystemPrompt,
		UserID:       userID,
		Temperature:  mt.Temperature,
	})
	if err != nil {
		return nil, nil, err
	}

	msg := newMessage(mt.ID, content, true, s.now(), 0)
	msg.Responses = []models.Response{newResponse(msg, mt.Model, text)}
	if err := s.messages.CreateWithResponses(ctx, &msg); err != nil {
		return nil, nil, fmt.Errorf("service: add message: %w", err)
	}
	resp := msg.Responses[0]
	msg.Responses = nil
	return &msg, &resp, nil
}

// generateResponses fills one response per message. The first failure cancels
// the remaining calls and nothing is attached.
func (s *testService) generateResponses(ctx context.Context, mt *models.ModelTest, systemPrompt, userID string) error {
	if len(mt.Messages) == 0 {
		return nil
	}
	texts := make([]string, len(mt.Messages))
	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.GenerationConcurrency > 0 {
		g.SetLimit(s.cfg.GenerationConcurrency)
	}
	for i := range mt.Messages {
		content := mt.Messages[i].Content
		g.Go(func() error {
			text, err := s.generator.Generate(gctx, GenerateRequest{
				Model:        mt.Model,
				Message:      content,
				SystemPrompt: systemPrompt,
				UserID:       userID,
				Temperature:  mt.Temperature,
			})
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		elog.DefaultLogger.Warn("response generation failed",
			elog.FieldErr(err),
			elog.String("model", mt.Model),
			elog.Int("messages", len(mt.Messages)),
			elog.String("requestId", events.RequestFromContext(ctx)),
		)
		return err
	}
	for i := range mt.Messages {
		mt.Messages[i].Responses = []models.Response{newResponse(mt.Messages[i], mt.Model, texts[i])}
	}
	return nil
}

// newMessage offsets createdAt by position so stored order matches input order.
func newMessage(modelTestID, content string, included bool, base time.Time, pos int) models.Message {
	return models.Message{
		ID:          uuid.NewString(),
		ModelTestID: modelTestID,
		Content:     content,
		Included:    included,
		CreatedAt:   base.Add(time.Duration(pos) * time.Microsecond),
	}
}

func newResponse(msg models.Message, model, content string) models.Response {
	return models.Response{
		ID:        uuid.NewString(),
		MessageID: msg.ID,
		Model:     model,
		Content:   content,
		CreatedAt: msg.CreatedAt,
	}
}

func (s *testService) ListTests(ctx context.Context) ([]models.TestSummary, error) {
	list, err := s.tests.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list tests: %w", err)
	}
	return list, nil
}

func (s *testService) GetTest(ctx context.Context, id string) (*models.Test, error) {
	return s.tests.FindTree(ctx, id)
}

func (s *testService) DeleteTest(ctx context.Context, id string) error {
	return s.tests.Delete(ctx, id)
}

func (s *testService) DeleteMessage(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}

func (s *testService) SetMessageIncluded(ctx context.Context, id string, included bool) error {
	return s.messages.SetIncluded(ctx, id, included)
}

func (s *testService) UpdateResponse(ctx context.Context, req UpdateResponseRequest) (*models.Response, error) {
	var details []string
	if strings.TrimSpace(req.ResponseID) == "" {
		details = append(details, "responseId is required")
	}
	if req.Rating != nil && !req.Rating.Valid() {
		details = append(details, fmt.Sprintf("rating must be one of %s, %s, %s", models.RatingBad, models.RatingMild, models.RatingGood))
	}
	if len(details) > 0 {
		return nil, errs.Invalid(details...)
	}

	updates := make(map[string]interface{}, 2)
	if req.Rating != nil {
		updates["rating"] = string(*req.Rating)
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return s.responses.FindByID(ctx, req.ResponseID)
	}
	return s.responses.Update(ctx, req.ResponseID, updates)
}
