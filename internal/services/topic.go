package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillsharehub/internal/domain"
)

type topicService struct {
	topicRepo      domain.TopicRepository
	contextTimeout time.Duration
}

// NewTopicService creates a TopicService with the given repository.
func NewTopicService(topicRepo domain.TopicRepository, timeout time.Duration) domain.TopicService {
	return &topicService{
		topicRepo:      topicRepo,
		contextTimeout: timeout,
	}
}

func (s *topicService) ListTopics(ctx context.Context) ([]*domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	topics, err := s.topicRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

func (s *topicService) CreateTopic(ctx context.Context, label string) (*domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, domain.NewValidationError("label is required")
	}
	topic := &domain.Topic{Label: label}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		if errors.Is(err, domain.ErrTopicExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topic, nil
}
