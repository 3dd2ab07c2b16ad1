package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/rules"
)

type MessageInput struct {
	Content         string `json:"content" validate:"required,max=1000"`
	ParentMessageID *uint  `json:"parent_message_id"`
}

type DiscussionService struct {
	base
	dispatcher *Dispatcher
}

// Post adds a message, or a reply when ParentMessageID is set, and notifies
// everyone in the project except the author.
func (s *DiscussionService) Post(ctx context.Context, actorID, projectID uint, in MessageInput) (*models.Message, error) {
	subject, err := s.authorize(ctx, rules.CreateMessage, actorID, projectID)
	if err != nil {
		return nil, err
	}

	in.Content = strings.TrimSpace(in.Content)
	if err := s.check(in); err != nil {
		return nil, err
	}

	message := &models.Message{
		Content:   in.Content,
		ProjectID: projectID,
		UserID:    actorID,
	}

	if in.ParentMessageID != nil {
		parent, err := s.store.FindMessage(ctx, *in.ParentMessageID)
		if err != nil {
			return nil, fmt.Errorf("find parent message: %w", err)
		}
		if err := rules.MessageInProject(subject.Project, parent); err != nil {
			return nil, rules.NotFound("parent message not found in this project")
		}
		message.ParentMessageID = &parent.ID
	}

	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	members, err := s.store.ListTeamMembers(ctx, projectID)
	if err != nil {
		// The message is posted; only the fan-out is lost.
		s.log.Error().Err(err).Uint("message_id", message.ID).Msg("failed to load recipients")
		return message, nil
	}

	s.dispatcher.Dispatch(ctx, Batch{
		Project:  *subject.Project,
		Summary:  fmt.Sprintf("%s posted a new message", message.User.Name),
		Commands: rules.MessagePosted(*subject.Project, actorID, members),
	})

	return message, nil
}

// Threads returns the project's discussion, newest thread first and each
// thread's replies oldest first.
func (s *DiscussionService) Threads(ctx context.Context, actorID, projectID uint) ([]rules.Thread, error) {
	if _, err := s.authorize(ctx, rules.ViewMessage, actorID, projectID); err != nil {
		return nil, err
	}

	messages, err := s.store.ListThreads(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	rules.OrderThreads(messages)

	threads := make([]rules.Thread, 0, len(messages))
	for _, m := range messages {
		threads = append(threads, rules.NewThread(m))
	}
	return threads, nil
}

// Thread returns one message with its replies, oldest reply first.
func (s *DiscussionService) Thread(ctx context.Context, actorID, projectID, messageID uint) (rules.Thread, error) {
	subject, err := s.authorize(ctx, rules.ViewMessage, actorID, projectID)
	if err != nil {
		return rules.Thread{}, err
	}

	message, err := s.store.FindMessage(ctx, messageID)
	if err != nil {
		return rules.Thread{}, fmt.Errorf("find message: %w", err)
	}
	if err := rules.MessageInProject(subject.Project, message); err != nil {
		return rules.Thread{}, err
	}

	return rules.NewThread(*message), nil
}

// Delete removes the actor's own message and every reply below it.
func (s *DiscussionService) Delete(ctx context.Context, actorID, projectID, messageID uint) error {
	subject, err := s.subject(ctx, actorID, projectID)
	if err != nil {
		return err
	}

	if subject.Project != nil {
		subject.Message, err = s.store.FindMessage(ctx, messageID)
		if err != nil {
			return fmt.Errorf("find message: %w", err)
		}
	}

	if err := rules.Authorize(rules.DeleteMessage, actorID, subject); err != nil {
		return err
	}

	if err := s.store.DeleteMessage(ctx, messageID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
