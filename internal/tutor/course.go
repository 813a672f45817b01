package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/course"
)

// CreateCourse generates a syllabus for topic and adds the course to the
// learner's profile.
func (s *Service) CreateCourse(ctx context.Context, userID, topic string) (*course.Course, error) {
	topic = strings.TrimSpace(topic)
	p, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}

	syl, err := s.gen.Syllabus(ctx, content.Request{
		Kind:    content.KindSyllabus,
		Topic:   topic,
		Level:   p.Progress.Level,
		Profile: p.PromptContext(),
	})
	if err != nil {
		return nil, err
	}

	c := course.New(topic, syl.Modules, s.now())
	p.AddCourse(c)
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("course created", "user", p.ID, "course", c.ID, "modules", len(c.Modules))
	return p.Course(c.ID)
}

// Theory returns the theory of a module subtopic, generating and caching it
// on first use.
func (s *Service) Theory(ctx context.Context, userID, courseID, moduleID, subtopic string) (string, error) {
	p, err := s.student(ctx, userID)
	if err != nil {
		return "", err
	}
	c, err := p.Course(courseID)
	if err != nil {
		return "", err
	}
	m, err := c.Module(moduleID)
	if err != nil {
		return "", err
	}
	if !m.HasSubtopic(subtopic) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSubtopic, subtopic)
	}
	if text, ok := m.CachedTheory(subtopic); ok {
		return text, nil
	}

	text, err := s.gen.Theory(ctx, content.Request{
		Kind:    content.KindTheory,
		Topic:   subtopic,
		Level:   p.Progress.Level,
		Profile: p.PromptContext(),
	})
	if err != nil {
		return "", err
	}

	m.StoreTheory(subtopic, text)
	if err := s.Save(ctx, p); err != nil {
		// The text is still usable; the cache write is retried next time.
		s.log.Warn("theory not cached", "course", courseID, "module", moduleID, "err", err)
	}
	return text, nil
}

// Explain asks for a hint, a worked solution or a justification. Level and
// learner context come from the profile.
func (s *Service) Explain(ctx context.Context, userID string, req content.ExplainRequest) (string, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return "", err
	}
	req.Level = p.Progress.Level
	req.Profile = p.PromptContext()
	return s.gen.Explain(ctx, req)
}
