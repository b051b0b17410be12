package comms

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"church-admin-be/internal/domain"
	"church-admin-be/internal/repository"
)

type Service interface {
	List(ctx context.Context) ([]domain.MessageTemplate, error)
	Get(ctx context.Context, name, channel string) (*domain.MessageTemplate, error)
	Upsert(ctx context.Context, name string, input domain.UpsertTemplateInput) (*domain.MessageTemplate, error)
	SeedDefaults(ctx context.Context, path string) error
}

type service struct {
	templateRepo repository.TemplateRepository
}

func NewService(templateRepo repository.TemplateRepository) Service {
	return &service{templateRepo: templateRepo}
}

func (s *service) List(ctx context.Context) ([]domain.MessageTemplate, error) {
	return s.templateRepo.List(ctx)
}

func (s *service) Get(ctx context.Context, name, channel string) (*domain.MessageTemplate, error) {
	template, err := s.templateRepo.GetByNameAndChannel(ctx, name, channel)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrTemplateNotFound
	}
	return template, nil
}

func (s *service) Upsert(ctx context.Context, name string, input domain.UpsertTemplateInput) (*domain.MessageTemplate, error) {
	template := &domain.MessageTemplate{
		TemplateName: name,
		Channel:      input.Channel,
		Subject:      input.Subject,
		Body:         input.Body,
	}
	if err := s.templateRepo.Upsert(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

type seedFile struct {
	Templates []struct {
		TemplateName string `yaml:"template_name"`
		Channel      string `yaml:"channel"`
		Subject      string `yaml:"subject"`
		Body         string `yaml:"body"`
	} `yaml:"templates"`
}

// SeedDefaults inserts the stock templates a fresh tenant needs. Existing
// rows are never overwritten, so tenant edits survive restarts.
func (s *service) SeedDefaults(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template seed file: %w", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse template seed file: %w", err)
	}

	for _, seed := range seeds.Templates {
		template := &domain.MessageTemplate{
			TemplateName: seed.TemplateName,
			Channel:      seed.Channel,
			Subject:      seed.Subject,
			Body:         seed.Body,
		}
		inserted, err := s.templateRepo.InsertIfAbsent(ctx, template)
		if err != nil {
			return fmt.Errorf("failed to seed template %s: %w", seed.TemplateName, err)
		}
		if inserted {
			log.Printf("Seeded default template %s (%s)", seed.TemplateName, seed.Channel)
		}
	}

	return nil
}
