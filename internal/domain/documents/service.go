package documents

import (
	"context"
	"strings"
)

// Notifier is satisfied by the notifications package.
type Notifier interface {
	DocumentUploaded(ctx context.Context, document *Document) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) CreateDocument(ctx context.Context, input CreateDocumentInput) (*Document, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	document := Document{
		Title:      title,
		Category:   strings.TrimSpace(input.Category),
		UploadedBy: input.UploadedBy,
	}

	if err := s.repo.CreateDocument(ctx, &document); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.DocumentUploaded(ctx, &document); err != nil {
			return nil, err
		}
	}

	return &document, nil
}

func (s *Service) GetDocument(ctx context.Context, documentID uint) (*Document, error) {
	return s.repo.GetDocumentByID(ctx, documentID)
}

func (s *Service) ListDocuments(ctx context.Context, limit, offset int) ([]Document, int64, error) {
	return s.repo.ListDocuments(ctx, limit, offset)
}

// DeleteDocument removes the record. Notifications that reference it keep
// their stored id; the resolver reports the referent as missing afterwards.
func (s *Service) DeleteDocument(ctx context.Context, documentID uint) error {
	deleted, err := s.repo.DeleteDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDocumentNotFound
	}
	return nil
}
