package documents

import "context"

type Repository interface {
	CreateDocument(ctx context.Context, document *Document) error
	GetDocumentByID(ctx context.Context, documentID uint) (*Document, error)
	ListDocuments(ctx context.Context, limit, offset int) ([]Document, int64, error)
	DeleteDocument(ctx context.Context, documentID uint) (bool, error)
}
