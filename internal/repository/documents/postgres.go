package documents

import (
	"context"
	"errors"

	documentsdomain "club-app-go/internal/domain/documents"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateDocument(ctx context.Context, document *documentsdomain.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *PostgresRepository) GetDocumentByID(ctx context.Context, documentID uint) (*documentsdomain.Document, error) {
	var document documentsdomain.Document
	if err := r.db.WithContext(ctx).First(&document, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documentsdomain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

func (r *PostgresRepository) ListDocuments(ctx context.Context, limit, offset int) ([]documentsdomain.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&documentsdomain.Document{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var items []documentsdomain.Document
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) DeleteDocument(ctx context.Context, documentID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&documentsdomain.Document{}, documentID)
	return result.RowsAffected > 0, result.Error
}
