package document

import (
	"context"
	"fmt"

	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
)

type documentServiceImpl struct {
	documentRepo document.DocumentRepository
	userService  user.UserService
}

func NewDocumentService(documentRepo document.DocumentRepository, userService user.UserService) document.DocumentService {
	return &documentServiceImpl{
		documentRepo: documentRepo,
		userService:  userService,
	}
}

func (s *documentServiceImpl) FindAllForUser(ctx context.Context) ([]document.Document, error) {
	current, err := s.userService.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.GetByOwnerID(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for user %d: %w", current.ID, err)
	}

	return docs, nil
}
