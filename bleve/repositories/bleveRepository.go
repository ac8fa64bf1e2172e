package repositories

import (
	"context"
	bleveindex "voter-registration-backend/bleve/services"
	"voter-registration-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	DeleteAllIndices(ctx context.Context) error

	// ==== Applicant Indexing ====
	IndexSingleApplicant(applicant models.Applicant) error
	IndexExistingApplicants(applicants []models.Applicant) error
	SearchApplicants(queryString string, votingStatus string) (*bleve.SearchResult, error)
	UpdateApplicant(applicant models.Applicant) error
	GetApplicantDocument(id string) (interface{}, error)
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
