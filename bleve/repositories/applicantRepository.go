package repositories

import (
	"strings"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

type bleveApplicantDocument struct {
	ID           string              `json:"id"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name"`
	FullName     string              `json:"full_name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone_number"`
	VotingStatus models.VotingStatus `json:"voting_status"`
}

func newBleveApplicantDocument(applicant models.Applicant) bleveApplicantDocument {
	return bleveApplicantDocument{
		ID:           applicant.ID.String(),
		FirstName:    applicant.FirstName,
		LastName:     applicant.LastName,
		FullName:     applicant.GetFullName(),
		Email:        applicant.UserEmail,
		Phone:        applicant.PhoneNumber,
		VotingStatus: applicant.VotingStatus,
	}
}

func (r *BleveRepository) IndexSingleApplicant(applicant models.Applicant) error {
	err := r.indexer.IndexDocument("applicants", applicant.ID.String(), newBleveApplicantDocument(applicant))
	if err != nil {
		config.Logger.Error("Failed to index applicant into Bleve", zap.Error(err), zap.String("applicant_id", applicant.ID.String()))
		return err
	}

	return nil
}

func (r *BleveRepository) IndexExistingApplicants(applicants []models.Applicant) error {
	docsToBleveIndex := make(map[string]interface{})
	for _, applicant := range applicants {
		docsToBleveIndex[applicant.ID.String()] = newBleveApplicantDocument(applicant)
	}

	if len(docsToBleveIndex) == 0 {
		config.Logger.Info("No applicants to index into Bleve.")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments("applicants", docsToBleveIndex); err != nil {
		config.Logger.Error("Failed to bulk index applicants into Bleve", zap.Error(err))
		return err
	}

	config.Logger.Info("Successfully bulk indexed applicants into Bleve", zap.Int("count", len(docsToBleveIndex)))
	return nil
}

func (r *BleveRepository) SearchApplicants(
	queryString string,
	votingStatus string,
) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	queryString = strings.TrimSpace(strings.ToLower(queryString))

	// 1. Exact Matches (Highest Priority)
	exactMatch := bleve.NewBooleanQuery()
	exactFields := []string{"full_name", "email", "phone_number"}
	for _, field := range exactFields {
		termQuery := bleve.NewTermQuery(queryString)
		termQuery.SetField(field)
		termQuery.SetBoost(6.0)
		exactMatch.AddShould(termQuery)
	}

	// 2. Phrase Matches (High Priority)
	phraseMatch := bleve.NewBooleanQuery()
	phraseFields := []string{"full_name", "first_name", "last_name"}
	for _, field := range phraseFields {
		phraseQuery := bleve.NewMatchPhraseQuery(queryString)
		phraseQuery.SetField(field)
		phraseQuery.SetBoost(5.0)
		phraseMatch.AddShould(phraseQuery)
	}

	// 3. Fuzzy Matching (Medium Priority)
	fuzzyMatch := bleve.NewBooleanQuery()
	fuzzyFields := []string{"full_name", "first_name", "last_name", "email"}
	for _, field := range fuzzyFields {
		fuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fuzzyQuery.SetField(field)
		fuzzyQuery.SetFuzziness(2)
		fuzzyQuery.SetBoost(3.0)
		fuzzyMatch.AddShould(fuzzyQuery)
	}

	// 4. Prefix Matching (Low Priority)
	prefixMatch := bleve.NewBooleanQuery()
	prefixFields := []string{"full_name", "first_name", "last_name", "phone_number"}
	for _, field := range prefixFields {
		prefixQuery := bleve.NewPrefixQuery(queryString)
		prefixQuery.SetField(field)
		prefixQuery.SetBoost(2.0)
		prefixMatch.AddShould(prefixQuery)
	}

	// 5. Wildcard Matching (Lowest Priority)
	wildcardMatch := bleve.NewBooleanQuery()
	wildcardQuery := bleve.NewWildcardQuery("*" + queryString + "*")
	wildcardQuery.SetBoost(1.0)
	wildcardMatch.AddShould(wildcardQuery)

	booleanQuery.AddShould(exactMatch)
	booleanQuery.AddShould(phraseMatch)
	booleanQuery.AddShould(fuzzyMatch)
	booleanQuery.AddShould(prefixMatch)
	booleanQuery.AddShould(wildcardMatch)

	finalQuery := bleve.NewBooleanQuery()
	finalQuery.AddMust(booleanQuery)

	if votingStatus != "" {
		statusQuery := bleve.NewTermQuery(strings.ToLower(votingStatus))
		statusQuery.SetField("voting_status")
		finalQuery.AddMust(statusQuery)
	}

	return r.indexer.SearchIndex("applicants", finalQuery, 20)
}

// UpdateApplicant replaces an applicant document in the Bleve index
func (r *BleveRepository) UpdateApplicant(applicant models.Applicant) error {
	applicantID := applicant.ID.String()

	if err := r.indexer.DeleteDocument("applicants", applicantID); err != nil {
		config.Logger.Error("Failed to delete applicant document for update in Bleve",
			zap.Error(err),
			zap.String("applicant_id", applicantID))
		return err
	}

	if err := r.IndexSingleApplicant(applicant); err != nil {
		config.Logger.Error("Failed to re-index updated applicant into Bleve",
			zap.Error(err),
			zap.String("applicant_id", applicantID))
		return err
	}

	return nil
}

func (r *BleveRepository) GetApplicantDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument("applicants", id)
}
