package repositories

import (
	"os"
	"testing"
	"voter-registration-backend/bleve/services"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestRepo(t *testing.T) *BleveRepository {
	t.Helper()
	indexer := services.NewIndexingService(zap.NewNop(), t.TempDir())
	repo, _ := NewBleveRepository(indexer)
	return repo
}

func testApplicant() models.Applicant {
	return models.Applicant{
		ID:           uuid.New(),
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		UserEmail:    "juan.delacruz@example.com",
		PhoneNumber:  "+639171234567",
		VotingStatus: models.NotYetActiveVoter,
	}
}

func TestIndexSingleApplicantStoresDocument(t *testing.T) {
	repo := newTestRepo(t)
	applicant := testApplicant()

	require.NoError(t, repo.IndexSingleApplicant(applicant))

	doc, err := repo.GetApplicantDocument(applicant.ID.String())
	require.NoError(t, err)

	fields, ok := doc.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, applicant.UserEmail, fields["email"])
}

func TestUpdateApplicantRefreshesVotingStatus(t *testing.T) {
	repo := newTestRepo(t)
	applicant := testApplicant()

	require.NoError(t, repo.IndexSingleApplicant(applicant))

	// Approval flips the voting status; the search document follows.
	applicant.VotingStatus = models.ActiveVoter
	require.NoError(t, repo.UpdateApplicant(applicant))

	doc, err := repo.GetApplicantDocument(applicant.ID.String())
	require.NoError(t, err)

	fields, ok := doc.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, string(models.ActiveVoter), fields["voting_status"])
}
