package repositories

import (
	"errors"
	"os"
	"testing"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	if err := utils.InitializeDateLocation(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func testOfficer() *models.Officer {
	return &models.Officer{
		ID:        uuid.New(),
		Email:     "officer@comelec.gov.ph",
		FirstName: "Elena",
		LastName:  "Reyes",
		Active:    true,
	}
}

func expectApplicationFetch(mock sqlmock.Sqlmock, applicationNumber string, applicantID uuid.UUID) {
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_number", "applicant_id", "status"}).
			AddRow(uuid.New().String(), applicationNumber, applicantID.String(), "PENDING"))
}

func TestUpdateApplicationStatusVerifiesAndStampsProcessingDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	expectApplicationFetch(mock, "VR-2026-0000AA01", uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "officer_assignments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	application, err := repo.UpdateApplicationStatus(testOfficer(), "VR-2026-0000AA01", models.VerifiedApplication, nil)
	require.NoError(t, err)
	require.Equal(t, models.VerifiedApplication, application.Status)
	require.NotNil(t, application.ProcessingDate)
	require.Nil(t, application.DisapprovalReason)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusBackToPendingClearsProcessingDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	expectApplicationFetch(mock, "VR-2026-0000AA02", uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "officer_assignments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	application, err := repo.UpdateApplicationStatus(testOfficer(), "VR-2026-0000AA02", models.PendingApplication, nil)
	require.NoError(t, err)
	require.Equal(t, models.PendingApplication, application.Status)
	require.Nil(t, application.ProcessingDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusDisapprovalRequiresReason(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	// No expectations: the empty reason is rejected before anything is
	// fetched or written.
	for _, reason := range []*string{nil, utils.StringPtr(""), utils.StringPtr("   ")} {
		_, err := repo.UpdateApplicationStatus(testOfficer(), "VR-2026-0000AA03", models.DisapprovedApplication, reason)

		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusDisapprovalStoresTrimmedReason(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	expectApplicationFetch(mock, "VR-2026-0000AA04", uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "officer_assignments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	reason := "  incomplete supporting documents  "
	application, err := repo.UpdateApplicationStatus(testOfficer(), "VR-2026-0000AA04", models.DisapprovedApplication, &reason)
	require.NoError(t, err)
	require.Equal(t, models.DisapprovedApplication, application.Status)
	require.NotNil(t, application.DisapprovalReason)
	require.Equal(t, "incomplete supporting documents", *application.DisapprovalReason)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusRequiresOfficerForNonPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	_, err := repo.UpdateApplicationStatus(nil, "VR-2026-0000AA05", models.VerifiedApplication, nil)

	var pe *apperrors.PermissionError
	require.ErrorAs(t, err, &pe)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusRejectsUnknownStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	_, err := repo.UpdateApplicationStatus(testOfficer(), "VR-2026-0000AA06", models.ApplicationStatus("ARCHIVED"), nil)

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusSurvivesAssignmentFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	expectApplicationFetch(mock, "VR-2026-0000AA07", uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// The assignment upsert fails; the status change still stands.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "officer_assignments"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	application, err := repo.UpdateApplicationStatus(testOfficer(), "VR-2026-0000AA07", models.VerifiedApplication, nil)
	require.NoError(t, err)
	require.Equal(t, models.VerifiedApplication, application.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationRemarksNullsEmptyValue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	expectApplicationFetch(mock, "VR-2026-0000AA08", uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	application, err := repo.UpdateApplicationRemarks("VR-2026-0000AA08", "   ")
	require.NoError(t, err)
	require.NotNil(t, application)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusMissingApplication(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfficerRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.UpdateApplicationStatus(testOfficer(), "VR-2026-DEADBEEF", models.VerifiedApplication, nil)
	require.True(t, apperrors.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
