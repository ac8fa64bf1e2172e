package repositories

import (
	"errors"
	"strings"
	"testing"
	"voter-registration-backend/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCreateApplicationWritesAllRecordsInOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationWriterRepository(db)

	form := registerForm()
	form.RegistrationType = "KATIPUNAN"
	form.AdultRegistrationDone = true
	form.HouseNumber = "12"
	form.Street = "Rizal St"
	form.Barangay = "Poblacion"
	form.City = "Quezon City"
	form.Province = "Metro Manila"
	form.YearsOfResidency = 3
	form.MonthsOfResidency = 4
	form.IsSeniorCitizen = true

	// Special sector upsert, then parent, then detail, then address.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applicant_special_sectors"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "application_registrations"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "application_declared_addresses"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	number, err := repo.CreateApplication(db, uuid.New(), form, IdPhotoURLs{
		GovtIdFront: "http://localhost:8080/uploads/government-ids/a/front.jpg",
		GovtIdBack:  "http://localhost:8080/uploads/government-ids/a/back.jpg",
		IdSelfie:    "http://localhost:8080/uploads/id-selfies/a/selfie.jpg",
	}, datatypes.JSON(`{}`))

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(number, "VR-"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationDetailFailureLeavesParentCommitted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationWriterRepository(db)

	form := registerForm()
	form.ApplicationType = "TRANSFER"
	form.PreviousBarangay = "San Isidro"
	form.PreviousCity = "Davao City"
	form.PreviousProvince = "Davao del Sur"
	form.Barangay = "Poblacion"
	form.City = "Quezon City"
	form.Province = "Metro Manila"

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// The transfer detail insert fails; the committed parent is not undone
	// and the declared address is never attempted.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "application_transfers"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	number, err := repo.CreateApplication(db, uuid.New(), form, IdPhotoURLs{}, datatypes.JSON(`{}`))
	require.Empty(t, number)

	var pe *apperrors.PersistenceError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "transfer details", pe.Record)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationTransferWithReactivationWritesBothDetails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationWriterRepository(db)

	form := registerForm()
	form.ApplicationType = "TRANSFER_WITH_REACTIVATION"
	form.PreviousBarangay = "San Isidro"
	form.PreviousCity = "Davao City"
	form.PreviousProvince = "Davao del Sur"
	form.ReasonForDeactivation = "FAILED_TO_VOTE"
	form.Barangay = "Poblacion"
	form.City = "Quezon City"
	form.Province = "Metro Manila"
	form.YearsOfResidency = 1
	form.MonthsOfResidency = 6

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "application_transfers"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "application_reactivations"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "application_declared_addresses"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := repo.CreateApplication(db, uuid.New(), form, IdPhotoURLs{}, datatypes.JSON(`{}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationCorrectionSkipsDeclaredAddress(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationWriterRepository(db)

	form := registerForm()
	form.ApplicationType = "CORRECTION_OF_ENTRY"
	form.TargetField = "last_name"
	form.CurrentValue = "Dela Crus"
	form.RequestedValue = "Dela Cruz"

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "application_corrections"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := repo.CreateApplication(db, uuid.New(), form, IdPhotoURLs{}, datatypes.JSON(`{}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationSpecialSectorFailureAbortsBeforeParent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationWriterRepository(db)

	form := registerForm()
	form.RegistrationType = "KATIPUNAN"
	form.IsPwd = true

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applicant_special_sectors"`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err := repo.CreateApplication(db, uuid.New(), form, IdPhotoURLs{}, datatypes.JSON(`{}`))

	var pe *apperrors.PersistenceError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "special sector", pe.Record)

	require.NoError(t, mock.ExpectationsWereMet())
}
