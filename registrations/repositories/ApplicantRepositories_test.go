package repositories

import (
	"os"
	"testing"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/registrations/requests"
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

func registerForm() *requests.SubmitApplicationRequest {
	return &requests.SubmitApplicationRequest{
		UserEmail:       "juan.delacruz@example.com",
		ApplicationType: "REGISTER",
		FirstName:       "Juan",
		LastName:        "Dela Cruz",
		DateOfBirth:     "1995-06-15",
		Sex:             "MALE",
		CivilStatus:     "SINGLE",
		Citizenship:     "Filipino",
		PhoneNumber:     "+639171234567",
		FatherFirstName: "Pedro",
		FatherLastName:  "Dela Cruz",
		MotherFirstName: "Maria",
		MotherLastName:  "Santos",
	}
}

func TestResolveForRegistrationCreatesNewApplicant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicantRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "applicants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email"}))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applicants"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	applicant, err := repo.ResolveForRegistration(db, "juan.delacruz@example.com", registerForm())
	require.NoError(t, err)
	require.NotNil(t, applicant)
	require.Equal(t, "juan.delacruz@example.com", applicant.UserEmail)
	require.NotNil(t, applicant.FatherName)
	require.Equal(t, "Pedro Dela Cruz", *applicant.FatherName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveForRegistrationBlockedByPendingApplication(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicantRepository(db)
	applicantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applicants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email"}).
			AddRow(applicantID.String(), "juan.delacruz@example.com"))

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "application_type", "status"}).
			AddRow(uuid.New().String(), applicantID.String(), "REGISTER", "PENDING"))

	applicant, err := repo.ResolveForRegistration(db, "juan.delacruz@example.com", registerForm())
	require.Nil(t, applicant)

	var dup *apperrors.DuplicateSubmissionError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "PENDING", dup.BlockingStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveForRegistrationBlockedByVerifiedApplication(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicantRepository(db)
	applicantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applicants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email"}).
			AddRow(applicantID.String(), "juan.delacruz@example.com"))

	// A verified application blocks even when a disapproved one also exists.
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "application_type", "status"}).
			AddRow(uuid.New().String(), applicantID.String(), "REGISTER", "DISAPPROVED").
			AddRow(uuid.New().String(), applicantID.String(), "REGISTER", "VERIFIED"))

	_, err := repo.ResolveForRegistration(db, "juan.delacruz@example.com", registerForm())

	var dup *apperrors.DuplicateSubmissionError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "VERIFIED", dup.BlockingStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveForRegistrationBlockedByApprovedApplication(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicantRepository(db)
	applicantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applicants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email"}).
			AddRow(applicantID.String(), "juan.delacruz@example.com"))

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "application_type", "status"}).
			AddRow(uuid.New().String(), applicantID.String(), "REGISTER", "APPROVED"))

	_, err := repo.ResolveForRegistration(db, "juan.delacruz@example.com", registerForm())

	var approved *apperrors.AlreadyApprovedError
	require.ErrorAs(t, err, &approved)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveForRegistrationUpdatesAfterDisapproval(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicantRepository(db)
	applicantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applicants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email"}).
			AddRow(applicantID.String(), "juan.delacruz@example.com"))

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "application_type", "status"}).
			AddRow(uuid.New().String(), applicantID.String(), "REGISTER", "DISAPPROVED"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applicants"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applicant, err := repo.ResolveForRegistration(db, "juan.delacruz@example.com", registerForm())
	require.NoError(t, err)
	require.Equal(t, applicantID, applicant.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveForRegistrationReusesApplicantWithoutRegisterHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicantRepository(db)
	applicantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applicants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email"}).
			AddRow(applicantID.String(), "juan.delacruz@example.com"))

	// Only non-register applications on file; the row is reused untouched.
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "application_type", "status"}))

	applicant, err := repo.ResolveForRegistration(db, "juan.delacruz@example.com", registerForm())
	require.NoError(t, err)
	require.Equal(t, applicantID, applicant.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVotingStatusWritesStatusFlag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicantRepository(db)
	applicantID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applicants"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateVotingStatus(db, applicantID, models.ActiveVoter)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
