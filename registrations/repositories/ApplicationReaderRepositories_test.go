package repositories

import (
	"testing"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/db/models"
	"voter-registration-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFlattenApplicationSplitsCompositeFields(t *testing.T) {
	father := "Pedro Dela Cruz"
	mother := "Maria Santos"
	application := &models.Application{
		ApplicationNumber: "VR-2026-0000ABCD",
		ApplicationType:   models.RegisterApplication,
		Status:            models.PendingApplication,
		SubmissionDate:    time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		Applicant: models.Applicant{
			FirstName:        "Juan",
			LastName:         "Dela Cruz",
			DateOfBirth:      time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
			Sex:              "MALE",
			CivilStatus:      "SINGLE",
			Citizenship:      "Filipino",
			PhoneNumber:      "+639171234567",
			FatherName:       &father,
			MotherMaidenName: &mother,
		},
		DeclaredAddress: &models.ApplicationDeclaredAddress{
			HouseNumberStreet: "12 Rizal St",
			Barangay:          "Poblacion",
			City:              "Quezon City",
			Province:          "Metro Manila",
		},
	}

	flat := flattenApplication(application)

	require.Equal(t, "VR-2026-0000ABCD", flat.ApplicationNumber)
	require.Equal(t, "1995-06-15", flat.DateOfBirth)

	// Composite columns split back at the first space. The split is lossy:
	// everything after the first token lands in the second part.
	require.Equal(t, "12", flat.HouseNumber)
	require.Equal(t, "Rizal St", flat.Street)
	require.Equal(t, "Pedro", flat.FatherFirstName)
	require.Equal(t, "Dela Cruz", flat.FatherLastName)
	require.Equal(t, "Maria", flat.MotherFirstName)
	require.Equal(t, "Santos", flat.MotherLastName)
}

func TestFlattenApplicationSpacelessCompositeLandsInFirstPart(t *testing.T) {
	application := &models.Application{
		ApplicationNumber: "VR-2026-0000ABCE",
		ApplicationType:   models.RegisterApplication,
		Status:            models.PendingApplication,
		SubmissionDate:    time.Now(),
		DeclaredAddress: &models.ApplicationDeclaredAddress{
			HouseNumberStreet: "Sitio-Kaunlaran",
		},
	}

	flat := flattenApplication(application)

	require.Equal(t, "Sitio-Kaunlaran", flat.HouseNumber)
	require.Empty(t, flat.Street)
}

func TestFlattenApplicationToleratesMissingRelations(t *testing.T) {
	application := &models.Application{
		ApplicationNumber: "VR-2026-0000ABCF",
		ApplicationType:   models.CorrectionOfEntryApplication,
		Status:            models.VerifiedApplication,
		SubmissionDate:    time.Now(),
		Correction: &models.ApplicationCorrection{
			TargetField:    "last_name",
			RequestedValue: "Dela Cruz",
		},
	}

	flat := flattenApplication(application)

	require.Equal(t, "last_name", flat.TargetField)
	require.Empty(t, flat.HouseNumber)
	require.Empty(t, flat.RegistrationType)
	require.False(t, flat.IsPwd)
}

func TestFlattenApplicationFormatsProcessingAndHearingDates(t *testing.T) {
	processed := time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)
	hearing := utils.DateOnly(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	application := &models.Application{
		ApplicationNumber: "VR-2026-0000ABD0",
		ApplicationType:   models.ReinstatementApplication,
		Status:            models.VerifiedApplication,
		SubmissionDate:    time.Now(),
		ProcessingDate:    &processed,
		ErbHearingDate:    &hearing,
		Reinstatement: &models.ApplicationReinstatement{
			ReinstatementType: "COURT_ORDER",
		},
	}

	flat := flattenApplication(application)

	require.NotNil(t, flat.ProcessingDate)
	require.Equal(t, processed.Format(time.RFC3339), *flat.ProcessingDate)
	require.NotNil(t, flat.ErbHearingDate)
	require.Equal(t, "2026-09-01", *flat.ErbHearingDate)
	require.Equal(t, "COURT_ORDER", flat.ReinstatementType)
}

func TestGetByApplicationNumberNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationReaderRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_number"}))

	flat, err := repo.GetByApplicationNumber("VR-2026-DEADBEEF")
	require.Nil(t, flat)
	require.True(t, apperrors.IsNotFound(err))
}

func TestGetFilteredApplicationsAppliesPagination(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationReaderRepository(db)
	applicantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "applicant_id", "application_number", "status"}).
			AddRow(uuid.New().String(), applicantID.String(), "VR-2026-0000ABD1", "PENDING"))

	mock.ExpectQuery(`SELECT \* FROM "applicants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(applicantID.String()))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	apps, total, err := repo.GetFilteredApplications(map[string]string{"status": "PENDING"}, true, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 12, total)
	require.Len(t, apps, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}
