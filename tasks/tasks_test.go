package tasks

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"voter-registration-backend/config"
	"voter-registration-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hibiken/asynq"
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

func TestNewStatusNotificationTaskCarriesPayload(t *testing.T) {
	task, err := NewStatusNotificationTask("VR-2026-0000CC01", "DISAPPROVED", "blurred ID photo")
	require.NoError(t, err)
	require.Equal(t, TypeStatusNotification, task.Type())

	var payload StatusNotificationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	require.Equal(t, "VR-2026-0000CC01", payload.ApplicationNumber)
	require.Equal(t, "DISAPPROVED", payload.NewStatus)
	require.Equal(t, "blurred ID photo", payload.DisapprovalReason)
}

func TestStatusNotificationHandlerRejectsMalformedPayload(t *testing.T) {
	db, _ := newMockDB(t)
	handler := NewStatusNotificationHandler(db)

	task := asynq.NewTask(TypeStatusNotification, []byte("{not json"))
	err := handler.ProcessTask(context.Background(), task)
	require.Error(t, err)
}

func TestStatusNotificationHandlerMissingApplication(t *testing.T) {
	db, mock := newMockDB(t)
	handler := NewStatusNotificationHandler(db)

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	task, err := NewStatusNotificationTask("VR-2026-DEADBEEF", "VERIFIED", "")
	require.NoError(t, err)

	err = handler.ProcessTask(context.Background(), task)
	require.Error(t, err)
}

func TestReapOrphanedApplicationsSoftDeletesEachType(t *testing.T) {
	db, mock := newMockDB(t)

	// One soft-delete statement per application type; rows affected vary.
	for i := 0; i < len(detailTableForType); i++ {
		mock.ExpectBegin()
		affected := int64(0)
		if i == 0 {
			affected = 3
		}
		mock.ExpectExec(`UPDATE "applications" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, affected))
		mock.ExpectCommit()
	}

	reaped, err := ReapOrphanedApplications(db)
	require.NoError(t, err)
	require.EqualValues(t, 3, reaped)

	require.NoError(t, mock.ExpectationsWereMet())
}
