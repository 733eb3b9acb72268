package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolhub_backend/internals/features/home/notifications/model"
)

const notificationsDDL = `CREATE TABLE notifications (
	notification_id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' || substr(hex(randomblob(2)),2) || '-' || substr('89ab', abs(random()) % 4 + 1, 1) || substr(hex(randomblob(2)),2) || '-' || hex(randomblob(6)))),
	notification_recipient_id TEXT NOT NULL,
	notification_sender_id TEXT NOT NULL,
	notification_title TEXT NOT NULL,
	notification_message TEXT NOT NULL,
	notification_type TEXT NOT NULL,
	notification_channels TEXT,
	notification_course_id TEXT,
	notification_read_at DATETIME,
	notification_created_at DATETIME
)`

type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(topic string, _ any) {
	p.topics = append(p.topics, topic)
}

func newFanoutTestService(t *testing.T) (*FanoutService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(notificationsDDL).Error)

	pub := &recordingPublisher{}
	return NewFanoutService(db, pub), db, pub
}

func TestNotifyOneStoresRowAndPublishes(t *testing.T) {
	svc, db, pub := newFanoutTestService(t)

	recipientID, senderID, courseID := uuid.New(), uuid.New(), uuid.New()
	svc.NotifyOne(context.Background(), recipientID, senderID,
		"Schedule change approved", "Your schedule change was approved.",
		"schedule_change_approved", &courseID)

	var rows []model.NotificationModel
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, recipientID, rows[0].NotificationRecipientID)
	assert.Equal(t, senderID, rows[0].NotificationSenderID)
	assert.Equal(t, "schedule_change_approved", rows[0].NotificationType)
	assert.Equal(t, []string{model.ChannelInApp}, []string(rows[0].NotificationChannels))
	require.NotNil(t, rows[0].NotificationCourseID)
	assert.Equal(t, courseID, *rows[0].NotificationCourseID)
	assert.Nil(t, rows[0].NotificationReadAt)

	require.Len(t, pub.topics, 1)
	assert.Equal(t, "student-notifications-refresh:"+recipientID.String(), pub.topics[0])
}

func TestNotifyManyStoresOneRowPerRecipient(t *testing.T) {
	svc, db, pub := newFanoutTestService(t)

	senderID, courseID := uuid.New(), uuid.New()
	recipients := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	stored := svc.NotifyMany(context.Background(), recipients, senderID,
		"Class schedule updated", "Your class moved.", "schedule_updated", &courseID)
	assert.Equal(t, 3, stored)

	var count int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	// one event per recipient plus the course-scoped summary
	require.Len(t, pub.topics, 4)
	assert.Equal(t, "student-notifications-refresh:"+courseID.String(), pub.topics[3])
}

func TestNotifyManyEmptyRecipients(t *testing.T) {
	svc, db, pub := newFanoutTestService(t)

	stored := svc.NotifyMany(context.Background(), nil, uuid.New(),
		"Class schedule updated", "Your class moved.", "schedule_updated", nil)
	assert.Zero(t, stored)

	var count int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, pub.topics)
}
