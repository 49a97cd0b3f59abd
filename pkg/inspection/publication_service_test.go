package inspection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPublication(t *testing.T, svc *Services, ownerID string, mutate func(*Publication)) *Publication {
	t.Helper()
	pub := &Publication{
		OwnerID:      ownerID,
		Type:         TypeInspectionReminder,
		Title:        "Inspection due",
		Content:      "Your vehicle inspection is due.",
		ScheduledFor: time.Now().Add(24 * time.Hour),
		Priority:     PriorityMedium,
		SendEmail:    true,
	}
	if mutate != nil {
		mutate(pub)
	}
	created, err := svc.Publications.Create(pub)
	require.NoError(t, err)
	return created
}

func TestPublicationService_CreateRequiresOwner(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.Publications.Create(&Publication{OwnerID: "nobody", Type: TypeSystemUpdate})
	require.ErrorIs(t, err, ErrOwnerNotFound)

	owner := seedOwner(t, svc, "DL-P1")
	pub := seedPublication(t, svc, owner.ID, func(p *Publication) {
		// A submitted status is ignored; new publications start PENDING.
		p.Status = DeliveryDelivered
	})
	assert.Equal(t, DeliveryPending, pub.Status)
	assert.False(t, pub.Read)
	assert.Equal(t, "Maria Petrova", pub.RecipientName)
	assert.Equal(t, "DL-P1@example.com", pub.RecipientEmail)
}

func TestPublicationService_ReadFlags(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P2")
	pub := seedPublication(t, svc, owner.ID, nil)

	read, err := svc.Publications.MarkAsRead(pub.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)
	require.NotNil(t, read.ReadAt)

	unread, err := svc.Publications.MarkAsUnread(pub.ID)
	require.NoError(t, err)
	assert.False(t, unread.Read)
	assert.Nil(t, unread.ReadAt)

	seedPublication(t, svc, owner.ID, nil)
	count, err := svc.Publications.CountUnread(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.Publications.MarkAllAsRead(owner.ID))
	count, err = svc.Publications.CountUnread(owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	metrics, err := svc.Publications.OwnerEngagementMetrics(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), metrics.Total)
	assert.Equal(t, int64(2), metrics.Read)
	assert.Zero(t, metrics.Unread)
	assert.InDelta(t, 1.0, metrics.ReadRate, 1e-9)
}

func TestPublicationService_DeliveryStatus(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P3")
	pub := seedPublication(t, svc, owner.ID, nil)

	delivered, err := svc.Publications.UpdateDeliveryStatus(pub.ID, DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, DeliveryDelivered, delivered.Status)
	require.NotNil(t, delivered.SentAt)
	assert.Zero(t, delivered.DeliveryAttempts)

	failed, err := svc.Publications.UpdateDeliveryStatus(pub.ID, DeliveryFailed)
	require.NoError(t, err)
	assert.Equal(t, DeliveryFailed, failed.Status)
	assert.Equal(t, int64(1), failed.DeliveryAttempts)
}

func TestPublicationService_ResendFailed(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P4")
	pub := seedPublication(t, svc, owner.ID, nil)

	// Resend on a PENDING publication is a silent no-op.
	got, err := svc.Publications.ResendFailed(pub.ID)
	require.NoError(t, err)
	assert.Equal(t, DeliveryPending, got.Status)

	_, err = svc.Publications.UpdateDeliveryStatus(pub.ID, DeliveryFailed)
	require.NoError(t, err)
	got, err = svc.Publications.ResendFailed(pub.ID)
	require.NoError(t, err)
	assert.Equal(t, DeliveryPending, got.Status)

	_, err = svc.Publications.ResendFailed("no-such-id")
	require.ErrorIs(t, err, ErrPublicationNotFound)
}

func TestPublicationService_SendImmediate(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P5")

	before := time.Now()
	sent, err := svc.Publications.SendImmediate(&Publication{
		OwnerID: owner.ID, Type: TypeGeneralAnnouncement, Title: "Maintenance window",
		Content: "The portal is down tonight.", ScheduledFor: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, DeliveryDelivered, sent.Status)
	require.NotNil(t, sent.SentAt)
	// SendImmediate overrides the requested schedule with now.
	assert.True(t, sent.ScheduledFor.Before(before.Add(time.Minute)))
}

func TestPublicationService_SendBatch(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P6")

	batch := []Publication{
		{OwnerID: owner.ID, Type: TypeSystemUpdate, Title: "one"},
		{OwnerID: "nobody", Type: TypeSystemUpdate, Title: "two"},
		{OwnerID: owner.ID, Type: TypeSystemUpdate, Title: "three"},
	}
	sent, err := svc.Publications.SendBatch(batch)
	require.ErrorIs(t, err, ErrOwnerNotFound)
	// The first failure stops the batch.
	require.Len(t, sent, 1)
	assert.Equal(t, "one", sent[0].Title)
}

func TestPublicationService_FromTemplate(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P7")

	require.NoError(t, svc.Templates.Put("reminder", "Hello ${name}, your ${plate} is due."))

	pub, err := svc.Publications.CreateFromTemplate(&Publication{
		OwnerID: owner.ID, Type: TypeInspectionReminder, Title: "Reminder",
		ScheduledFor: time.Now().Add(time.Hour),
	}, "reminder", []TemplateParam{{Key: "name", Value: "Maria"}})
	require.NoError(t, err)
	// Unresolved tokens stay verbatim.
	assert.Equal(t, "Hello Maria, your ${plate} is due.", pub.Content)

	_, err = svc.Publications.CreateFromTemplate(&Publication{OwnerID: owner.ID}, "missing", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestPublicationService_WindowAggregates(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P8")
	at := time.Now().Add(time.Hour)

	first := seedPublication(t, svc, owner.ID, func(p *Publication) { p.ScheduledFor = at })
	seedPublication(t, svc, owner.ID, func(p *Publication) {
		p.ScheduledFor = at
		p.Type = TypeDocumentExpiry
	})
	_, err := svc.Publications.UpdateDeliveryStatus(first.ID, DeliveryDelivered)
	require.NoError(t, err)

	start, end := at.Add(-time.Hour), at.Add(time.Hour)
	types, err := svc.Publications.TypeDistribution(start, end)
	require.NoError(t, err)
	assert.Equal(t, map[NotificationType]int64{TypeInspectionReminder: 1, TypeDocumentExpiry: 1}, types)

	statuses, err := svc.Publications.DeliveryStatusDistribution(start, end)
	require.NoError(t, err)
	assert.Equal(t, map[DeliveryStatus]int64{DeliveryDelivered: 1, DeliveryPending: 1}, statuses)

	rate, err := svc.Publications.DeliverySuccessRate(start, end)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rate, 1e-9)

	// An empty window reports zero, not an error.
	rate, err = svc.Publications.DeliverySuccessRate(at.AddDate(1, 0, 0), at.AddDate(1, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, rate)

	report, err := svc.Publications.GenerateDeliveryReport(start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Total)
	assert.Equal(t, int64(1), report.Delivered)
	assert.Equal(t, int64(1), report.Pending)
	assert.Zero(t, report.Failed)
	assert.InDelta(t, 0.5, report.SuccessRate, 1e-9)

	history, err := svc.Publications.NotificationHistory(owner.ID, start, end)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPublicationService_DeleteExpired(t *testing.T) {
	svc := newTestServices(t)
	owner := seedOwner(t, svc, "DL-P9")

	past := time.Now().AddDate(0, 0, -10)
	stale := seedPublication(t, svc, owner.ID, func(p *Publication) { p.ScheduledFor = past })
	fresh := seedPublication(t, svc, owner.ID, nil)

	require.NoError(t, svc.Publications.DeleteExpired(time.Now().AddDate(0, 0, -1)))

	_, err := svc.Publications.Get(stale.ID)
	require.ErrorIs(t, err, ErrPublicationNotFound)
	_, err = svc.Publications.Get(fresh.ID)
	require.NoError(t, err)
}
