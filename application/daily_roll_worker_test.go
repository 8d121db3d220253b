package application

import (
	"context"
	"testing"
	"time"

	"rollf/domain/entities"
	"rollf/domain/interfaces"
	"rollf/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func localTime(hour, minute int) time.Time {
	return time.Date(2024, 3, 15, hour, minute, 0, 0, time.UTC)
}

func TestPlanCycle_AlreadyRolledWaitsForTomorrow(t *testing.T) {
	action, wakeAt := planCycle(localTime(7, 30), true, 6, 10)

	assert.Equal(t, actionWaitPreOpen, action)
	assert.Equal(t, time.Date(2024, 3, 16, 5, 55, 0, 0, time.UTC), wakeAt)
}

func TestPlanCycle_PastCutoffSkipsTheDay(t *testing.T) {
	// 10:00 exactly is already outside the window
	action, wakeAt := planCycle(localTime(10, 0), false, 6, 10)

	assert.Equal(t, actionWaitPreOpen, action)
	assert.Equal(t, time.Date(2024, 3, 16, 5, 55, 0, 0, time.UTC), wakeAt)

	action, _ = planCycle(localTime(23, 45), false, 6, 10)
	assert.Equal(t, actionWaitPreOpen, action)
}

func TestPlanCycle_BeforeOpenWaitsForOpen(t *testing.T) {
	action, wakeAt := planCycle(localTime(5, 56), false, 6, 10)

	assert.Equal(t, actionWaitOpen, action)
	assert.Equal(t, time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC), wakeAt)
}

func TestPlanCycle_InsideWindowDraws(t *testing.T) {
	for _, hour := range []int{6, 7, 8, 9} {
		action, _ := planCycle(localTime(hour, 15), false, 6, 10)
		assert.Equal(t, actionDraw, action, "hour %d should draw", hour)
	}
}

func TestPlanCycle_RolledAlwaysWins(t *testing.T) {
	// Inside the window but already rolled: nothing to do until tomorrow
	action, _ := planCycle(localTime(7, 0), true, 6, 10)
	assert.Equal(t, actionWaitPreOpen, action)
}

// fakeUnitOfWork satisfies UnitOfWork over mock repositories without a database
type fakeUnitOfWork struct {
	rollRepo          *testhelpers.MockRollRepository
	userRepo          *testhelpers.MockUserRepository
	guildSettingsRepo *testhelpers.MockGuildSettingsRepository
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) RollRepository() interfaces.RollRepository { return f.rollRepo }
func (f *fakeUnitOfWork) UserRepository() interfaces.UserRepository { return f.userRepo }
func (f *fakeUnitOfWork) GuildSettingsRepository() interfaces.GuildSettingsRepository {
	return f.guildSettingsRepo
}

type fakeUnitOfWorkFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUnitOfWorkFactory) Create() UnitOfWork { return f.uow }

// mockAnnouncer records deliveries per channel with scripted outcomes
type mockAnnouncer struct {
	mock.Mock
}

func (m *mockAnnouncer) Send(ctx context.Context, channelID int64, content string) DeliveryStatus {
	args := m.Called(ctx, channelID, content)
	return args.Get(0).(DeliveryStatus)
}

func (m *mockAnnouncer) NotifyOwner(ctx context.Context, guildID int64, content string) {
	m.Called(ctx, guildID, content)
}

func newTestWorker(uow *fakeUnitOfWork, announcer Announcer) *DailyRollWorker {
	return NewDailyRollWorker(&fakeUnitOfWorkFactory{uow: uow}, announcer, DailyRollWorkerConfig{
		BotName:    "RollF",
		Location:   time.UTC,
		OpenHour:   6,
		CutoffHour: 10,
		MaxDelay:   4 * time.Hour,
	})
}

func TestAnnounce_FansOutToAllDestinations(t *testing.T) {
	ctx := context.Background()

	uow := &fakeUnitOfWork{
		rollRepo:          new(testhelpers.MockRollRepository),
		userRepo:          new(testhelpers.MockUserRepository),
		guildSettingsRepo: new(testhelpers.MockGuildSettingsRepository),
	}
	announcer := new(mockAnnouncer)
	worker := newTestWorker(uow, announcer)

	uow.guildSettingsRepo.On("ListRollChannels", ctx).Return([]*entities.RollChannel{
		{GuildID: 1, ChannelID: 100},
		{GuildID: 2, ChannelID: 200},
		{GuildID: 3, ChannelID: 300},
	}, nil)

	announcer.On("Send", ctx, int64(100), mock.AnythingOfType("string")).Return(Delivered)
	announcer.On("Send", ctx, int64(200), mock.AnythingOfType("string")).Return(Delivered)
	announcer.On("Send", ctx, int64(300), mock.AnythingOfType("string")).Return(Delivered)

	roll, err := entities.NewBotRoll("RollF", 57, time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	worker.announce(ctx, roll)

	announcer.AssertExpectations(t)
	announcer.AssertNumberOfCalls(t, "Send", 3)
}

func TestAnnounce_MessageCarriesTheValue(t *testing.T) {
	ctx := context.Background()

	uow := &fakeUnitOfWork{
		guildSettingsRepo: new(testhelpers.MockGuildSettingsRepository),
	}
	announcer := new(mockAnnouncer)
	worker := newTestWorker(uow, announcer)

	uow.guildSettingsRepo.On("ListRollChannels", ctx).Return([]*entities.RollChannel{
		{GuildID: 1, ChannelID: 100},
	}, nil)

	announcer.On("Send", ctx, int64(100), "RollF rolled **57** 🎲").Return(Delivered)

	roll, err := entities.NewBotRoll("RollF", 57, time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	worker.announce(ctx, roll)

	announcer.AssertExpectations(t)
}

func TestAnnounce_ForbiddenNotifiesOwnerAndContinues(t *testing.T) {
	ctx := context.Background()

	uow := &fakeUnitOfWork{
		guildSettingsRepo: new(testhelpers.MockGuildSettingsRepository),
	}
	announcer := new(mockAnnouncer)
	worker := newTestWorker(uow, announcer)

	uow.guildSettingsRepo.On("ListRollChannels", ctx).Return([]*entities.RollChannel{
		{GuildID: 1, ChannelID: 100},
		{GuildID: 2, ChannelID: 200},
	}, nil)

	announcer.On("Send", ctx, int64(100), mock.AnythingOfType("string")).Return(DeliveryForbidden)
	announcer.On("NotifyOwner", ctx, int64(1), mock.AnythingOfType("string")).Return()
	// The second destination still gets its announcement
	announcer.On("Send", ctx, int64(200), mock.AnythingOfType("string")).Return(Delivered)

	roll, err := entities.NewBotRoll("RollF", 42, time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	worker.announce(ctx, roll)

	announcer.AssertExpectations(t)
	announcer.AssertNumberOfCalls(t, "NotifyOwner", 1)
}

func TestAnnounce_NotFoundAndTransientAreSilent(t *testing.T) {
	ctx := context.Background()

	uow := &fakeUnitOfWork{
		guildSettingsRepo: new(testhelpers.MockGuildSettingsRepository),
	}
	announcer := new(mockAnnouncer)
	worker := newTestWorker(uow, announcer)

	uow.guildSettingsRepo.On("ListRollChannels", ctx).Return([]*entities.RollChannel{
		{GuildID: 1, ChannelID: 100},
		{GuildID: 2, ChannelID: 200},
	}, nil)

	announcer.On("Send", ctx, int64(100), mock.AnythingOfType("string")).Return(DeliveryNotFound)
	announcer.On("Send", ctx, int64(200), mock.AnythingOfType("string")).Return(DeliveryTransientError)

	roll, err := entities.NewBotRoll("RollF", 42, time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	worker.announce(ctx, roll)

	// No owner notices for gone channels or transient failures
	announcer.AssertNotCalled(t, "NotifyOwner")
}

func TestWorkerStart_StopsOnStopFunc(t *testing.T) {
	ctx := context.Background()

	uow := &fakeUnitOfWork{
		rollRepo:          new(testhelpers.MockRollRepository),
		userRepo:          new(testhelpers.MockUserRepository),
		guildSettingsRepo: new(testhelpers.MockGuildSettingsRepository),
	}
	announcer := new(mockAnnouncer)
	worker := newTestWorker(uow, announcer)

	// Already rolled today: the loop goes straight to a long sleep, which the
	// stop func must interrupt
	uow.rollRepo.On("ExistsForDate", mock.Anything, entities.BotActorID, entities.ActorTypeBot, mock.AnythingOfType("time.Time")).
		Return(true, nil)

	stop := worker.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stop func did not return")
	}
}
