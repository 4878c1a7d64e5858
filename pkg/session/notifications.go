package session

type NotificationTag int

const (
	NotificationConnected NotificationTag = iota
	NotificationGameState
	NotificationSongDetected
	NotificationSearchStarted
	NotificationSearchFailed
	NotificationVideoStaged
	NotificationPlaybackStarted
	NotificationPlaybackStopped
	NotificationDuplicateVideo
	NotificationScore
	NotificationStateChanged
)

type Notification struct {
	Tag  NotificationTag
	Data interface{}
}

type NotificationSubscription struct {
	Events chan Notification
}

type NotificationManager struct {
	subscriptions []*NotificationSubscription
}

func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		subscriptions: make([]*NotificationSubscription, 0, 1),
	}
}

func (m *NotificationManager) Send(notification Notification) {
	for _, sub := range m.subscriptions {
		sub.Events <- notification
	}
}

func (m *NotificationManager) Subscribe() *NotificationSubscription {
	subscription := &NotificationSubscription{
		Events: make(chan Notification, 32),
	}
	m.subscriptions = append(m.subscriptions, subscription)
	return subscription
}

func (m *NotificationManager) Count() int {
	return len(m.subscriptions)
}

func (m *NotificationManager) Close() {
	for _, sub := range m.subscriptions {
		close(sub.Events)
	}
	m.subscriptions = nil
}
