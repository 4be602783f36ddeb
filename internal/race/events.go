package race

type EventType int

const (
	EventCountdown EventType = iota
	EventRaceStart
	EventCheckpoint
	EventLap
	EventFinish
	EventWinner
	EventCollision
	EventBombTrigger
	EventExplosionHit
	EventBurn
	EventOverheat
	EventGameOver
	EventRestart
	eventTypeCount
)

var eventNames = [...]string{
	EventCountdown:    "countdown",
	EventRaceStart:    "race_start",
	EventCheckpoint:   "checkpoint",
	EventLap:          "lap",
	EventFinish:       "finish",
	EventWinner:       "winner",
	EventCollision:    "collision",
	EventBombTrigger:  "bomb_trigger",
	EventExplosionHit: "explosion_hit",
	EventBurn:         "burn",
	EventOverheat:     "overheat",
	EventGameOver:     "game_over",
	EventRestart:      "restart",
}

func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "unknown"
	}
	return eventNames[t]
}

// Event is published synchronously from inside Race.Step.
type Event struct {
	Type  EventType
	Car   CarID
	Other CarID
	Pos   Vec2
	Value int // lap, checkpoint index, damage or countdown second
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
	all      []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.all = append(eb.all, fn)
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range eb.all {
		fn(e)
	}
}
