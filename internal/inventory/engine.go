package inventory

// Event describes what a single item update did.
// One Event is emitted per item per AdvanceOneDay call, in list order.
type Event struct {
	// Index is the item's position in the slice passed to AdvanceOneDay.
	Index      int
	Name       string
	Category   Category
	Enhanced   bool
	OldSellIn  int
	NewSellIn  int
	OldQuality int
	NewQuality int
	// Skipped is set for legendary items, which are pinned rather than aged.
	Skipped bool
}

// Observer receives update events.
//
// Observers are invoked synchronously on the caller's goroutine and have no
// way to fail the update. Sinks that can fail must remember their own error.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

// Observe forwards e to every non-nil observer.
func (m MultiObserver) Observe(e Event) {
	for _, o := range m {
		if o != nil {
			o.Observe(e)
		}
	}
}

// Engine applies the daily update rules.
//
// An Engine holds no item state; the caller owns the slice and the engine
// keeps no reference to it once AdvanceOneDay returns.
type Engine struct {
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers an observer. Repeated use fans out to all of them
// in registration order.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o == nil {
			return
		}
		if e.observer == nil {
			e.observer = o
			return
		}
		if m, ok := e.observer.(MultiObserver); ok {
			e.observer = append(m, o)
			return
		}
		e.observer = MultiObserver{e.observer, o}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AdvanceOneDay ages every item by one day, in list order.
//
// Nil entries are skipped. Calling it twice advances two days.
func (e *Engine) AdvanceOneDay(items []*Item) {
	for i, item := range items {
		if item == nil {
			continue
		}
		e.advance(i, item, Classify(item.Name))
	}
}

// advance updates one item with an already-derived classification.
func (e *Engine) advance(index int, item *Item, c Classification) {
	ev := Event{
		Index:      index,
		Name:       item.Name,
		Category:   c.Category,
		Enhanced:   c.Enhanced,
		OldSellIn:  item.SellIn,
		OldQuality: item.Quality,
	}

	if c.Category == Legendary {
		item.Quality = LegendaryQuality
		ev.Skipped = true
	} else {
		item.SellIn--
		item.Quality = clamp(rule(c, item.SellIn, item.Quality), MinQuality, MaxQuality)
	}

	ev.NewSellIn = item.SellIn
	ev.NewQuality = item.Quality
	if e.observer != nil {
		e.observer.Observe(ev)
	}
}
