package network

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pixelsoft/tycoon-server/internal/engine"
	"github.com/pixelsoft/tycoon-server/internal/events"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
	"github.com/pixelsoft/tycoon-server/internal/platform/metrics"
)

func newTestClient(t *testing.T) (*Client, *engine.Engine) {
	t.Helper()
	log := logger.NewLogger()
	eng := engine.New("TestCo", 1, log)
	eng.InitGame()
	runner := engine.NewRunner(eng, 100*time.Millisecond, log, metrics.Get())
	hub := NewHub(runner, log, metrics.Get())
	return &Client{hub: hub, send: make(chan []byte, 8)}, eng
}

func action(t *testing.T, actionType string, payload interface{}) GameAction {
	t.Helper()
	a := GameAction{Type: actionType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		a.Payload = raw
	}
	return a
}

func TestDispatchHire(t *testing.T) {
	c, eng := newTestClient(t)

	err := c.dispatch(action(t, "hire", map[string]string{
		"job_type": "developer",
		"name":     "Dana",
	}))
	if err != nil {
		t.Fatalf("dispatch hire: %v", err)
	}
	if len(eng.State().Employees) != 1 {
		t.Errorf("Expected one hire, got %d", len(eng.State().Employees))
	}

	// Locked roles surface the engine's rejection.
	err = c.dispatch(action(t, "hire", map[string]string{"job_type": "sales"}))
	if err == nil {
		t.Errorf("Expected locked role rejected")
	}
}

func TestDispatchGameControls(t *testing.T) {
	c, eng := newTestClient(t)

	if err := c.dispatch(action(t, "set_speed", map[string]float64{"speed": 5})); err != nil {
		t.Fatalf("set_speed: %v", err)
	}
	if eng.State().GameSpeed != 5 {
		t.Errorf("Speed not applied")
	}

	if err := c.dispatch(action(t, "toggle_pause", nil)); err != nil {
		t.Fatalf("toggle_pause: %v", err)
	}
	if !eng.State().Paused {
		t.Errorf("Pause not applied")
	}

	if err := c.dispatch(action(t, "set_schedule", map[string]string{"schedule": "ot_996"})); err != nil {
		t.Fatalf("set_schedule: %v", err)
	}
	if string(eng.State().WorkSchedule) != "ot_996" {
		t.Errorf("Schedule not applied")
	}
}

func TestDispatchRejectsGarbage(t *testing.T) {
	c, _ := newTestClient(t)

	if err := c.dispatch(GameAction{Type: "dance"}); err == nil {
		t.Errorf("Expected unknown action rejected")
	}
	if err := c.dispatch(GameAction{Type: "hire", Payload: json.RawMessage(`"nope"`)}); err == nil {
		t.Errorf("Expected malformed payload rejected")
	}
}

func TestDispatchNewGameResets(t *testing.T) {
	c, eng := newTestClient(t)
	eng.State().Money = 1

	err := c.dispatch(action(t, "new_game", map[string]string{"company_name": "Fresh Co"}))
	if err != nil {
		t.Fatalf("new_game: %v", err)
	}
	s := eng.State()
	if s.CompanyName != "Fresh Co" || s.Money != 30000 {
		t.Errorf("Reset incomplete: %s %.0f", s.CompanyName, s.Money)
	}
}

func TestEntriesSinceCursor(t *testing.T) {
	log := []events.Entry{
		{ID: "a", Message: "first"},
		{ID: "b", Message: "second"},
		{ID: "c", Message: "third"},
	}

	if got := entriesSince(log, ""); len(got) != 3 {
		t.Errorf("Empty cursor should return the whole log, got %d", len(got))
	}
	if got := entriesSince(log, "b"); len(got) != 1 || got[0].ID != "c" {
		t.Errorf("Expected entries after b, got %v", got)
	}
	if got := entriesSince(log, "c"); len(got) != 0 {
		t.Errorf("Expected nothing after the newest entry, got %d", len(got))
	}
	// A cursor evicted from the bounded log resyncs from what remains.
	if got := entriesSince(log, "evicted"); len(got) != 3 {
		t.Errorf("Unknown cursor should resync, got %d", len(got))
	}
}
