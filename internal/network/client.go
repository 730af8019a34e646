package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixelsoft/tycoon-server/internal/domain/company"
	"github.com/pixelsoft/tycoon-server/internal/domain/staff"
	"github.com/pixelsoft/tycoon-server/internal/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// GameAction is the incoming message format for player commands.
type GameAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type hirePayload struct {
	JobType staff.JobType `json:"job_type"`
	Name    string        `json:"name"`
}

type employeePayload struct {
	EmployeeID string `json:"employee_id"`
}

type schedulePayload struct {
	Schedule company.ScheduleID `json:"schedule"`
}

type speedPayload struct {
	Speed float64 `json:"speed"`
}

type newGamePayload struct {
	CompanyName string `json:"company_name"`
}

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error("WebSocket read error: %v", err)
			}
			break
		}

		c.hub.metrics.RecordWSMessage(true)

		var action GameAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.sendError("", fmt.Errorf("malformed action: %w", err))
			continue
		}
		if err := c.dispatch(action); err != nil {
			c.sendError(action.Type, err)
		} else {
			c.sendAck(action.Type)
		}
	}
}

// dispatch routes a player action into the engine under the runner's lock.
func (c *Client) dispatch(action GameAction) error {
	switch action.Type {
	case "hire":
		var p hirePayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return fmt.Errorf("hire payload: %w", err)
		}
		return c.hub.runner.Do(func(e *engine.Engine) error {
			candidate, err := e.RandomCandidate(p.JobType, p.Name)
			if err != nil {
				return err
			}
			_, err = e.HireEmployee(candidate)
			return err
		})
	case "fire":
		var p employeePayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return fmt.Errorf("fire payload: %w", err)
		}
		return c.hub.runner.Do(func(e *engine.Engine) error {
			return e.FireEmployee(p.EmployeeID)
		})
	case "toggle_duty":
		var p employeePayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return fmt.Errorf("toggle_duty payload: %w", err)
		}
		return c.hub.runner.Do(func(e *engine.Engine) error {
			return e.ToggleEmployeeWorkStatus(p.EmployeeID)
		})
	case "set_schedule":
		var p schedulePayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return fmt.Errorf("set_schedule payload: %w", err)
		}
		return c.hub.runner.Do(func(e *engine.Engine) error {
			return e.SetWorkSchedule(p.Schedule)
		})
	case "set_speed":
		var p speedPayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return fmt.Errorf("set_speed payload: %w", err)
		}
		return c.hub.runner.Do(func(e *engine.Engine) error {
			return e.SetGameSpeed(p.Speed)
		})
	case "toggle_pause":
		return c.hub.runner.Do(func(e *engine.Engine) error {
			e.TogglePause()
			return nil
		})
	case "upgrade_stage":
		return c.hub.runner.Do(func(e *engine.Engine) error {
			return e.UpgradeCompanyStage()
		})
	case "new_game":
		var p newGamePayload
		if action.Payload != nil {
			if err := json.Unmarshal(action.Payload, &p); err != nil {
				return fmt.Errorf("new_game payload: %w", err)
			}
		}
		return c.hub.runner.Do(func(e *engine.Engine) error {
			if p.CompanyName != "" {
				e.State().CompanyName = p.CompanyName
			}
			e.InitGame()
			return nil
		})
	default:
		return errors.New("unknown action type")
	}
}

func (c *Client) sendAck(actionType string) {
	payload, _ := json.Marshal(map[string]interface{}{
		"type":   "ack",
		"action": actionType,
	})
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) sendError(actionType string, err error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"type":   "error",
		"action": actionType,
		"error":  err.Error(),
	})
	select {
	case c.send <- payload:
	default:
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
