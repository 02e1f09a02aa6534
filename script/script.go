// Package script reads and writes recorded turn-event scripts: one
// JSON object per line, delivered in order, with optional per-step
// delays for lifelike replay.
package script

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/fold"
)

// Step is one scripted action: an event plus an optional delay to
// wait before delivering it. A nil Event is a pure pause.
type Step struct {
	Event fold.Event
	Delay time.Duration
}

// stepDTO is the JSON representation of a Step with a type
// discriminator.
type stepDTO struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	NewPhase bool   `json:"new_phase,omitempty"`
	Name     string `json:"name,omitempty"`
	Fragment string `json:"fragment,omitempty"`
	DelayMS  int    `json:"delay_ms,omitempty"`
}

// Decode reads steps from r until EOF. Blank lines are skipped.
func Decode(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var dto stepDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		step, err := fromDTO(dto)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

// Encode writes steps to w, one JSON object per line.
func Encode(w io.Writer, steps []Step) error {
	enc := json.NewEncoder(w)
	for i, st := range steps {
		dto, err := toDTO(st)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err := enc.Encode(dto); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func fromDTO(dto stepDTO) (Step, error) {
	step := Step{Delay: time.Duration(dto.DelayMS) * time.Millisecond}
	switch dto.Type {
	case "turn_started":
		step.Event = fold.EventTurnStarted{}
	case "thought":
		step.Event = fold.EventThoughtText{Text: dto.Text, NewPhase: dto.NewPhase}
	case "tool_call":
		step.Event = fold.EventToolCallStarted{Name: dto.Name}
	case "turn_ended":
		step.Event = fold.EventTurnEnded{}
	case "toggle":
		step.Event = fold.EventUserToggle{FragmentID: dto.Fragment}
	case "pause":
	default:
		return Step{}, fmt.Errorf("unknown step type %q", dto.Type)
	}
	return step, nil
}

func toDTO(st Step) (stepDTO, error) {
	dto := stepDTO{DelayMS: int(st.Delay / time.Millisecond)}
	switch e := st.Event.(type) {
	case nil:
		dto.Type = "pause"
	case fold.EventTurnStarted:
		dto.Type = "turn_started"
	case fold.EventThoughtText:
		dto.Type = "thought"
		dto.Text = e.Text
		dto.NewPhase = e.NewPhase
	case fold.EventToolCallStarted:
		dto.Type = "tool_call"
		dto.Name = e.Name
	case fold.EventTurnEnded:
		dto.Type = "turn_ended"
	case fold.EventUserToggle:
		dto.Type = "toggle"
		dto.Fragment = e.FragmentID
	default:
		return stepDTO{}, fmt.Errorf("unsupported event type %T", st.Event)
	}
	return dto, nil
}

// Feed returns a FeedFunc replaying the steps with their delays.
func Feed(steps []Step) fold.FeedFunc {
	return func(ctx context.Context, onEvent func(fold.Event)) error {
		for _, st := range steps {
			if st.Delay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(st.Delay):
				}
			}
			if st.Event != nil {
				onEvent(st.Event)
			}
		}
		return nil
	}
}
