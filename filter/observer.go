package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ajroetker/go-highway/hwy/contrib/vec"
)

// GridStats summarizes one produced plane for observers.
type GridStats struct {
	Rows int     `json:"rows"`
	Cols int     `json:"cols"`
	Min  float32 `json:"min"`
	Max  float32 `json:"max"`
	Mean float32 `json:"mean"`
	Sum  float32 `json:"sum"`
}

// ComputeGridStats summarizes g. A grid with no cells yields zero stats.
func ComputeGridStats(g *Grid) GridStats {
	stats := GridStats{Rows: g.rows, Cols: g.cols}
	if len(g.values) == 0 {
		return stats
	}
	stats.Min = vec.BaseMin(g.values)
	stats.Max = vec.BaseMax(g.values)
	stats.Sum = vec.BaseSum(g.values)
	stats.Mean = stats.Sum / float32(len(g.values))
	return stats
}

// StageEvent describes one output plane emitted by a Transformer pass.
type StageEvent struct {
	Op     string    `json:"op"`     // "convolve" or "deconvolve"
	Output Channel   `json:"output"` // channel whose combinator produced the plane
	Stats  GridStats `json:"stats"`
}

// Observer receives a StageEvent after each output plane is produced.
// Implementations must not mutate the grids behind the event and should
// return quickly; slow work belongs on the far side of a channel.
type Observer interface {
	OnStage(event StageEvent)
}

// notifyObserver builds and delivers a stage event if an observer is set.
func notifyObserver(obs Observer, op string, ch Channel, out *Grid) {
	if obs == nil {
		return
	}
	obs.OnStage(StageEvent{
		Op:     op,
		Output: ch,
		Stats:  ComputeGridStats(out),
	})
}

// =============================================================================
// Example Observer Implementations
// =============================================================================

// ConsoleObserver prints stage events to stdout.
type ConsoleObserver struct {
	Verbose bool // If true, also print the full stats struct
}

func (o *ConsoleObserver) OnStage(event StageEvent) {
	fmt.Printf("[%s] %s: %dx%d mean=%.4f min=%.4f max=%.4f\n",
		event.Op, event.Output,
		event.Stats.Rows, event.Stats.Cols,
		event.Stats.Mean, event.Stats.Min, event.Stats.Max)

	if o.Verbose {
		fmt.Printf("       Stats: %+v\n", event.Stats)
	}
}

// HTTPObserver posts stage events to an HTTP endpoint (for visualization).
type HTTPObserver struct {
	URL     string
	Timeout time.Duration
	client  *http.Client
}

func NewHTTPObserver(url string) *HTTPObserver {
	return &HTTPObserver{
		URL:     url,
		Timeout: 100 * time.Millisecond, // Fast timeout to not block the pass
		client: &http.Client{
			Timeout: 100 * time.Millisecond,
		},
	}
}

func (o *HTTPObserver) OnStage(event StageEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	// Fire and forget (non-blocking)
	go func() {
		resp, err := o.client.Post(o.URL, "application/json", bytes.NewReader(data))
		if err == nil && resp != nil {
			resp.Body.Close()
		}
	}()
}

// ChannelObserver sends stage events to a Go channel (for internal processing).
type ChannelObserver struct {
	Events chan StageEvent
}

func NewChannelObserver(bufferSize int) *ChannelObserver {
	return &ChannelObserver{
		Events: make(chan StageEvent, bufferSize),
	}
}

func (o *ChannelObserver) OnStage(event StageEvent) {
	select {
	case o.Events <- event:
	default:
		// Channel full, drop event to avoid blocking
	}
}
