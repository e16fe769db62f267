package pipeline

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/chartwalk/chartwalk/pkg/linalg"
	"github.com/chartwalk/chartwalk/pkg/planner"
)

// runRecord is the JSON shape of a cached planning run. The exploration
// graph is stored alongside the solution so verbose dumps work on cache hits.
type runRecord struct {
	RunID              string      `json:"run_id"`
	Problem            string      `json:"problem"`
	Planner            string      `json:"planner"`
	Mode               string      `json:"mode"`
	Seed               uint64      `json:"seed"`
	CreatedAt          time.Time   `json:"created_at"`
	Status             int         `json:"status"`
	Path               [][]float64 `json:"path,omitempty"`
	ApproxGoalDistance float64     `json:"approx_goal_distance,omitempty"`
	Iterations         int         `json:"iterations"`
	Vertices           [][]float64 `json:"vertices,omitempty"`
	Edges              [][2]int    `json:"edges,omitempty"`

	// Atlas statistics at the end of the original run. Cached replays
	// report these instead of the freshly anchored atlas.
	ChartCount      int     `json:"chart_count,omitempty"`
	FrontierPercent float64 `json:"frontier_percent,omitempty"`
}

// encodeRunRecord serializes the solve stage of a finished run.
func encodeRunRecord(opts Options, result *Result) ([]byte, error) {
	sol := result.Solution
	rec := runRecord{
		RunID:              uuid.NewString(),
		Problem:            opts.Problem,
		Planner:            opts.Planner,
		Mode:               string(opts.Mode),
		Seed:               opts.Seed,
		CreatedAt:          time.Now().UTC(),
		Status:             int(sol.Status),
		Path:               toFloats(sol.Path),
		ApproxGoalDistance: sol.ApproxGoalDistance,
		Iterations:         sol.Iterations,
		ChartCount:         result.ChartCount,
		FrontierPercent:    result.FrontierPercent,
	}
	if result.Data != nil {
		rec.Vertices = toFloats(result.Data.Vertices)
		rec.Edges = result.Data.Edges
	}
	return json.Marshal(rec)
}

func decodeRunRecord(raw []byte) (runRecord, error) {
	var rec runRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return runRecord{}, err
	}
	return rec, nil
}

// apply copies the cached solve stage into a fresh result.
func (rec runRecord) apply(result *Result) {
	result.Solution = &planner.Solution{
		Status:             planner.Status(rec.Status),
		Path:               toVectors(rec.Path),
		ApproxGoalDistance: rec.ApproxGoalDistance,
		Iterations:         rec.Iterations,
	}
	result.Data = &planner.Data{
		Vertices: toVectors(rec.Vertices),
		Edges:    rec.Edges,
	}
	result.ChartCount = rec.ChartCount
	result.FrontierPercent = rec.FrontierPercent
}

func toFloats(vs []linalg.Vector) [][]float64 {
	out := make([][]float64, len(vs))
	for i, v := range vs {
		out[i] = []float64(v)
	}
	return out
}

func toVectors(fs [][]float64) []linalg.Vector {
	out := make([]linalg.Vector, len(fs))
	for i, f := range fs {
		out[i] = linalg.Vector(f)
	}
	return out
}
