// ABOUTME: MCP tools driving the live workout session.
// ABOUTME: Each call runs one session transition under the server mutex.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/liftlog/internal/editor"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/session"
)

func (s *Server) registerSessionTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start tracking a live workout of the given type",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "select_exercise",
		Description: "Begin an exercise in the live workout, by catalog name or ID",
	}, s.handleSelectExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "discard_exercise",
		Description: "Drop the exercise in progress without recording it",
	}, s.handleDiscardExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_set",
		Description: "Start a set; pauses the rest timer and records the rest taken",
	}, s.handleStartSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "end_set",
		Description: "End the current set; restarts the rest timer from zero",
	}, s.handleEndSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Set reps, weight, partial reps or failure on the current set",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "commit_set",
		Description: "Record the ended set on the current exercise",
	}, s.handleCommitSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_distance",
		Description: "Set the distance covered for the current distance exercise",
	}, s.handleRecordDistance)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_exercise",
		Description: "Finish the current exercise and add it to the workout",
	}, s.handleCompleteExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Complete the live workout and save it; retry after a failed save",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_workout",
		Description: "Discard the live workout and everything recorded in it",
	}, s.handleResetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "session_status",
		Description: "Show the live workout: phase, timers, current exercise and set",
	}, s.handleSessionStatus)
}

type startWorkoutInput struct {
	WorkoutType string `json:"workout_type" jsonschema:"Workout type, e.g. Push Day"`
}

type selectExerciseInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name or numeric ID from list_exercises"`
}

type updateSetInput struct {
	Reps        *int     `json:"reps,omitempty" jsonschema:"Full repetitions"`
	WeightKg    *float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms"`
	PartialReps *int     `json:"partial_reps,omitempty" jsonschema:"Partial repetitions after failure"`
	Failure     *bool    `json:"failure,omitempty" jsonschema:"Whether the set ended in failure"`
}

type recordDistanceInput struct {
	Distance float64 `json:"distance" jsonschema:"Distance covered, greater than zero"`
	Unit     string  `json:"unit,omitempty" jsonschema:"METERS, KILOMETERS or MILES (default KILOMETERS)"`
}

// sessionStatus is the JSON shape of the live session returned by every
// session tool.
type sessionStatus struct {
	Message        string                  `json:"message,omitempty"`
	Phase          string                  `json:"phase"`
	WorkoutType    string                  `json:"workout_type,omitempty"`
	Elapsed        string                  `json:"elapsed"`
	Rest           string                  `json:"rest"`
	RestActive     bool                    `json:"rest_active"`
	Set            string                  `json:"set,omitempty"`
	ActiveExercise *models.ExerciseRecord  `json:"active_exercise,omitempty"`
	ActiveSet      *models.SetRecord       `json:"active_set,omitempty"`
	Exercises      []models.ExerciseRecord `json:"exercises"`
	SavedID        string                  `json:"saved_id,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

func statusFrom(v session.View, msg string) sessionStatus {
	st := sessionStatus{
		Message:        msg,
		Phase:          v.Phase.String(),
		WorkoutType:    v.WorkoutType,
		Elapsed:        v.ElapsedText(),
		Rest:           v.RestText(),
		RestActive:     v.RestActive,
		ActiveExercise: v.ActiveExercise,
		ActiveSet:      v.ActiveSet,
		Exercises:      v.Exercises,
		Error:          v.ErrorMessage,
	}
	if v.ActiveSet != nil {
		st.Set = v.SetText()
	}
	if v.Saved != nil {
		st.SavedID = v.Saved.ID.String()[:8]
	}
	return st
}

// transition runs op against the session under the lock and reports the
// resulting state.
func (s *Server) transition(op func(*session.Session) (string, error)) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := op(s.session)
	if err != nil {
		return nil, nil, err
	}
	return nil, statusFrom(s.session.View(), msg), nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		if err := ss.StartWorkout(input.WorkoutType); err != nil {
			return "", err
		}
		return fmt.Sprintf("Started %s", ss.WorkoutType()), nil
	})
}

func (s *Server) handleSelectExercise(ctx context.Context, req *mcp.CallToolRequest, input selectExerciseInput) (*mcp.CallToolResult, any, error) {
	def, err := s.catalog.Find(ctx, input.Exercise)
	if err != nil {
		return nil, nil, err
	}
	return s.transition(func(ss *session.Session) (string, error) {
		if err := ss.SelectExercise(*def); err != nil {
			return "", err
		}
		return fmt.Sprintf("Started %s (%s)", def.Name, def.Type), nil
	})
}

func (s *Server) handleDiscardExercise(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		return "Exercise discarded", ss.DiscardExercise()
	})
}

func (s *Server) handleStartSet(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		if err := ss.StartSet(); err != nil {
			return "", err
		}
		rest := ss.View().ActiveSet.RestBeforeMs
		return fmt.Sprintf("Set started after %s rest", session.FormatDuration(rest)), nil
	})
}

func (s *Server) handleEndSet(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		if err := ss.EndSet(); err != nil {
			return "", err
		}
		return fmt.Sprintf("Set ended after %s", ss.View().SetText()), nil
	})
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		err := ss.UpdateSet(session.SetUpdate{
			Repetitions:        input.Reps,
			PartialRepetitions: input.PartialReps,
			WeightKg:           input.WeightKg,
			IsFailure:          input.Failure,
		})
		return "Set updated", err
	})
}

func (s *Server) handleCommitSet(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		return "Set recorded", ss.CommitSet()
	})
}

func (s *Server) handleRecordDistance(ctx context.Context, req *mcp.CallToolRequest, input recordDistanceInput) (*mcp.CallToolResult, any, error) {
	unit := models.UnitKilometers
	if input.Unit != "" {
		u, ok := models.ParseDistanceUnit(input.Unit)
		if !ok {
			return nil, nil, session.ValidationError("unknown distance unit %q", input.Unit)
		}
		unit = u
	}
	return s.transition(func(ss *session.Session) (string, error) {
		return fmt.Sprintf("Distance %g %s", input.Distance, unit), ss.RecordDistance(input.Distance, unit)
	})
}

func (s *Server) handleCompleteExercise(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		ed, err := editor.For(ss)
		if err != nil {
			return "", err
		}
		if err := ed.Complete(); err != nil {
			return "", err
		}
		return "Exercise completed", nil
	})
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	res, out, err := s.transition(func(ss *session.Session) (string, error) {
		saved, err := ss.Finish(ctx, s.repo)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Saved %s workout (ID: %s)", saved.WorkoutType, saved.ID.String()[:8]), nil
	})
	if err == nil {
		s.catalog.Invalidate()
	}
	return res, out, err
}

func (s *Server) handleResetWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return s.transition(func(ss *session.Session) (string, error) {
		ss.Reset()
		return "Workout discarded", nil
	})
}

func (s *Server) handleSessionStatus(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	return s.transition(func(*session.Session) (string, error) {
		return "", nil
	})
}
