package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/focoleve/internal/plan"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// Storage keys for the persisted session.
const (
	KeyProfile = "focoLeveProfile"
	KeyTasks   = "focoLeveTasks"
	KeySchema  = "focoLeveSchema"
)

// SchemaVersion is the current state format. Stored state with a different
// major version is ignored.
const SchemaVersion = "v1.0.0"

// stateRepo implements plan.StateRepo on the kv table.
type stateRepo struct {
	kv     *kvTable
	logger *zap.Logger
}

func (r *stateRepo) LoadState(ctx context.Context) (*plan.Profile, []plan.Task, error) {
	values, err := r.kv.get(ctx, KeySchema, KeyProfile, KeyTasks)
	if err != nil {
		return nil, nil, fmt.Errorf("load state: %w", err)
	}

	if v, ok := values[KeySchema]; ok && !compatible(v) {
		r.logger.Warn("ignoring stored state with incompatible schema",
			zap.String("stored", v), zap.String("current", SchemaVersion))
		return nil, nil, nil
	}

	var profile *plan.Profile
	if raw, ok := values[KeyProfile]; ok {
		var p plan.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			r.logger.Warn("ignoring malformed stored profile", zap.Error(err))
		} else if p.Valid() {
			profile = &p
		}
	}

	var tasks []plan.Task
	if raw, ok := values[KeyTasks]; ok {
		if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
			r.logger.Warn("ignoring malformed stored tasks", zap.Error(err))
			tasks = nil
		}
	}

	return profile, tasks, nil
}

func (r *stateRepo) SaveState(ctx context.Context, profile *plan.Profile, tasks []plan.Task) error {
	if tasks == nil {
		tasks = []plan.Task{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	set := map[string]string{
		KeySchema: SchemaVersion,
		KeyTasks:  string(tasksJSON),
	}
	var del []string
	if profile != nil {
		profileJSON, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		set[KeyProfile] = string(profileJSON)
	} else {
		del = append(del, KeyProfile)
	}

	if err := r.kv.apply(ctx, set, del); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (r *stateRepo) ResetAll(ctx context.Context) error {
	return r.kv.clear(ctx)
}

// compatible reports whether a stored schema version can be read.
func compatible(v string) bool {
	return semver.IsValid(v) && semver.Major(v) == semver.Major(SchemaVersion)
}
