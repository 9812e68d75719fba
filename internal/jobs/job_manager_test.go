package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j recordingJob) Name() string { return j.name }

func (j recordingJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.log = append(*j.log, "start "+j.name)
	return nil
}

func (j recordingJob) Stop() { *j.log = append(*j.log, "stop "+j.name) }

func TestJobManager_StartStop(t *testing.T) {
	var calls []string
	jm := NewJobManager(recordingJob{name: "a", log: &calls}, recordingJob{name: "b", log: &calls})

	require.NoError(t, jm.StartAll())
	jm.StopAll()
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, calls)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	var calls []string
	boom := errors.New("bad spec")
	jm := NewJobManager(recordingJob{name: "a", log: &calls}, recordingJob{name: "b", startErr: boom, log: &calls})

	err := jm.StartAll()

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "stop a"}, calls)
}
