package job

import (
	"github.com/khoshimi/Pupupu/database"
	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/util/common"
)

// CheckpointJob flushes the sqlite WAL back into the main database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run is the cron entry point.
func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if err := database.Checkpoint(); err != nil {
		logger.Warning("checkpoint job err:", err)
	}
}
