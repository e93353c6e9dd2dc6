package job

import (
	"os"
	"path/filepath"
	"time"

	"github.com/khoshimi/Pupupu/config"
	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/util/common"
	"github.com/khoshimi/Pupupu/web/service"
)

// orphanMinAge keeps the sweep away from uploads whose database row may
// still be on its way in (file written, row not yet committed).
const orphanMinAge = time.Hour

// OrphanUploadsJob removes files under the uploads folder that no user
// avatar and no work image references anymore. File writes are not
// transactional with the database, so crashes leave strays in both
// directions; this job closes the file-without-row direction.
type OrphanUploadsJob struct {
	workService service.WorkService
}

func NewOrphanUploadsJob() *OrphanUploadsJob {
	return new(OrphanUploadsJob)
}

// Run is the cron entry point.
func (j *OrphanUploadsJob) Run() {
	defer common.Recover("orphan uploads job")
	referenced, err := j.workService.ReferencedUploads()
	if err != nil {
		logger.Warning("orphan uploads job err:", err)
		return
	}

	dir := config.GetUploadFolder()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("orphan uploads job err:", err)
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < orphanMinAge {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logger.Warning("orphan uploads job err:", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Infof("orphan uploads job removed %d files", removed)
	}
}
