package scheduler

import (
	"time"

	"github.com/Kellerman81/go_media_sorter/config"
	"github.com/Kellerman81/go_media_sorter/logger"
	"github.com/Kellerman81/go_media_sorter/structure"
	"github.com/Kellerman81/go_media_sorter/tasks"
)

var QueueScan *tasks.Dispatcher

// InitScheduler starts the scan queue and registers the recurring scan
// of the watch folder. One worker only, passes must not overlap. An
// initial pass is dispatched right away so a restart picks up whatever
// accumulated while the process was down.
func InitScheduler(cfg config.SchedulerConfig, organizer *structure.Organizer) {
	QueueScan = tasks.NewDispatcher("Scan", 1, 100)
	QueueScan.Start()

	if cfg.CronScan != "" {
		// 6 field cron expression, with seconds
		_, err := QueueScan.DispatchCron("scan_watch_folder", organizer.ScanWatchFolder, cfg.CronScan)
		if err != nil {
			logger.Log.Errorln("Cron schedule invalid: ", cfg.CronScan, " Error: ", err)
		}
	} else {
		interval := cfg.IntervalScanSeconds
		if interval <= 0 {
			interval = 60
		}
		QueueScan.DispatchEvery("scan_watch_folder", organizer.ScanWatchFolder, time.Duration(interval)*time.Second)
	}

	QueueScan.Dispatch("scan_watch_folder_initial", organizer.ScanWatchFolder)
}
