package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 5m", func() {
		go a.SchedSemanticReplayTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		go a.SchedClearSyncJobs()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSemanticReplayTask replays pending semantic sync jobs, catching up
// on writes the ticker loop missed while the process was down.
func (a *Application) SchedSemanticReplayTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	a.indexer.ReplayPending(ctx)
}

// SchedClearSyncJobs removes completed sync jobs past the retention window.
func (a *Application) SchedClearSyncJobs() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	days := a.GetSettingsInt64Value("semantic", "JobRetentionDays")
	if days <= 0 {
		days = 7
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := a.syncJobRepo.DeleteDoneBefore(ctx, int(days)); err != nil {
		zap.L().Error("sync job cleanup failed", zap.Error(err))
	}
}
