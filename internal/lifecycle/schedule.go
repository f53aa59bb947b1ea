package lifecycle

import (
	"context"
	"fmt"
	"mintlog/internal/global"
	"mintlog/internal/logctx"

	"github.com/robfig/cron/v3"
)

// Flushes target on a standard 5 field cron schedule. Empty spec schedules nothing.
// stop waits for a running flush to finish.
func StartSchedule(ctx context.Context, spec string, target Flusher) (stop func(), err error) {
	stop = func() {}
	if spec == "" {
		return
	}

	ctx = logctx.AppendCtxTag(ctx, global.NSSchedule)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(spec, func() {
		flushErr := target.Flush(ctx)
		if flushErr != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Scheduled flush: %v\n", flushErr)
			NotifyStatus(ctx, "Last scheduled flush failed")
			return
		}
		logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "Scheduled flush completed\n")
		NotifyStatus(ctx, "Last scheduled flush succeeded")
	})
	if err != nil {
		err = fmt.Errorf("invalid flush schedule '%s': %w", spec, err)
		return
	}
	scheduler.Start()

	stop = func() {
		<-scheduler.Stop().Done()
	}
	return
}
