package tasks

// TaskSchedulerInterface runs a batch of tasks on a fixed worker pool.
//
//	scheduler := NewScheduler(ctx, workerCount, len(files))
//	scheduler.Start()
//	scheduler.EnqueueTask(NewConvertFeedTask(path, converter))
//	err := scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop() error
	EnqueueTask(task TaskInterface) error
}
