package jobs

type SchedulerInterface interface {
	Init()
	Stop()
	Persist() error
	Warmup() bool
}
