package metrics

const (
	AccessCallsH      = "The total number of shared resource accessor invocations"
	AccessCallsN      = "blinkdemo_access_calls"
	AccessCollisionsH = "The total number of accessor invocations that ran the collision branch"
	AccessCollisionsN = "blinkdemo_access_collisions"
	AccessHoldH       = "The distribution of critical section hold durations in milliseconds"
	AccessHoldN       = "blinkdemo_access_hold_ms"

	SchedSuspensionsH = "The total number of global scheduler suspensions"
	SchedSuspensionsN = "blinkdemo_sched_suspensions"

	SignalWritesH = "The total number of logical signal level writes"
	SignalWritesN = "blinkdemo_signal_writes"

	TaskIterationsH = "The total number of periodic task loop iterations"
	TaskIterationsN = "blinkdemo_task_iterations"
)
