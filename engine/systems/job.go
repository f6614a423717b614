package systems

import (
	"fmt"
	"sync"

	"github.com/arkestra/spatialscan/engine/containers"
	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

// JobSubmitter is the slice of the job system other systems depend on.
type JobSubmitter interface {
	Submit(jt metadata.JobTask)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan metadata.JobTask
	wg         sync.WaitGroup

	resultsMutex sync.Mutex
	results      *containers.RingQueue[metadata.JobResultEntry]
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan metadata.JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
		results:    containers.NewRingQueue[metadata.JobResultEntry](metadata.MAX_JOB_RESULTS),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

// run executes a single job on the worker goroutine and queues its outcome
// for delivery. A panicking job is captured as a provider fault rather than
// taking the process down.
func (js *JobSystem) run(job metadata.JobTask) {
	var result interface{}
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job panicked: %v: %w", r, core.ErrProviderFault)
			}
		}()
		result, err = job.OnStart(job.InputParams)
	}()

	js.resultsMutex.Lock()
	defer js.resultsMutex.Unlock()
	qerr := js.results.Enqueue(metadata.JobResultEntry{
		Result:   result,
		Err:      err,
		Complete: job.OnComplete,
		Failure:  job.OnFailure,
	})
	if qerr != nil {
		core.LogError("job result queue full, dropping a completion: %s", qerr.Error())
	}
}

/**
 * @brief Shuts the job system down. Pending results are still deliverable
 * through Update afterwards.
 */
func (js *JobSystem) Shutdown() error {
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

/**
 * @brief Updates the job system, delivering finished job results on the
 * caller's context. Should happen once an update cycle.
 */
func (js *JobSystem) Update() {
	for {
		js.resultsMutex.Lock()
		entry, err := js.results.Dequeue()
		js.resultsMutex.Unlock()
		if err != nil {
			return
		}

		if entry.Err != nil {
			core.LogError(entry.Err.Error())
			if entry.Failure != nil {
				entry.Failure(entry.Err)
			}
			continue
		}
		if entry.Complete != nil {
			entry.Complete(entry.Result)
		}
	}
}

/**
 * @brief Submits the provided job to be queued for execution.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt metadata.JobTask) {
	js.jobQueue <- jt
}
